package validate

import (
	"bytes"
	"fmt"
	"image"

	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/upload"
	"github.com/reusedev/media-hub/tools"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Validator is the pure pre-decode gate: size ceiling, format whitelist,
// decodability. It never decodes pixel data, only the image header.
type Validator struct {
	maxBytes int64
}

func New(maxBytes int64) *Validator {
	return &Validator{maxBytes: maxBytes}
}

func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

func (v *Validator) Validate(raw upload.RawUpload) error {
	if raw.Size > v.maxBytes {
		return errs.Wrap(errs.KindValidationFailed,
			fmt.Sprintf("file is %.2f MiB, the maximum allowed is %.2f MiB",
				float64(raw.Size)/(1<<20), float64(v.maxBytes)/(1<<20)),
			errs.ErrFileTooLarge).
			With("filename", raw.Filename).With("size", raw.Size)
	}
	format := tools.DetectImageType(raw.Data)
	if format == tools.ImageFormatUnknown {
		return errs.Wrap(errs.KindValidationFailed,
			"unsupported image format, expected one of jpeg, png, webp, gif",
			errs.ErrUnsupportedFormat).
			With("filename", raw.Filename).With("mime", raw.MIMEType)
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(raw.Data))
	if err != nil {
		return errs.Wrap(errs.KindValidationFailed,
			"image could not be decoded, the file may be corrupted",
			errs.ErrUndecodableImage).
			With("filename", raw.Filename).With("mime", format.MIME())
	}
	return nil
}
