package validate

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"testing"

	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/upload"
	"github.com/stretchr/testify/require"
)

func jpegUpload(t *testing.T, w, h int) upload.RawUpload {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return upload.FromBytes("test.jpg", "image/jpeg", buf.Bytes())
}

func TestValidateOK(t *testing.T) {
	v := New(30 << 20)
	require.NoError(t, v.Validate(jpegUpload(t, 100, 100)))
}

func TestValidateFileTooLarge(t *testing.T) {
	v := New(30 << 20)
	// garbage bytes on purpose: the size ceiling must trip before any
	// decode or format check is attempted
	raw := upload.FromBytes("big.bin", "application/octet-stream", make([]byte, 40<<20))
	err := v.Validate(raw)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrFileTooLarge))
	require.True(t, errs.IsKind(err, errs.KindValidationFailed))
}

func TestValidateUnsupportedFormat(t *testing.T) {
	v := New(30 << 20)
	raw := upload.FromBytes("doc.txt", "text/plain", []byte("definitely not a raster image"))
	err := v.Validate(raw)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnsupportedFormat))
}

func TestValidateUndecodable(t *testing.T) {
	v := New(30 << 20)
	// valid PNG magic, corrupt body
	data := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("garbage")...)
	err := v.Validate(upload.FromBytes("broken.png", "image/png", data))
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUndecodableImage))
}
