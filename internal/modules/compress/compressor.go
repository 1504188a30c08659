package compress

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/reusedev/media-hub/internal/consts"
	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/upload"
	"github.com/reusedev/media-hub/tools"

	_ "golang.org/x/image/webp"
)

// CompressionResult is the immutable outcome of one compression call.
// Ownership of Data transfers to the caller.
type CompressionResult struct {
	Data           []byte
	OriginalSize   int64
	CompressedSize int64
	// Ratio is the savings percentage, 2-decimal rounded. Negative when the
	// re-encode grows the file (valid for lossless sources).
	Ratio        float64
	SavingsBytes int64
	Width        int
	Height       int
	MIMEType     string            // detected MIME of the source
	Format       tools.ImageFormat // format Data is encoded in
	AspectRatio  float64           // width/height, 2-decimal rounded
	QualityUsed  int
	Level        consts.CompressionLevel

	// TargetAchieved is only meaningful on results from CompressToTargetSize.
	TargetAchieved bool
}

type Compressor struct {
	policy Policy
}

func NewCompressor(policy Policy) *Compressor {
	return &Compressor{policy: policy}
}

// Compress decodes raw bytes and re-encodes them at the given level.
// Re-encoding through a metadata-free encoder is the sole metadata-removal
// mechanism; dimensions are recorded at decode time and never change.
func (c *Compressor) Compress(raw upload.RawUpload, level consts.CompressionLevel) (*CompressionResult, error) {
	format := tools.DetectImageType(raw.Data)
	img, err := imaging.Decode(bytes.NewReader(raw.Data))
	if err != nil {
		return nil, errs.Wrap(errs.KindCompressionFailed,
			"failed to decode image", err).
			With("filename", raw.Filename).With("size", raw.Size).
			With("level", level.String()).With("mime", format.MIME())
	}
	result, err := c.CompressImage(img, format, raw.Size, level)
	img = nil // decoded buffer must not outlive the call
	if err != nil {
		pe := errs.Normalize(err)
		pe.With("filename", raw.Filename).With("size", raw.Size)
		return nil, pe
	}
	return result, nil
}

// CompressImage re-encodes an already-decoded image. Used directly by the
// variant generation path, which decodes once and crops many times.
func (c *Compressor) CompressImage(img image.Image, format tools.ImageFormat, originalSize int64, level consts.CompressionLevel) (*CompressionResult, error) {
	if !level.Valid() {
		return nil, errs.New(errs.KindCompressionFailed,
			fmt.Sprintf("unknown compression level %q", level)).
			With("level", level.String())
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	params := c.policy.ParamsFor(level, format)

	data, err := encode(img, params)
	if err != nil {
		return nil, errs.Wrap(errs.KindCompressionFailed,
			"failed to encode image", err).
			With("level", level.String()).With("mime", format.MIME())
	}

	compressedSize := int64(len(data))
	return &CompressionResult{
		Data:           data,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		Ratio:          round2(float64(originalSize-compressedSize) / float64(originalSize) * 100),
		SavingsBytes:   originalSize - compressedSize,
		Width:          width,
		Height:         height,
		MIMEType:       format.MIME(),
		Format:         params.Format,
		AspectRatio:    round2(float64(width) / float64(height)),
		QualityUsed:    params.QualityUsed(),
		Level:          level,
	}, nil
}

// CompressToTargetSize walks the level ladder from lossless down and returns
// the first result at or under targetBytes, marked TargetAchieved. When even
// aggressive misses the target, the aggressive result is returned with
// TargetAchieved false; the call never fails on size alone.
func (c *Compressor) CompressToTargetSize(raw upload.RawUpload, targetBytes int64) (*CompressionResult, error) {
	var last *CompressionResult
	for _, level := range consts.TargetSizeOrder {
		result, err := c.Compress(raw, level)
		if err != nil {
			return nil, err
		}
		if result.CompressedSize <= targetBytes {
			result.TargetAchieved = true
			return result, nil
		}
		last = result
	}
	last.TargetAchieved = false
	return last, nil
}

func encode(img image.Image, params EncodeParams) ([]byte, error) {
	buf := new(bytes.Buffer)
	var err error
	switch params.Format {
	case tools.ImageFormatPNG:
		err = imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(pngLevel(params.Effort)))
	case tools.ImageFormatGIF:
		err = imaging.Encode(buf, img, imaging.GIF)
	default:
		err = imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(params.Quality))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round2 is the shared 2-decimal rounding used for ratios and percentages.
func Round2(v float64) float64 {
	return round2(v)
}
