package compress

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/reusedev/media-hub/internal/consts"
	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/upload"
	"github.com/reusedev/media-hub/tools"
	"github.com/stretchr/testify/require"
)

// noiseImage produces incompressible pixel data so encode sizes vary
// meaningfully across quality levels.
func noiseImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8((x*7 + y*13) % 256),
				G: uint8((x*31 + y*3) % 256),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func jpegUpload(t *testing.T, w, h, quality int) upload.RawUpload {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, noiseImage(w, h), &jpeg.Options{Quality: quality}))
	return upload.FromBytes("test.jpg", "image/jpeg", buf.Bytes())
}

func pngUpload(t *testing.T, w, h int) upload.RawUpload {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, noiseImage(w, h), imaging.PNG))
	return upload.FromBytes("test.png", "image/png", buf.Bytes())
}

func gifUpload(t *testing.T, w, h int) upload.RawUpload {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, noiseImage(w, h), imaging.GIF))
	return upload.FromBytes("test.gif", "image/gif", buf.Bytes())
}

func TestCompressDesktopLossless(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	raw := jpegUpload(t, 1920, 1080, 85)
	result, err := c.Compress(raw, consts.LevelLossless)
	require.NoError(t, err)
	require.Equal(t, 1920, result.Width)
	require.Equal(t, 1080, result.Height)
	require.Equal(t, 1.78, result.AspectRatio)
	require.Equal(t, 100, result.QualityUsed)
	require.Equal(t, "image/jpeg", result.MIMEType)
	require.Equal(t, raw.Size, result.OriginalSize)
	require.Equal(t, int64(len(result.Data)), result.CompressedSize)
	require.Equal(t, result.OriginalSize-result.CompressedSize, result.SavingsBytes)
}

func TestCompressNeverResizes(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	raw := jpegUpload(t, 640, 480, 90)
	result, err := c.Compress(raw, consts.LevelAggressive)
	require.NoError(t, err)

	decoded, err := imaging.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	require.Equal(t, 640, decoded.Bounds().Dx())
	require.Equal(t, 480, decoded.Bounds().Dy())
	require.Equal(t, result.Width, decoded.Bounds().Dx())
	require.Equal(t, result.Height, decoded.Bounds().Dy())
}

func TestCompressNegativeSavingsIsValid(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	// q100 re-encode of an already tightly compressed noisy source grows
	// the file; the ratio must stay negative, not clamped
	raw := jpegUpload(t, 300, 300, 60)
	result, err := c.Compress(raw, consts.LevelLossless)
	require.NoError(t, err)
	require.Negative(t, result.Ratio)
	require.Negative(t, result.SavingsBytes)
}

func TestCompressPNGAggressive(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	raw := pngUpload(t, 400, 500)
	result, err := c.Compress(raw, consts.LevelAggressive)
	require.NoError(t, err)
	require.Equal(t, 0.8, result.AspectRatio)
	require.Equal(t, 9, result.QualityUsed, "png must resolve to the effort scale, not a quality percentage")
	require.Equal(t, tools.ImageFormatPNG, result.Format)
	require.Equal(t, "image/png", result.MIMEType)
}

func TestCompressGIF(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	raw := gifUpload(t, 120, 120)
	result, err := c.Compress(raw, consts.LevelModerate)
	require.NoError(t, err)
	require.Equal(t, tools.ImageFormatGIF, result.Format)
	require.Equal(t, 0, result.QualityUsed)
	require.Equal(t, tools.ImageFormatGIF, tools.DetectImageType(result.Data))
}

func TestCompressUndecodable(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	raw := upload.FromBytes("junk.jpg", "image/jpeg", []byte{0xFF, 0xD8, 0xFF, 0x00, 0x01})
	_, err := c.Compress(raw, consts.LevelModerate)
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindCompressionFailed))
	pe := errs.Normalize(err)
	require.Equal(t, "junk.jpg", pe.Context["filename"])
}

func TestCompressInvalidLevel(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	_, err := c.Compress(jpegUpload(t, 50, 50, 80), consts.CompressionLevel("turbo"))
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindCompressionFailed))
}

func TestCompressToTargetSizeAchievedImmediately(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	result, err := c.CompressToTargetSize(jpegUpload(t, 200, 200, 85), 1<<30)
	require.NoError(t, err)
	require.True(t, result.TargetAchieved)
	require.Equal(t, consts.LevelLossless, result.Level)
}

func TestCompressToTargetSizeBestEffort(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	result, err := c.CompressToTargetSize(jpegUpload(t, 200, 200, 85), 1)
	require.NoError(t, err)
	require.False(t, result.TargetAchieved)
	require.Equal(t, consts.LevelAggressive, result.Level)
}

func TestCompressToTargetSizeStopsAtFirstFit(t *testing.T) {
	c := NewCompressor(DefaultPolicy())
	raw := jpegUpload(t, 500, 500, 95)

	aggressive, err := c.Compress(raw, consts.LevelAggressive)
	require.NoError(t, err)
	moderate, err := c.Compress(raw, consts.LevelModerate)
	require.NoError(t, err)
	require.Greater(t, moderate.CompressedSize, aggressive.CompressedSize)

	result, err := c.CompressToTargetSize(raw, aggressive.CompressedSize)
	require.NoError(t, err)
	require.True(t, result.TargetAchieved)
	require.Equal(t, consts.LevelAggressive, result.Level)
	require.LessOrEqual(t, result.CompressedSize, aggressive.CompressedSize)
}

func TestRound2(t *testing.T) {
	require.Equal(t, 1.78, Round2(1920.0/1080.0))
	require.Equal(t, 0.8, Round2(400.0/500.0))
	require.Equal(t, 1.0, Round2(1000.0/1000.0))
	require.Equal(t, -12.35, Round2(-12.345))
}
