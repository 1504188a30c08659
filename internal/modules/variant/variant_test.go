package variant

import (
	"image"
	"image/color"
	"testing"

	"github.com/reusedev/media-hub/internal/consts"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0, A: 255})
		}
	}
	return img
}

func TestCropToRatioIdempotentAtExactRatio(t *testing.T) {
	src := gradient(400, 500)
	cropped := CropToRatio(src, 4, 5)
	require.Equal(t, 400, cropped.Bounds().Dx())
	require.Equal(t, 500, cropped.Bounds().Dy())
	// offset must be (0,0): corner pixels survive
	require.Equal(t, src.At(0, 0), cropped.At(cropped.Bounds().Min.X, cropped.Bounds().Min.Y))
}

func TestCropToRatioWiderThanTarget(t *testing.T) {
	// 1920x1080 to 4:5 -> height kept, width = 1080*0.8 = 864, x offset 528
	src := gradient(1920, 1080)
	cropped := CropToRatio(src, 4, 5)
	require.Equal(t, 864, cropped.Bounds().Dx())
	require.Equal(t, 1080, cropped.Bounds().Dy())
	require.Equal(t, src.At(528, 0), cropped.At(cropped.Bounds().Min.X, cropped.Bounds().Min.Y))
}

func TestCropToRatioTallerThanTarget(t *testing.T) {
	// 1000x2000 to 16:9 -> width kept, height = trunc(1000/1.777...) = 562, y offset 719
	src := gradient(1000, 2000)
	cropped := CropToRatio(src, 16, 9)
	require.Equal(t, 1000, cropped.Bounds().Dx())
	require.Equal(t, 562, cropped.Bounds().Dy())
	require.Equal(t, src.At(0, 719), cropped.At(cropped.Bounds().Min.X, cropped.Bounds().Min.Y))
}

func TestCropToRatioTruncatesTowardZero(t *testing.T) {
	// 101x100 to 1:1: width becomes trunc(100.0)=100, offset trunc(0.5)=0
	src := gradient(101, 100)
	cropped := CropToRatio(src, 1, 1)
	require.Equal(t, 100, cropped.Bounds().Dx())
	require.Equal(t, 100, cropped.Bounds().Dy())
	require.Equal(t, src.At(0, 0), cropped.At(cropped.Bounds().Min.X, cropped.Bounds().Min.Y))
}

func TestCropNeverExceedsSourceBounds(t *testing.T) {
	for _, dims := range [][2]int{{333, 777}, {1919, 1079}, {7, 13}} {
		src := gradient(dims[0], dims[1])
		for _, spec := range DefaultSpecs {
			cropped := spec.Crop(src)
			require.LessOrEqual(t, cropped.Bounds().Dx(), dims[0])
			require.LessOrEqual(t, cropped.Bounds().Dy(), dims[1])
		}
	}
}

func TestDefaultSpecs(t *testing.T) {
	require.Len(t, DefaultSpecs, 3)
	suffixes := map[string]consts.DeviceClass{
		"_mobile_portrait":   consts.DeviceMobile,
		"_mobile_square":     consts.DeviceMobile,
		"_desktop_landscape": consts.DeviceDesktop,
	}
	for _, spec := range DefaultSpecs {
		device, ok := suffixes[spec.Suffix]
		require.True(t, ok, "unexpected suffix %s", spec.Suffix)
		require.Equal(t, device, spec.Device)
	}
	require.Equal(t, 0.8, DefaultSpecs[0].TargetRatio())
	require.Equal(t, 1.0, DefaultSpecs[1].TargetRatio())
	require.InDelta(t, 1.78, DefaultSpecs[2].TargetRatio(), 0.01)
}
