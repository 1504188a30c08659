package variant

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/reusedev/media-hub/internal/consts"
)

// Spec describes one fixed-ratio rendition of a source image.
type Spec struct {
	Suffix      string // appended to the filename before the extension
	WidthRatio  int
	HeightRatio int
	Device      consts.DeviceClass
}

// DefaultSpecs are the three renditions produced in multi-variant mode.
var DefaultSpecs = []Spec{
	{Suffix: "_mobile_portrait", WidthRatio: 4, HeightRatio: 5, Device: consts.DeviceMobile},
	{Suffix: "_mobile_square", WidthRatio: 1, HeightRatio: 1, Device: consts.DeviceMobile},
	{Suffix: "_desktop_landscape", WidthRatio: 16, HeightRatio: 9, Device: consts.DeviceDesktop},
}

func (s Spec) TargetRatio() float64 {
	return float64(s.WidthRatio) / float64(s.HeightRatio)
}

// CropToRatio center-crops img to widthRatio:heightRatio. It never
// upsamples and never distorts: a wider image loses width, a taller image
// loses height. Crop dimensions and offsets truncate toward zero so the
// crop window never overruns the source bounds.
func CropToRatio(img image.Image, widthRatio, heightRatio int) image.Image {
	b := img.Bounds()
	currentWidth := float64(b.Dx())
	currentHeight := float64(b.Dy())
	targetRatio := float64(widthRatio) / float64(heightRatio)
	currentRatio := currentWidth / currentHeight

	var newWidth, newHeight, offsetX, offsetY int
	if currentRatio > targetRatio {
		newHeight = int(currentHeight)
		newWidth = int(currentHeight * targetRatio)
		offsetX = int((currentWidth - float64(newWidth)) / 2)
		offsetY = 0
	} else {
		newWidth = int(currentWidth)
		newHeight = int(currentWidth / targetRatio)
		offsetX = 0
		offsetY = int((currentHeight - float64(newHeight)) / 2)
	}

	rect := image.Rect(b.Min.X+offsetX, b.Min.Y+offsetY,
		b.Min.X+offsetX+newWidth, b.Min.Y+offsetY+newHeight)
	return imaging.Crop(img, rect)
}

// Crop applies a spec to a decoded image.
func (s Spec) Crop(img image.Image) image.Image {
	return CropToRatio(img, s.WidthRatio, s.HeightRatio)
}
