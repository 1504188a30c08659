package consts

type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceDesktop DeviceClass = "desktop"
)

func (d DeviceClass) String() string {
	return string(d)
}

func (d DeviceClass) Valid() bool {
	return d == DeviceMobile || d == DeviceDesktop
}

type ImageType string

const (
	ImageTypeThumbnail ImageType = "thumbnail"
	ImageTypeGallery   ImageType = "gallery"
	ImageTypeHero      ImageType = "hero"
)

func (i ImageType) String() string {
	return string(i)
}

func (i ImageType) Valid() bool {
	return i == ImageTypeThumbnail || i == ImageTypeGallery || i == ImageTypeHero
}

type CompressionLevel string

const (
	LevelLossless   CompressionLevel = "lossless"
	LevelMinimal    CompressionLevel = "minimal"
	LevelModerate   CompressionLevel = "moderate"
	LevelAggressive CompressionLevel = "aggressive"
)

// TargetSizeOrder is the fixed ladder CompressToTargetSize walks through.
var TargetSizeOrder = []CompressionLevel{LevelLossless, LevelMinimal, LevelModerate, LevelAggressive}

func (c CompressionLevel) String() string {
	return string(c)
}

func (c CompressionLevel) Valid() bool {
	switch c {
	case LevelLossless, LevelMinimal, LevelModerate, LevelAggressive:
		return true
	}
	return false
}
