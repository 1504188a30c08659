package tools

import "bytes"

type ImageFormat string

const (
	ImageFormatJPEG    ImageFormat = "jpeg"
	ImageFormatPNG     ImageFormat = "png"
	ImageFormatWEBP    ImageFormat = "webp"
	ImageFormatGIF     ImageFormat = "gif"
	ImageFormatUnknown ImageFormat = "unknown"
)

func (f ImageFormat) String() string {
	return string(f)
}

func (f ImageFormat) MIME() string {
	switch f {
	case ImageFormatJPEG:
		return "image/jpeg"
	case ImageFormatPNG:
		return "image/png"
	case ImageFormatWEBP:
		return "image/webp"
	case ImageFormatGIF:
		return "image/gif"
	}
	return "application/octet-stream"
}

func (f ImageFormat) Ext() string {
	switch f {
	case ImageFormatJPEG:
		return ".jpg"
	case ImageFormatPNG:
		return ".png"
	case ImageFormatWEBP:
		return ".webp"
	case ImageFormatGIF:
		return ".gif"
	}
	return ""
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	gif87     = []byte("GIF87a")
	gif89     = []byte("GIF89a")
	riffMagic = []byte("RIFF")
	webpMagic = []byte("WEBP")
)

// DetectImageType sniffs the leading bytes. Only the four supported raster
// formats are recognized; everything else is ImageFormatUnknown.
func DetectImageType(b []byte) ImageFormat {
	switch {
	case bytes.HasPrefix(b, jpegMagic):
		return ImageFormatJPEG
	case bytes.HasPrefix(b, pngMagic):
		return ImageFormatPNG
	case bytes.HasPrefix(b, gif87), bytes.HasPrefix(b, gif89):
		return ImageFormatGIF
	case len(b) >= 12 && bytes.HasPrefix(b, riffMagic) && bytes.Equal(b[8:12], webpMagic):
		return ImageFormatWEBP
	}
	return ImageFormatUnknown
}

func FormatFromMIME(mime string) ImageFormat {
	switch mime {
	case "image/jpeg", "image/jpg":
		return ImageFormatJPEG
	case "image/png":
		return ImageFormatPNG
	case "image/webp":
		return ImageFormatWEBP
	case "image/gif":
		return ImageFormatGIF
	}
	return ImageFormatUnknown
}
