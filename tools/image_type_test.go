package tools

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectImageType(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))

	jpegBuf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(jpegBuf, img, nil))
	require.Equal(t, ImageFormatJPEG, DetectImageType(jpegBuf.Bytes()))

	pngBuf := new(bytes.Buffer)
	require.NoError(t, png.Encode(pngBuf, img))
	require.Equal(t, ImageFormatPNG, DetectImageType(pngBuf.Bytes()))

	gifBuf := new(bytes.Buffer)
	require.NoError(t, gif.Encode(gifBuf, img, nil))
	require.Equal(t, ImageFormatGIF, DetectImageType(gifBuf.Bytes()))

	webpHeader := append([]byte("RIFF"), 0, 0, 0, 0)
	webpHeader = append(webpHeader, []byte("WEBP")...)
	require.Equal(t, ImageFormatWEBP, DetectImageType(webpHeader))

	require.Equal(t, ImageFormatUnknown, DetectImageType([]byte("not an image")))
	require.Equal(t, ImageFormatUnknown, DetectImageType(nil))
}

func TestFormatFromMIME(t *testing.T) {
	require.Equal(t, ImageFormatJPEG, FormatFromMIME("image/jpeg"))
	require.Equal(t, ImageFormatJPEG, FormatFromMIME("image/jpg"))
	require.Equal(t, ImageFormatPNG, FormatFromMIME("image/png"))
	require.Equal(t, ImageFormatWEBP, FormatFromMIME("image/webp"))
	require.Equal(t, ImageFormatGIF, FormatFromMIME("image/gif"))
	require.Equal(t, ImageFormatUnknown, FormatFromMIME("image/bmp"))
}

func TestImageFormatExtAndMIME(t *testing.T) {
	require.Equal(t, ".jpg", ImageFormatJPEG.Ext())
	require.Equal(t, "image/png", ImageFormatPNG.MIME())
	require.Equal(t, "", ImageFormatUnknown.Ext())
}
