package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PrepareImage decodes any supported image (PNG, JPEG, GIF, BMP, TIFF,
// WebP) and returns it re-encoded as PNG. PNG input is passed through.
func PrepareImage(data []byte) ([]byte, ImageFormat, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if format == "png" {
		return data, ImageFormatPNG, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), ImageFormatPNG, nil
}

// SniffFormat reports the format of encoded image data without decoding
// the pixels.
func SniffFormat(data []byte) (ImageFormat, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	switch format {
	case "png":
		return ImageFormatPNG, nil
	case "jpeg":
		return ImageFormatJPEG, nil
	case "gif":
		return ImageFormatGIF, nil
	case "bmp":
		return ImageFormatBMP, nil
	case "tiff":
		return ImageFormatTIFF, nil
	case "webp":
		return ImageFormatWebP, nil
	}
	return "", fmt.Errorf("unsupported image format %q", format)
}
