package storage

import (
	"bytes"
	"errors"
	"image"
	"io"

	"github.com/disintegration/imaging"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format (supported: jpeg, png, webp)")

// maxDimension bounds normalized photos on both axes.
const maxDimension = 1000

// NormalizeImage decodes an uploaded photo, verifies the format is one
// of jpeg/png/webp, resizes it to fit within 1000x1000 preserving the
// aspect ratio (never enlarging), and re-encodes to PNG.
func NormalizeImage(r io.Reader) ([]byte, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedFormat
	}

	switch format {
	case "jpeg", "png", "webp":
	default:
		return nil, ErrUnsupportedFormat
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
