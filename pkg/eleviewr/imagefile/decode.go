// Package imagefile decodes image files into tightly packed 8-bit RGBA.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"

	"github.com/gabriel-vasile/mimetype"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

var ErrDecodeFailure = errors.New("failed to decode image")

var supportedMIME = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/tiff",
	"image/bmp",
}

// Decode reads the file at path and returns its pixels as *image.RGBA with
// origin at (0, 0). Animated GIFs yield their first frame.
func Decode(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, path, err)
	}
	return DecodeBytes(data, path)
}

// DecodeBytes decodes data; name is only used in errors and logs.
func DecodeBytes(data []byte, name string) (*image.RGBA, error) {
	mtype := mimetype.Detect(data)
	if !isSupported(mtype) {
		return nil, fmt.Errorf("%w: %s: unsupported content %s", ErrDecodeFailure, name, mtype.String())
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, name, err)
	}

	logging.GetInternalLogger().Debug("Decoded image",
		"path", name,
		"format", format,
		"mime", mtype.String(),
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return ToRGBA(img), nil
}

func isSupported(mtype *mimetype.MIME) bool {
	for _, m := range supportedMIME {
		if mtype.Is(m) {
			return true
		}
	}
	return false
}

// ToRGBA converts img to a zero-origin *image.RGBA, copying when needed.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) && rgba.Stride == 4*bounds.Dx() {
		return rgba
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return dst
}
