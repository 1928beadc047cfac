// Package presenter owns the GPU texture of the image on screen and the
// uniforms used to draw it on an aspect-preserving quad.
//
// The package talks to the GPU through the Device and Texture interfaces so
// it can be driven by a fake in tests.
package presenter

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

var ErrInvalidSize = errors.New("invalid size")

const titlePrefix = "EleViewr - "

// Texture is a GPU texture sized at creation.
type Texture interface {
	// Upload copies tightly or loosely packed RGBA rows into the texture.
	Upload(pix []byte, stride int) error
	Destroy() error
}

type Device interface {
	CreateTexture(width, height int) (Texture, error)
}

type Size struct {
	Width  int
	Height int
}

func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) Aspect() float64 {
	return float64(s.Width) / float64(s.Height)
}

type Rect struct {
	X, Y, W, H int32
}

type Uniforms struct {
	ScreenAspect float32
	ImageAspect  float32
	ScaleFactor  float32
	Padding      float32
}

// Selection describes the image that was just presented.
type Selection struct {
	Title  string
	Width  int
	Height int
}

// Binding is the texture currently drawn and the size of its image.
type Binding struct {
	Texture Texture
	Size    Size
}

type Presenter struct {
	device   Device
	binding  *Binding
	uniforms Uniforms
	screen   Size
}

// New returns a presenter with no image bound. The initial uniforms use the
// aspect of screen and an image aspect of 1.
func New(device Device, screen Size) *Presenter {
	p := &Presenter{
		device: device,
		screen: screen,
		uniforms: Uniforms{
			ScreenAspect: 1,
			ImageAspect:  1,
			ScaleFactor:  1,
		},
	}
	if screen.Valid() {
		p.uniforms.ScreenAspect = float32(screen.Aspect())
	}
	return p
}

// Title is the window title shown for the image at path.
func Title(path string) string {
	return titlePrefix + filepath.Base(path)
}

// Present uploads img into a fresh texture and makes it the bound image.
//
// The new texture is filled before the previous one is released. On any
// error the new texture is destroyed and the previous binding stays.
func (p *Presenter) Present(img *image.RGBA, name string, screen Size) (Selection, error) {
	if img == nil {
		return Selection{}, fmt.Errorf("%w: no image", ErrInvalidSize)
	}

	bounds := img.Bounds()
	imgSize := Size{Width: bounds.Dx(), Height: bounds.Dy()}

	if !screen.Valid() {
		return Selection{}, fmt.Errorf("%w: screen %dx%d", ErrInvalidSize, screen.Width, screen.Height)
	}
	if !imgSize.Valid() {
		return Selection{}, fmt.Errorf("%w: image %dx%d", ErrInvalidSize, imgSize.Width, imgSize.Height)
	}

	texture, err := p.device.CreateTexture(imgSize.Width, imgSize.Height)
	if err != nil {
		return Selection{}, fmt.Errorf("creating texture: %w", err)
	}

	pix := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y):]
	if err := texture.Upload(pix, img.Stride); err != nil {
		destroy(texture, name)
		return Selection{}, fmt.Errorf("uploading texture: %w", err)
	}

	if p.binding != nil {
		destroy(p.binding.Texture, name)
	}

	p.binding = &Binding{Texture: texture, Size: imgSize}
	p.screen = screen
	p.uniforms = Uniforms{
		ScreenAspect: float32(screen.Aspect()),
		ImageAspect:  float32(imgSize.Aspect()),
		ScaleFactor:  1,
	}

	return Selection{
		Title:  Title(name),
		Width:  imgSize.Width,
		Height: imgSize.Height,
	}, nil
}

// Resize records the new surface size. Zero sizes are ignored.
func (p *Presenter) Resize(screen Size) {
	if !screen.Valid() {
		return
	}
	p.screen = screen
	if p.binding != nil {
		p.uniforms.ScreenAspect = float32(screen.Aspect())
	}
}

// Clear releases the bound texture.
func (p *Presenter) Clear() {
	if p.binding == nil {
		return
	}
	destroy(p.binding.Texture, "")
	p.binding = nil
}

func destroy(texture Texture, name string) {
	if err := texture.Destroy(); err != nil {
		logging.GetInternalLogger().Warn("Unable to release texture", "image", name, "error", err)
	}
}

func (p *Presenter) Binding() (Binding, bool) {
	if p.binding == nil {
		return Binding{}, false
	}
	return *p.binding, true
}

func (p *Presenter) Uniforms() Uniforms {
	return p.uniforms
}

func (p *Presenter) Screen() Size {
	return p.screen
}

// Quad is the centred destination rectangle for the bound image on a
// surface of the given size.
func (p *Presenter) Quad(screen Size) Rect {
	w, h := QuadExtent(p.uniforms)
	qw := float32(screen.Width) * w
	qh := float32(screen.Height) * h
	return Rect{
		X: int32((float32(screen.Width) - qw) / 2),
		Y: int32((float32(screen.Height) - qh) / 2),
		W: int32(qw + 0.5),
		H: int32(qh + 0.5),
	}
}

// QuadExtent returns the quad width and height as fractions of the surface.
func QuadExtent(u Uniforms) (float32, float32) {
	w, h := float32(1), float32(1)
	if u.ImageAspect > u.ScreenAspect {
		h = u.ScreenAspect / u.ImageAspect
	} else {
		w = u.ImageAspect / u.ScreenAspect
	}
	return w * u.ScaleFactor, h * u.ScaleFactor
}

// FitWithin scales width x height down to fit inside maxW x maxH keeping the
// aspect ratio. Sizes already inside the bounds are returned unchanged.
func FitWithin(width, height, maxW, maxH int) (int, int) {
	if width <= 0 || height <= 0 {
		return maxW, maxH
	}
	if width <= maxW && height <= maxH {
		return width, height
	}

	scale := min(float64(maxW)/float64(width), float64(maxH)/float64(height))
	w := max(int(float64(width)*scale), 1)
	h := max(int(float64(height)*scale), 1)
	return w, h
}

// CopyRows copies height rows of rowBytes from src (srcStride apart) into
// dst (dstPitch apart).
func CopyRows(dst []byte, dstPitch int, src []byte, srcStride int, rowBytes, height int) error {
	if rowBytes > dstPitch || rowBytes > srcStride {
		return fmt.Errorf("%w: row of %d bytes exceeds stride", ErrInvalidSize, rowBytes)
	}
	if height > 0 && (len(src) < (height-1)*srcStride+rowBytes || len(dst) < (height-1)*dstPitch+rowBytes) {
		return fmt.Errorf("%w: buffer too small for %d rows", ErrInvalidSize, height)
	}

	for y := 0; y < height; y++ {
		copy(dst[y*dstPitch:y*dstPitch+rowBytes], src[y*srcStride:y*srcStride+rowBytes])
	}
	return nil
}
