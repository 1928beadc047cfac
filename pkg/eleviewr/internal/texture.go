package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
)

// TextureDevice creates streaming RGBA textures on a borrowed renderer.
type TextureDevice struct {
	Renderer *sdl.Renderer
}

func NewTextureDevice(renderer *sdl.Renderer) *TextureDevice {
	return &TextureDevice{Renderer: renderer}
}

func (d *TextureDevice) CreateTexture(width, height int) (presenter.Texture, error) {
	return d.create(width, height)
}

func (d *TextureDevice) create(width, height int) (*Texture, error) {
	// ABGR8888 stores bytes as R, G, B, A on little endian, matching image.RGBA.
	texture, err := d.Renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("creating %dx%d texture: %w", width, height, err)
	}

	if err := texture.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		texture.Destroy()
		return nil, fmt.Errorf("setting blend mode: %w", err)
	}

	return &Texture{SDL: texture, Width: width, Height: height}, nil
}

type Texture struct {
	SDL    *sdl.Texture
	Width  int
	Height int
}

// Upload copies the rows of pix into the locked texture, honouring both the
// source stride and the texture pitch.
func (t *Texture) Upload(pix []byte, stride int) error {
	dst, pitch, err := t.SDL.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking texture: %w", err)
	}
	defer t.SDL.Unlock()

	return presenter.CopyRows(dst, pitch, pix, stride, t.Width*4, t.Height)
}

func (t *Texture) Destroy() error {
	if t.SDL == nil {
		return nil
	}
	err := t.SDL.Destroy()
	t.SDL = nil
	return err
}

// SDLTexture unwraps a presenter texture created by a TextureDevice.
func SDLTexture(texture presenter.Texture) (*sdl.Texture, bool) {
	t, ok := texture.(*Texture)
	if !ok || t.SDL == nil {
		return nil, false
	}
	return t.SDL, true
}
