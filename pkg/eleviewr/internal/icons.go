package internal

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/notify"
)

type Icon int

const (
	IconInfo Icon = iota
	IconSuccess
	IconWarning
	IconError
)

var iconSVG = map[Icon]string{
	IconInfo: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<circle cx="12" cy="12" r="10" fill="none" stroke="#ffffff" stroke-width="2"/>
<rect x="11" y="10" width="2" height="7" fill="#ffffff"/>
<circle cx="12" cy="7" r="1.25" fill="#ffffff"/>
</svg>`,
	IconSuccess: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M4 12.5 L9.5 18 L20 6.5" fill="none" stroke="#ffffff" stroke-width="2.5" stroke-linecap="round" stroke-linejoin="round"/>
</svg>`,
	IconWarning: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M12 2.5 L22.5 21 L1.5 21 Z" fill="none" stroke="#ffffff" stroke-width="2" stroke-linejoin="round"/>
<rect x="11" y="9" width="2" height="6" fill="#ffffff"/>
<circle cx="12" cy="18" r="1.25" fill="#ffffff"/>
</svg>`,
	IconError: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path d="M6 6 L18 18 M18 6 L6 18" fill="none" stroke="#ffffff" stroke-width="2.5" stroke-linecap="round"/>
</svg>`,
}

type iconKey struct {
	icon Icon
	size int32
}

var iconCache = map[iconKey]*Texture{}

func SeverityIcon(severity notify.Severity) Icon {
	switch severity {
	case notify.Success:
		return IconSuccess
	case notify.Warning:
		return IconWarning
	case notify.Error:
		return IconError
	default:
		return IconInfo
	}
}

// DrawIcon renders icon into rect, tinted with color. Rasterised icons are
// cached per size.
func DrawIcon(renderer *sdl.Renderer, icon Icon, rect *sdl.Rect, color sdl.Color) {
	key := iconKey{icon: icon, size: rect.W}

	texture, ok := iconCache[key]
	if !ok {
		var err error
		texture, err = loadSVGTexture(renderer, []byte(iconSVG[icon]), rect.W, rect.H)
		if err != nil {
			logging.GetInternalLogger().Error("Unable to load icon", "icon", int(icon), "error", err)
			iconCache[key] = nil
			return
		}
		iconCache[key] = texture
	}
	if texture == nil {
		return
	}

	texture.SDL.SetColorMod(color.R, color.G, color.B)
	texture.SDL.SetAlphaMod(color.A)
	renderer.Copy(texture.SDL, nil, rect)
}

// loadSVGTexture rasterizes an SVG and uploads it into a new texture.
func loadSVGTexture(renderer *sdl.Renderer, svgData []byte, width, height int32) (*Texture, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	if width == 0 || height == 0 {
		width = int32(icon.ViewBox.W)
		height = int32(icon.ViewBox.H)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))

	scanner := rasterx.NewScannerGV(int(width), int(height), rgba, rgba.Bounds())
	raster := rasterx.NewDasher(int(width), int(height), scanner)

	icon.SetTarget(0, 0, float64(width), float64(height))
	icon.Draw(raster, 1.0)

	// SDL blends straight alpha; the rasteriser produces premultiplied pixels.
	straight := image.NewNRGBA(rgba.Bounds())
	draw.Draw(straight, straight.Bounds(), rgba, image.Point{}, draw.Src)

	texture, err := NewTextureDevice(renderer).create(int(width), int(height))
	if err != nil {
		return nil, err
	}
	if err := texture.Upload(straight.Pix, straight.Stride); err != nil {
		texture.Destroy()
		return nil, err
	}
	return texture, nil
}

func closeIcons() {
	for key, texture := range iconCache {
		if texture != nil {
			texture.Destroy()
		}
		delete(iconCache, key)
	}
}
