package internal

import (
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// RenderText draws a single line of text with its top edge at y. The
// returned rect is where it landed; it is empty when nothing was drawn.
func RenderText(renderer *sdl.Renderer, font *ttf.Font, text string, x, y int32, color sdl.Color, align TextAlign) sdl.Rect {
	if text == "" {
		return sdl.Rect{}
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		logging.GetInternalLogger().Debug("Unable to render text", "text", text, "error", err)
		return sdl.Rect{}
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return sdl.Rect{}
	}
	defer texture.Destroy()

	if color.A < 255 {
		texture.SetAlphaMod(color.A)
	}

	rect := sdl.Rect{X: x, Y: y, W: surface.W, H: surface.H}
	switch align {
	case TextAlignCenter:
		rect.X = x - surface.W/2
	case TextAlignRight:
		rect.X = x - surface.W
	}

	renderer.Copy(texture, nil, &rect)
	return rect
}

// TruncateText shortens text with an ellipsis until it fits maxWidth.
func TruncateText(font *ttf.Font, text string, maxWidth int32) string {
	if w, _, err := font.SizeUTF8(text); err != nil || int32(w) <= maxWidth {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _, err := font.SizeUTF8(candidate); err == nil && int32(w) <= maxWidth {
			return candidate
		}
	}
	return ""
}

func TextWidth(font *ttf.Font, text string) int32 {
	w, _, err := font.SizeUTF8(text)
	if err != nil {
		return 0
	}
	return int32(w)
}

func DrawRoundedRect(renderer *sdl.Renderer, rect *sdl.Rect, radius int32, color sdl.Color) {
	if radius <= 0 {
		renderer.SetDrawColor(color.R, color.G, color.B, color.A)
		renderer.FillRect(rect)
		return
	}

	radius = Min32(radius, Min32(rect.W, rect.H)/2)

	gfx.RoundedBoxColor(renderer, rect.X, rect.Y, rect.X+rect.W-1, rect.Y+rect.H-1, radius, color)
}

// DrawRoundedBorder strokes the outline of rect thickness pixels wide.
func DrawRoundedBorder(renderer *sdl.Renderer, rect *sdl.Rect, radius, thickness int32, color sdl.Color) {
	for i := int32(0); i < thickness; i++ {
		r := Max32(radius-i, 0)
		gfx.RoundedRectangleColor(renderer, rect.X+i, rect.Y+i, rect.X+rect.W-1-i, rect.Y+rect.H-1-i, r, color)
	}
}

func DrawCircle(renderer *sdl.Renderer, centerX, centerY, radius int32, color sdl.Color) {
	gfx.FilledCircleColor(renderer, centerX, centerY, radius, color)
	gfx.AACircleColor(renderer, centerX, centerY, radius, color)
}

func WithAlpha(color sdl.Color, alpha uint8) sdl.Color {
	color.A = alpha
	return color
}

func Min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func Max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func HexToColor(hex uint32) sdl.Color {
	r := uint8((hex >> 16) & 0xFF)
	g := uint8((hex >> 8) & 0xFF)
	b := uint8(hex & 0xFF)
	return sdl.Color{R: r, G: g, B: b, A: 255}
}
