package eleviewr

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal"
)

// FooterHelpItem is a key hint: ButtonName goes in the inner pill drawn in
// ButtonColor, HelpText follows it.
type FooterHelpItem struct {
	ButtonName  string
	HelpText    string
	ButtonColor sdl.Color
}

type footerMetrics struct {
	outerHeight int32
	innerMargin int32
	gap         int32
	itemSpacing int32
	edge        int32
}

func newFooterMetrics(font *ttf.Font, scale float32) footerMetrics {
	s := func(v float32) int32 { return int32(v * scale) }
	return footerMetrics{
		outerHeight: int32(font.Height()) + s(14),
		innerMargin: s(4),
		gap:         s(8),
		itemSpacing: s(18),
		edge:        s(8),
	}
}

func (m footerMetrics) innerHeight() int32 {
	return m.outerHeight - 2*m.innerMargin
}

func innerPillWidth(font *ttf.Font, name string, innerHeight int32) int32 {
	w := internal.TextWidth(font, name)
	if w <= innerHeight-12 {
		return innerHeight
	}
	return w + 12
}

func footerWidth(font, keyFont *ttf.Font, items []FooterHelpItem, m footerMetrics) int32 {
	width := 2 * m.edge
	for i, item := range items {
		width += innerPillWidth(keyFont, item.ButtonName, m.innerHeight()) + m.gap + internal.TextWidth(font, item.HelpText)
		if i < len(items)-1 {
			width += m.itemSpacing
		}
	}
	return width
}

// renderFooter draws the items as one continuous pill with its top edge at y,
// anchored at x according to align. It returns the pill height.
func renderFooter(renderer *sdl.Renderer, items []FooterHelpItem, x, y int32, align internal.TextAlign, scale float32) int32 {
	if len(items) == 0 {
		return 0
	}

	theme := internal.GetTheme()
	font := internal.Fonts.BodyFont
	keyFont := internal.Fonts.KeyFont
	m := newFooterMetrics(font, scale)

	width := footerWidth(font, keyFont, items, m)
	switch align {
	case internal.TextAlignCenter:
		x -= width / 2
	case internal.TextAlignRight:
		x -= width
	}
	outer := &sdl.Rect{X: x, Y: y, W: width, H: m.outerHeight}
	internal.DrawRoundedRect(renderer, outer, m.outerHeight/2, theme.PillColor)

	x += m.edge
	innerHeight := m.innerHeight()

	for _, item := range items {
		pillWidth := innerPillWidth(keyFont, item.ButtonName, innerHeight)
		inner := &sdl.Rect{X: x, Y: y + m.innerMargin, W: pillWidth, H: innerHeight}

		if pillWidth == innerHeight {
			internal.DrawCircle(renderer, inner.X+innerHeight/2, inner.Y+innerHeight/2, innerHeight/2, theme.ButtonColor)
		} else {
			internal.DrawRoundedRect(renderer, inner, innerHeight/2, theme.ButtonColor)
		}

		keyY := y + (m.outerHeight-int32(keyFont.Height()))/2
		internal.RenderText(renderer, keyFont, item.ButtonName, inner.X+pillWidth/2, keyY, item.ButtonColor, internal.TextAlignCenter)

		x += pillWidth + m.gap
		helpY := y + (m.outerHeight-int32(font.Height()))/2
		drawn := internal.RenderText(renderer, font, item.HelpText, x, helpY, theme.HintColor, internal.TextAlignLeft)
		x += drawn.W + m.itemSpacing
	}

	return m.outerHeight
}
