package eleviewr

import (
	"fmt"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/i18n"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/viewer"
)

const statusMaxWidth = 420

func statusText(status viewer.Status) string {
	if status.Count == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d  %s", status.Index, status.Count, filepath.Base(status.Path))
}

// renderStatusPill draws the position and file name in the bottom-left corner.
func renderStatusPill(renderer *sdl.Renderer, status viewer.Status, screen presenter.Size, scale float32) {
	text := statusText(status)
	if text == "" {
		return
	}

	theme := internal.GetTheme()
	font := internal.Fonts.SmallFont

	margin := int32(16 * scale)
	padX := int32(12 * scale)
	padY := int32(6 * scale)

	text = internal.TruncateText(font, text, int32(statusMaxWidth*scale)-2*padX)
	width := internal.TextWidth(font, text) + 2*padX
	height := int32(font.Height()) + 2*padY

	rect := &sdl.Rect{
		X: margin,
		Y: int32(screen.Height) - margin - height,
		W: width,
		H: height,
	}
	internal.DrawRoundedRect(renderer, rect, height/2, theme.PillColor)
	internal.RenderText(renderer, font, text, rect.X+padX, rect.Y+padY, theme.HintColor, internal.TextAlignLeft)
}

// renderHints draws the navigation key hints in the bottom-right corner.
func renderHints(renderer *sdl.Renderer, bindings keymap.Bindings, screen presenter.Size, scale float32) {
	hints := []struct {
		action  interaction.Action
		message *i18n.Message
	}{
		{interaction.ActionPreviousImage, msgHintPrevious},
		{interaction.ActionNextImage, msgHintNext},
		{interaction.ActionSetWallpaper, msgHintWallpaper},
		{interaction.ActionDeleteImage, msgHintDelete},
		{interaction.ActionExit, msgHintExit},
	}

	theme := internal.GetTheme()
	items := make([]FooterHelpItem, 0, len(hints))
	for _, h := range hints {
		key := bindings.Hint(h.action)
		if key == "" {
			continue
		}
		items = append(items, FooterHelpItem{
			ButtonName:  key,
			HelpText:    i18n.Localize(h.message, nil),
			ButtonColor: theme.TextColor,
		})
	}

	margin := int32(16 * scale)
	height := newFooterMetrics(internal.Fonts.BodyFont, scale).outerHeight
	renderFooter(renderer, items, int32(screen.Width)-margin, int32(screen.Height)-margin-height, internal.TextAlignRight, scale)
}

func renderEmptyScreen(renderer *sdl.Renderer, screen presenter.Size) {
	theme := internal.GetTheme()
	font := internal.Fonts.TitleFont
	y := (int32(screen.Height) - int32(font.Height())) / 2
	internal.RenderText(renderer, font, i18n.Localize(msgEmptyScreen, nil), int32(screen.Width)/2, y, theme.HintColor, internal.TextAlignCenter)
}
