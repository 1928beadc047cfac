package eleviewr

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/i18n"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
)

// renderDeleteConfirmation dims the frame and draws the confirmation panel
// with the keys currently bound to confirm, cancel and always.
func renderDeleteConfirmation(renderer *sdl.Renderer, bindings keymap.Bindings, screen presenter.Size, scale float32) {
	theme := internal.GetTheme()
	s := func(v float32) int32 { return int32(v * scale) }

	renderer.SetDrawColor(theme.BackdropColor.R, theme.BackdropColor.G, theme.BackdropColor.B, theme.BackdropColor.A)
	renderer.FillRect(&sdl.Rect{X: 0, Y: 0, W: int32(screen.Width), H: int32(screen.Height)})

	panelWidth := internal.Min32(s(480), int32(screen.Width)-s(40))
	panelHeight := s(170)
	panel := &sdl.Rect{
		X: (int32(screen.Width) - panelWidth) / 2,
		Y: (int32(screen.Height) - panelHeight) / 2,
		W: panelWidth,
		H: panelHeight,
	}

	radius := s(12)
	internal.DrawRoundedRect(renderer, panel, radius, theme.ModalColor)
	internal.DrawRoundedBorder(renderer, panel, radius, internal.Max32(s(2), 1), theme.ModalBorderColor)

	titleFont := internal.Fonts.TitleFont
	title := i18n.Localize(msgModalTitle, nil)
	iconSize := int32(titleFont.Height())
	gap := s(8)
	titleWidth := iconSize + gap + internal.TextWidth(titleFont, title)
	titleX := panel.X + (panel.W-titleWidth)/2
	titleY := panel.Y + s(20)

	internal.DrawIcon(renderer, internal.IconWarning, &sdl.Rect{X: titleX, Y: titleY, W: iconSize, H: iconSize}, theme.ModalBorderColor)
	internal.RenderText(renderer, titleFont, title, titleX+iconSize+gap, titleY, theme.TextColor, internal.TextAlignLeft)

	bodyFont := internal.Fonts.BodyFont
	question := internal.TruncateText(bodyFont, i18n.Localize(msgModalQuestion, nil), panel.W-s(32))
	questionY := titleY + iconSize + s(18)
	internal.RenderText(renderer, bodyFont, question, panel.X+panel.W/2, questionY, theme.HintColor, internal.TextAlignCenter)

	items := []FooterHelpItem{
		{ButtonName: bindings.Hint(interaction.ActionConfirmDelete), HelpText: i18n.Localize(msgModalYes, nil), ButtonColor: theme.ConfirmKeyColor},
		{ButtonName: bindings.Hint(interaction.ActionCancelDelete), HelpText: i18n.Localize(msgModalNo, nil), ButtonColor: theme.CancelKeyColor},
		{ButtonName: bindings.Hint(interaction.ActionAlwaysDelete), HelpText: i18n.Localize(msgModalAlways, nil), ButtonColor: theme.AlwaysKeyColor},
	}
	hintsY := panel.Y + panel.H - s(20) - newFooterMetrics(bodyFont, scale).outerHeight
	renderFooter(renderer, items, panel.X+panel.W/2, hintsY, internal.TextAlignCenter, scale)
}
