package eleviewr

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/notify"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
)

type notificationLayout struct {
	Margin  int32 // Distance from the top and right edges
	Spacing int32 // Vertical distance between panel origins
	Width   int32
	Height  int32
	Radius  int32
	Border  int32
	Padding int32
	Icon    int32
}

func defaultNotificationLayout(scale float32) notificationLayout {
	s := func(v float32) int32 { return int32(v * scale) }
	return notificationLayout{
		Margin:  s(20),
		Spacing: s(80),
		Width:   s(300),
		Height:  s(60),
		Radius:  s(8),
		Border:  internal.Max32(s(2), 1),
		Padding: s(12),
		Icon:    s(20),
	}
}

// renderNotifications stacks the live notifications in the top-right corner,
// oldest first, each faded by its opacity.
func renderNotifications(renderer *sdl.Renderer, notifications []notify.Notification, now time.Time, screen presenter.Size, scale float32) {
	if len(notifications) == 0 {
		return
	}

	theme := internal.GetTheme()
	layout := defaultNotificationLayout(scale)
	font := internal.Fonts.BodyFont

	for i, n := range notifications {
		opacity := n.Opacity(now)
		if opacity <= 0 {
			continue
		}

		colors := theme.Notifications[n.Severity]
		alpha := uint8(float64(theme.NotificationAlpha) * opacity)
		textAlpha := uint8(255 * opacity)

		rect := &sdl.Rect{
			X: int32(screen.Width) - layout.Margin - layout.Width,
			Y: layout.Margin + int32(i)*layout.Spacing,
			W: layout.Width,
			H: layout.Height,
		}

		internal.DrawRoundedRect(renderer, rect, layout.Radius, internal.WithAlpha(colors.Fill, alpha))
		internal.DrawRoundedBorder(renderer, rect, layout.Radius, layout.Border, internal.WithAlpha(colors.Border, textAlpha))

		iconRect := &sdl.Rect{
			X: rect.X + layout.Padding,
			Y: rect.Y + (rect.H-layout.Icon)/2,
			W: layout.Icon,
			H: layout.Icon,
		}
		internal.DrawIcon(renderer, internal.SeverityIcon(n.Severity), iconRect, internal.WithAlpha(theme.TextColor, textAlpha))

		textX := iconRect.X + iconRect.W + layout.Padding/2
		maxWidth := rect.X + rect.W - layout.Padding - textX
		text := internal.TruncateText(font, n.Message, maxWidth)
		textY := rect.Y + (rect.H-int32(font.Height()))/2

		internal.RenderText(renderer, font, text, textX, textY, internal.WithAlpha(theme.TextColor, textAlpha), internal.TextAlignLeft)
	}
}
