package internal

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/notify"
)

type NotificationColors struct {
	Fill   sdl.Color
	Border sdl.Color
}

type Theme struct {
	BackgroundColor sdl.Color // Clear colour behind the image
	TextColor       sdl.Color
	HintColor       sdl.Color // Secondary text, status pill text
	PillColor       sdl.Color // Status pill and footer outer pill
	ButtonColor     sdl.Color // Footer inner pill behind the key name

	BackdropColor    sdl.Color // Dims the image behind the delete modal
	ModalColor       sdl.Color
	ModalBorderColor sdl.Color
	ConfirmKeyColor  sdl.Color
	CancelKeyColor   sdl.Color
	AlwaysKeyColor   sdl.Color

	Notifications map[notify.Severity]NotificationColors
	// NotificationAlpha is the panel alpha at full opacity.
	NotificationAlpha uint8
}

func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: HexToColor(0x1A1A1A),
		TextColor:       HexToColor(0xFFFFFF),
		HintColor:       HexToColor(0xC8C8C8),
		PillColor:       sdl.Color{R: 20, G: 20, B: 20, A: 200},
		ButtonColor:     HexToColor(0x505050),

		BackdropColor:    sdl.Color{R: 0, G: 0, B: 0, A: 180},
		ModalColor:       HexToColor(0x282828),
		ModalBorderColor: HexToColor(0xFF0000),
		ConfirmKeyColor:  HexToColor(0x00FF00),
		CancelKeyColor:   HexToColor(0xFF0000),
		AlwaysKeyColor:   HexToColor(0xFFFF00),

		Notifications: map[notify.Severity]NotificationColors{
			notify.Info:    {Fill: HexToColor(0x1E90FF), Border: HexToColor(0x0000FF)},
			notify.Success: {Fill: HexToColor(0x008000), Border: HexToColor(0x00FF00)},
			notify.Warning: {Fill: HexToColor(0xFFA500), Border: HexToColor(0xFFFF00)},
			notify.Error:   {Fill: HexToColor(0xDC143C), Border: HexToColor(0xFF0000)},
		},
		NotificationAlpha: 180,
	}
}

var currentTheme = DefaultTheme()

func GetTheme() Theme {
	return currentTheme
}
