package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
)

const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080

	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Title    string

	MaxWidth  int32
	MaxHeight int32
}

var window *Window

// Init brings up SDL, the TTF subsystem, a hidden resizable window and its
// renderer. The window is shown by FitToImage once the first image is known.
func Init(title string, maxWidth, maxHeight int32) error {
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "linear")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return fmt.Errorf("initialising SDL_ttf: %w", err)
	}

	maxWidth = envSize(WindowWidthEnvVar, maxWidth, DefaultMaxWidth)
	maxHeight = envSize(WindowHeightEnvVar, maxHeight, DefaultMaxHeight)

	win, err := initWindow(title, maxWidth, maxHeight)
	if err != nil {
		ttf.Quit()
		sdl.Quit()
		return err
	}
	window = win

	output := win.DrawableSize()
	if err := initFonts(DefaultFontSizes, int32(output.Width)); err != nil {
		SDLCleanup()
		return err
	}

	return nil
}

func envSize(name string, value, fallback int32) int32 {
	if v := os.Getenv(name); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err == nil && n > 0 {
			return int32(n)
		}
		logging.GetInternalLogger().Warn("Invalid window size override; ignoring", "variable", name, "value", v, "error", err)
	}
	if value > 0 {
		return value
	}
	return fallback
}

func initWindow(title string, maxWidth, maxHeight int32) (*Window, error) {
	logger := logging.GetInternalLogger()

	width, height := maxWidth/2, maxHeight/2
	var windowFlags uint32 = sdl.WINDOW_HIDDEN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI

	logger.Debug("Initializing SDL Window", "width", width, "height", height)

	sdlWindow, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, windowFlags)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(sdlWindow, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		logger.Warn("Accelerated renderer unavailable, falling back to software", "error", err)
		renderer, err = sdl.CreateRenderer(sdlWindow, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		sdlWindow.Destroy()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	return &Window{
		Window:    sdlWindow,
		Renderer:  renderer,
		Title:     title,
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
	}, nil
}

func GetWindow() *Window {
	return window
}

// FitToImage sizes the window to the image, capped at the maximum window
// size with the ratio preserved, centres it and shows it.
func (window *Window) FitToImage(imageWidth, imageHeight int) {
	w, h := presenter.FitWithin(imageWidth, imageHeight, int(window.MaxWidth), int(window.MaxHeight))
	window.Window.SetSize(int32(w), int32(h))
	window.Window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
	window.Window.Show()
	window.Window.Raise()
}

func (window *Window) SetTitle(title string) {
	if title == "" || title == window.Title {
		return
	}
	window.Title = title
	window.Window.SetTitle(title)
}

// DrawableSize is the renderer output size in pixels, which differs from the
// window size on high density displays.
func (window *Window) DrawableSize() presenter.Size {
	w, h, err := window.Renderer.GetOutputSize()
	if err != nil {
		ww, wh := window.Window.GetSize()
		return presenter.Size{Width: int(ww), Height: int(wh)}
	}
	return presenter.Size{Width: int(w), Height: int(h)}
}

// ScaleFactor relates layout constants to the current drawable width.
func (window *Window) ScaleFactor() float32 {
	return scaleFor(int32(window.DrawableSize().Width))
}

func (window *Window) closeWindow() {
	window.Renderer.Destroy()
	window.Window.Destroy()
}

// SDLCleanup releases fonts, the window and the SDL subsystems.
func SDLCleanup() {
	closeIcons()
	closeFonts()
	if window != nil {
		window.closeWindow()
		window = nil
	}
	ttf.Quit()
	sdl.Quit()
}
