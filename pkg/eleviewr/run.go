package eleviewr

import (
	"context"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/viewer"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/watch"
)

const frameDelay = 16

type RunOptions struct {
	// Path is an image file or a directory of images.
	Path      string
	Bindings  keymap.Bindings
	Wallpaper viewer.WallpaperSetter
	// Watch rescans the directory when image files are added or removed.
	Watch bool
}

// Run opens Path and drives the event and frame loop until the user exits,
// the window is closed or ctx is cancelled. Errors opening the first image
// are returned; everything later is reported on screen.
func Run(ctx context.Context, options RunOptions) error {
	logger := logging.GetLogger()
	window := internal.GetWindow()

	viewerOpts := []viewer.Option{viewer.WithBindings(options.Bindings)}
	if options.Wallpaper != nil {
		viewerOpts = append(viewerOpts, viewer.WithWallpaperSetter(options.Wallpaper))
	}

	device := internal.NewTextureDevice(window.Renderer)
	v := viewer.New(presenter.New(device, window.DrawableSize()), viewerOpts...)

	sel, err := v.Open(options.Path, window.DrawableSize())
	if err != nil {
		return err
	}
	defer v.Frame(func(p *presenter.Presenter) { p.Clear() })

	window.FitToImage(sel.Width, sel.Height)
	window.SetTitle(sel.Title)
	v.Resize(window.DrawableSize())

	logger.Info("Viewer started", "path", options.Path, "title", sel.Title, "width", sel.Width, "height", sel.Height)

	var watcher *watch.Watcher
	if options.Watch {
		watcher, err = watch.New(v.Dir())
		if err != nil {
			logger.Warn("Directory watching disabled", "dir", v.Dir(), "error", err)
		} else {
			defer watcher.Close()
		}
	}

	processor := internal.NewInputProcessor(options.Bindings)

	for {
		if !handleEvents(ctx, v, processor, window) {
			break
		}

		select {
		case <-ctx.Done():
			logger.Info("Viewer interrupted", "reason", ctx.Err())
			return nil
		default:
		}

		now := time.Now()
		if watcher != nil && watcher.Consume(now) {
			v.Rescan()
		}
		v.Tick(now)

		window.SetTitle(v.Title())
		renderFrame(window, v, options.Bindings, now)
		sdl.Delay(frameDelay)
	}

	logger.Info("Viewer closed")
	return nil
}

// handleEvents drains the SDL queue and reports whether the loop keeps going.
func handleEvents(ctx context.Context, v *viewer.Viewer, processor *internal.Processor, window *internal.Window) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				v.Resize(window.DrawableSize())
			}

		case *sdl.KeyboardEvent:
			actions := processor.ProcessKeyboardEvent(e)
			if len(actions) == 0 {
				continue
			}
			if v.HandleKey(ctx, actions) {
				return false
			}
		}
	}
	return true
}

func renderFrame(window *internal.Window, v *viewer.Viewer, bindings keymap.Bindings, now time.Time) {
	renderer := window.Renderer
	theme := internal.GetTheme()
	screen := window.DrawableSize()
	scale := window.ScaleFactor()

	renderer.SetDrawColor(theme.BackgroundColor.R, theme.BackgroundColor.G, theme.BackgroundColor.B, theme.BackgroundColor.A)
	renderer.Clear()

	drawn := false
	v.Frame(func(p *presenter.Presenter) {
		binding, ok := p.Binding()
		if !ok {
			return
		}
		texture, ok := internal.SDLTexture(binding.Texture)
		if !ok {
			return
		}
		quad := p.Quad(screen)
		renderer.Copy(texture, nil, &sdl.Rect{X: quad.X, Y: quad.Y, W: quad.W, H: quad.H})
		drawn = true
	})

	if !drawn {
		renderEmptyScreen(renderer, screen)
	}

	renderStatusPill(renderer, v.Status(), screen, scale)
	renderNotifications(renderer, v.Notifications(), now, screen, scale)

	if v.Mode() == interaction.ModeDeleteConfirmation {
		renderDeleteConfirmation(renderer, bindings, screen, scale)
	} else {
		renderHints(renderer, bindings, screen, scale)
	}

	renderer.Present()
}
