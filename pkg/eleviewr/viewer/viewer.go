// Package viewer connects the catalog, the presenter, the interaction state
// machine and the notification sink. Every exported method takes the
// viewer's lock, so the frame loop and event handling never interleave.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/catalog"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/i18n"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/imagefile"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/notify"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/platform/hyprpaper"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
)

// Decoder turns an image file into RGBA pixels.
type Decoder func(path string) (*image.RGBA, error)

type WallpaperSetter interface {
	Set(ctx context.Context, path string) error
}

// Status is what the status pill shows. Index is 1-based; both fields are 0
// when the catalog is empty.
type Status struct {
	Index int
	Count int
	Path  string
}

type Viewer struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	presenter *presenter.Presenter
	sink      *notify.Sink
	wallpaper WallpaperSetter
	decode    Decoder
	bindings  keymap.Bindings

	state interaction.State
	title string
}

type Option func(*Viewer)

func WithDecoder(decode Decoder) Option {
	return func(v *Viewer) {
		v.decode = decode
	}
}

func WithWallpaperSetter(setter WallpaperSetter) Option {
	return func(v *Viewer) {
		v.wallpaper = setter
	}
}

func WithSink(sink *notify.Sink) Option {
	return func(v *Viewer) {
		v.sink = sink
	}
}

func WithCatalog(c *catalog.Catalog) Option {
	return func(v *Viewer) {
		v.catalog = c
	}
}

// WithBindings sets the bindings used to name keys in the delete prompt.
func WithBindings(bindings keymap.Bindings) Option {
	return func(v *Viewer) {
		v.bindings = bindings
	}
}

func New(p *presenter.Presenter, opts ...Option) *Viewer {
	v := &Viewer{
		catalog:   catalog.New(),
		presenter: p,
		sink:      notify.NewSink(),
		wallpaper: hyprpaper.New(),
		decode:    imagefile.Decode,
		bindings:  keymap.DefaultBindings(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open scans path and presents its selected image. Any error here is fatal
// to the caller: a missing path, an empty directory or an undecodable first
// image.
func (v *Viewer) Open(path string, screen presenter.Size) (presenter.Selection, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.catalog.Scan(path); err != nil {
		return presenter.Selection{}, err
	}

	current, err := v.catalog.Current()
	if err != nil {
		return presenter.Selection{}, err
	}

	return v.load(current, screen)
}

// load decodes and presents path. The caller holds the lock.
func (v *Viewer) load(path string, screen presenter.Size) (presenter.Selection, error) {
	v.sink.Info(i18n.Localize(msgLoadingImage, map[string]interface{}{"Path": path}))

	img, err := v.decode(path)
	if err != nil {
		return presenter.Selection{}, err
	}

	sel, err := v.presenter.Present(img, path, screen)
	if err != nil {
		return presenter.Selection{}, err
	}

	v.title = sel.Title
	logging.GetLogger().Debug("Image presented", "path", path, "width", sel.Width, "height", sel.Height)
	return sel, nil
}

// HandleKey resolves the actions bound to a pressed key and runs the
// resulting effect. It returns true when the viewer should exit.
func (v *Viewer) HandleKey(ctx context.Context, actions []interaction.Action) bool {
	v.mu.Lock()

	next, effect := interaction.ResolveFirst(v.state, actions)
	v.state = next

	if effect.Kind == interaction.EffectSetWallpaper {
		v.mu.Unlock()
		v.SetWallpaper(ctx)
		return false
	}
	defer v.mu.Unlock()

	switch effect.Kind {
	case interaction.EffectRequestExit:
		return true
	case interaction.EffectNavigate:
		v.navigate(effect.Direction)
	case interaction.EffectShowDeleteConfirmation:
		v.sink.Info(i18n.Localize(msgDeletePrompt, map[string]interface{}{
			"Confirm": v.bindings.Hint(interaction.ActionConfirmDelete),
			"Cancel":  v.bindings.Hint(interaction.ActionCancelDelete),
			"Always":  v.bindings.Hint(interaction.ActionAlwaysDelete),
		}))
	case interaction.EffectCancelDelete:
		v.sink.Info(i18n.Localize(msgDeleteCancelled, nil))
	case interaction.EffectDeleteNow:
		v.delete()
		if effect.SkipConfirmSet {
			v.sink.Success(i18n.Localize(msgDeleteConfirmDisabled, nil))
		}
	}

	return false
}

// Navigate moves to the next or previous image. When the new image cannot
// be shown the cursor goes back to where it was.
func (v *Viewer) Navigate(direction catalog.Direction) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.navigate(direction)
}

func (v *Viewer) navigate(direction catalog.Direction) error {
	previous := v.catalog.Index()

	if err := v.catalog.Advance(direction); err != nil {
		v.sink.Warning(i18n.Localize(msgNoImageSelected, nil))
		return err
	}

	current, _ := v.catalog.Current()
	sel, err := v.load(current, v.presenter.Screen())
	if err != nil {
		v.catalog.Restore(previous)
		v.sink.Error(i18n.Localize(msgLoadFailed, map[string]interface{}{"Error": err.Error()}))
		logging.GetLogger().Error("Unable to load image", "path", current, "error", err)
		return err
	}

	msg := msgNextImage
	if direction == catalog.Previous {
		msg = msgPreviousImage
	}
	v.sink.Info(i18n.Localize(msg, map[string]interface{}{"Title": sel.Title}))
	return nil
}

// Delete removes the current image from disk and shows the one that takes
// its place, or nothing when the directory is now empty.
func (v *Viewer) Delete() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.delete()
}

func (v *Viewer) delete() error {
	logger := logging.GetLogger()

	current, err := v.catalog.Current()
	if err != nil {
		v.sink.Error(i18n.Localize(msgDeleteFailed, map[string]interface{}{"Error": err.Error()}))
		return err
	}

	size := "?"
	if info, statErr := os.Stat(current); statErr == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	empty, err := v.catalog.DeleteCurrent()
	if err != nil {
		v.sink.Error(i18n.Localize(msgDeleteFailed, map[string]interface{}{"Error": err.Error()}))
		logger.Error("Unable to delete image", "path", current, "error", err)
		return err
	}

	logger.Info("Deleted image", "path", current, "size", size)
	v.sink.Success(i18n.Localize(msgImageDeleted, map[string]interface{}{"Path": current, "Size": size}))

	if empty {
		v.showEmpty()
		return nil
	}

	next, _ := v.catalog.Current()
	if _, err := v.load(next, v.presenter.Screen()); err != nil {
		// The deleted image must not stay on screen.
		v.presenter.Clear()
		v.title = presenter.Title(next)
		v.sink.Error(i18n.Localize(msgLoadFailed, map[string]interface{}{"Error": err.Error()}))
		logger.Error("Unable to load image", "path", next, "error", err)
		return err
	}
	return nil
}

func (v *Viewer) showEmpty() {
	v.presenter.Clear()
	v.title = presenter.Title(v.catalog.Dir())
	v.sink.Warning(i18n.Localize(msgCatalogEmpty, map[string]interface{}{"Dir": v.catalog.Dir()}))
}

// SetWallpaper applies the current image as the wallpaper of every monitor.
// The lock is released while the external tool runs.
func (v *Viewer) SetWallpaper(ctx context.Context) error {
	v.mu.Lock()
	current, err := v.catalog.Current()
	if err != nil {
		v.sink.Warning(i18n.Localize(msgNoImageSelected, nil))
		v.mu.Unlock()
		return err
	}
	v.mu.Unlock()

	path := canonicalPath(current)
	setErr := v.wallpaper.Set(ctx, path)

	v.mu.Lock()
	defer v.mu.Unlock()

	if setErr != nil {
		v.sink.Error(wallpaperFailure(setErr))
		return fmt.Errorf("setting wallpaper: %w", setErr)
	}

	v.sink.Success(i18n.Localize(msgWallpaperSet, map[string]interface{}{"Path": path}))
	return nil
}

// canonicalPath is the absolute path with symlinks resolved, or as much of
// that as could be worked out.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func wallpaperFailure(err error) string {
	var toolErr *hyprpaper.ExternalToolError
	if !errors.As(err, &toolErr) || !toolErr.Spawned() {
		return i18n.Localize(msgWallpaperError, map[string]interface{}{"Error": err.Error()})
	}

	detail := toolErr.Stderr
	if detail == "" {
		detail = toolErr.Err.Error()
	}

	if toolErr.Step == hyprpaper.StepPreload {
		return i18n.Localize(msgWallpaperPreload, map[string]interface{}{"Detail": detail})
	}
	return i18n.Localize(msgWallpaperApply, map[string]interface{}{"Detail": detail})
}

// Resize forwards a new drawable size to the presenter.
func (v *Viewer) Resize(screen presenter.Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.presenter.Resize(screen)
}

// Rescan re-reads the directory after an external change and reloads the
// image if the one on screen is gone.
func (v *Viewer) Rescan() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	before, _ := v.catalog.Current()

	err := v.catalog.Rescan()
	if errors.Is(err, catalog.ErrEmptyCatalog) && v.catalog.Len() == 0 && v.catalog.Dir() != "" {
		if _, bound := v.presenter.Binding(); bound {
			v.showEmpty()
		}
		return nil
	}
	if err != nil {
		logging.GetLogger().Error("Unable to rescan directory", "dir", v.catalog.Dir(), "error", err)
		return err
	}

	count := v.catalog.Len()
	v.sink.Info(i18n.LocalizePlural(msgDirectoryRescanned, count, map[string]interface{}{"Count": count}))

	current, _ := v.catalog.Current()
	_, bound := v.presenter.Binding()
	if current == before && bound {
		return nil
	}

	if _, err := v.load(current, v.presenter.Screen()); err != nil {
		// The previous image may be gone from disk; do not keep showing it.
		v.presenter.Clear()
		v.title = presenter.Title(current)
		v.sink.Error(i18n.Localize(msgLoadFailed, map[string]interface{}{"Error": err.Error()}))
		logging.GetLogger().Error("Unable to load image", "path", current, "error", err)
		return err
	}
	return nil
}

// Tick drops expired notifications.
func (v *Viewer) Tick(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sink.Tick(now)
}

func (v *Viewer) Mode() interaction.Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Mode
}

func (v *Viewer) State() interaction.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Viewer) Notifications() []notify.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sink.Snapshot()
}

func (v *Viewer) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()

	current, err := v.catalog.Current()
	if err != nil {
		return Status{}
	}
	return Status{
		Index: v.catalog.Index() + 1,
		Count: v.catalog.Len(),
		Path:  current,
	}
}

// Dir is the directory the catalog was scanned from.
func (v *Viewer) Dir() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.catalog.Dir()
}

// Title is the window title for what is on screen.
func (v *Viewer) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

// Frame calls draw with the presenter under the lock, so the binding cannot
// change while it is being drawn.
func (v *Viewer) Frame(draw func(p *presenter.Presenter)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	draw(v.presenter)
}
