package viewer_test

import (
	"context"
	"errors"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/catalog"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/i18n"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/notify"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/platform/hyprpaper"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/presenter"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/viewer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screen = presenter.Size{Width: 800, Height: 600}

type fakeTexture struct{ destroyed bool }

func (t *fakeTexture) Upload([]byte, int) error { return nil }
func (t *fakeTexture) Destroy() error {
	t.destroyed = true
	return nil
}

type fakeDevice struct{ textures []*fakeTexture }

func (d *fakeDevice) CreateTexture(int, int) (presenter.Texture, error) {
	tex := &fakeTexture{}
	d.textures = append(d.textures, tex)
	return tex, nil
}

// fakeDecoder sizes each image from its file name and fails for names
// containing "broken".
type fakeDecoder struct {
	decoded []string
}

func (d *fakeDecoder) Decode(path string) (*image.RGBA, error) {
	d.decoded = append(d.decoded, filepath.Base(path))
	if strings.Contains(path, "broken") {
		return nil, errors.New("corrupt data")
	}
	return image.NewRGBA(image.Rect(0, 0, 40, 20)), nil
}

type fakeSetter struct {
	paths  []string
	err    error
	during func()
}

func (s *fakeSetter) Set(_ context.Context, path string) error {
	s.paths = append(s.paths, path)
	if s.during != nil {
		s.during()
	}
	return s.err
}

type fixture struct {
	dir     string
	viewer  *viewer.Viewer
	device  *fakeDevice
	decoder *fakeDecoder
	setter  *fakeSetter

	now       time.Time
	removeErr error
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()
	require.NoError(t, i18n.Init(nil))

	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("0123456789"), 0o644))
	}

	f := &fixture{
		dir:     dir,
		device:  &fakeDevice{},
		decoder: &fakeDecoder{},
		setter:  &fakeSetter{},
		now:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	remove := func(path string) error {
		if f.removeErr != nil {
			return f.removeErr
		}
		return os.Remove(path)
	}
	f.viewer = viewer.New(
		presenter.New(f.device, screen),
		viewer.WithDecoder(f.decoder.Decode),
		viewer.WithWallpaperSetter(f.setter),
		viewer.WithSink(notify.NewSink(notify.WithClock(func() time.Time { return f.now }))),
		viewer.WithCatalog(catalog.New(catalog.WithRemover(remove))),
	)
	return f
}

func (f *fixture) open(t *testing.T) {
	t.Helper()
	_, err := f.viewer.Open(f.dir, screen)
	require.NoError(t, err)
}

func (f *fixture) messages() []string {
	var out []string
	for _, n := range f.viewer.Notifications() {
		out = append(out, n.Message)
	}
	return out
}

func (f *fixture) lastNotification(t *testing.T) notify.Notification {
	t.Helper()
	all := f.viewer.Notifications()
	require.NotEmpty(t, all)
	return all[len(all)-1]
}

func (f *fixture) press(t *testing.T, actions ...interaction.Action) bool {
	t.Helper()
	return f.viewer.HandleKey(context.Background(), actions)
}

func TestOpenPresentsFirstImage(t *testing.T) {
	f := newFixture(t, "b.jpg", "a.png")

	sel, err := f.viewer.Open(f.dir, screen)
	require.NoError(t, err)

	assert.Equal(t, "EleViewr - a.png", sel.Title)
	assert.Equal(t, 40, sel.Width)
	assert.Equal(t, "EleViewr - a.png", f.viewer.Title())
	assert.Equal(t, viewer.Status{Index: 1, Count: 2, Path: filepath.Join(f.dir, "a.png")}, f.viewer.Status())
	assert.Equal(t, []string{"Loading image: " + filepath.Join(f.dir, "a.png")}, f.messages())
}

func TestOpenFileSelectsIt(t *testing.T) {
	f := newFixture(t, "a.png", "b.jpg")

	sel, err := f.viewer.Open(filepath.Join(f.dir, "b.jpg"), screen)
	require.NoError(t, err)
	assert.Equal(t, "EleViewr - b.jpg", sel.Title)
}

func TestOpenFatalErrors(t *testing.T) {
	f := newFixture(t)
	_, err := f.viewer.Open(f.dir, screen)
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)

	_, err = f.viewer.Open(filepath.Join(f.dir, "missing"), screen)
	assert.ErrorIs(t, err, catalog.ErrPathNotFound)

	f = newFixture(t, "broken.png")
	_, err = f.viewer.Open(f.dir, screen)
	assert.Error(t, err)
}

func TestNavigateWrapsAndNotifies(t *testing.T) {
	f := newFixture(t, "a.png", "b.jpg", "c.gif")
	f.open(t)

	assert.False(t, f.press(t, interaction.ActionPreviousImage))
	assert.Equal(t, "EleViewr - c.gif", f.viewer.Title())
	assert.Equal(t, "Previous image: EleViewr - c.gif", f.lastNotification(t).Message)

	assert.False(t, f.press(t, interaction.ActionNextImage))
	assert.Equal(t, "EleViewr - a.png", f.viewer.Title())
	assert.Equal(t, "Next image: EleViewr - a.png", f.lastNotification(t).Message)

	require.Len(t, f.device.textures, 3)
	assert.True(t, f.device.textures[0].destroyed)
	assert.True(t, f.device.textures[1].destroyed)
	assert.False(t, f.device.textures[2].destroyed)
}

func TestNavigateFailureRestoresCursor(t *testing.T) {
	f := newFixture(t, "a.png", "b-broken.png", "c.gif")
	f.open(t)

	err := f.viewer.Navigate(catalog.Next)
	require.Error(t, err)

	assert.Equal(t, 1, f.viewer.Status().Index)
	assert.Equal(t, "EleViewr - a.png", f.viewer.Title())

	last := f.lastNotification(t)
	assert.Equal(t, notify.Error, last.Severity)
	assert.Equal(t, "Failed to load image: corrupt data", last.Message)
}

func TestExit(t *testing.T) {
	f := newFixture(t, "a.png")
	f.open(t)

	assert.True(t, f.press(t, interaction.ActionExit, interaction.ActionCancelDelete))
}

func TestDeleteWithConfirmation(t *testing.T) {
	f := newFixture(t, "a.png", "b.jpg", "c.gif")
	f.open(t)
	require.NoError(t, f.viewer.Navigate(catalog.Next))

	f.press(t, interaction.ActionDeleteImage)
	assert.Equal(t, interaction.ModeDeleteConfirmation, f.viewer.Mode())
	assert.Equal(t, "Delete confirmation: Y=Yes, N=No, A=Don't ask again", f.lastNotification(t).Message)
	assert.FileExists(t, filepath.Join(f.dir, "b.jpg"))

	assert.False(t, f.press(t, interaction.ActionConfirmDelete))
	assert.Equal(t, interaction.ModeNormal, f.viewer.Mode())
	assert.NoFileExists(t, filepath.Join(f.dir, "b.jpg"))

	assert.Equal(t, viewer.Status{Index: 2, Count: 2, Path: filepath.Join(f.dir, "c.gif")}, f.viewer.Status())
	assert.Equal(t, "EleViewr - c.gif", f.viewer.Title())
	assert.Contains(t, f.messages(), "Deleted image: "+filepath.Join(f.dir, "b.jpg")+" (10 B)")
}

func TestEscapeCancelsDelete(t *testing.T) {
	f := newFixture(t, "a.png")
	f.open(t)

	f.press(t, interaction.ActionDeleteImage)
	exit := f.press(t, interaction.ActionExit, interaction.ActionCancelDelete)

	assert.False(t, exit)
	assert.Equal(t, interaction.ModeNormal, f.viewer.Mode())
	assert.Equal(t, "Delete cancelled.", f.lastNotification(t).Message)
	assert.FileExists(t, filepath.Join(f.dir, "a.png"))
}

func TestAlwaysDeleteSkipsFurtherPrompts(t *testing.T) {
	f := newFixture(t, "a.png", "b.jpg", "c.gif")
	f.open(t)

	f.press(t, interaction.ActionDeleteImage)
	f.press(t, interaction.ActionAlwaysDelete)

	assert.True(t, f.viewer.State().SkipConfirm)
	assert.NoFileExists(t, filepath.Join(f.dir, "a.png"))
	assert.Equal(t, "Delete confirmation disabled for this session.", f.lastNotification(t).Message)

	f.press(t, interaction.ActionDeleteImage)
	assert.Equal(t, interaction.ModeNormal, f.viewer.Mode())
	assert.NoFileExists(t, filepath.Join(f.dir, "b.jpg"))
	assert.Equal(t, 1, f.viewer.Status().Count)
}

func TestDeleteLastImageClearsPresenter(t *testing.T) {
	f := newFixture(t, "a.png")
	f.open(t)

	require.NoError(t, f.viewer.Delete())

	assert.Equal(t, viewer.Status{}, f.viewer.Status())
	assert.True(t, f.device.textures[0].destroyed)
	assert.Equal(t, notify.Warning, f.lastNotification(t).Severity)

	f.viewer.Frame(func(p *presenter.Presenter) {
		_, bound := p.Binding()
		assert.False(t, bound)
	})

	err := f.viewer.Delete()
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestDeleteMissingFile(t *testing.T) {
	f := newFixture(t, "a.png", "b.jpg")
	f.open(t)
	require.NoError(t, os.Remove(filepath.Join(f.dir, "a.png")))

	err := f.viewer.Delete()
	assert.ErrorIs(t, err, catalog.ErrMissingFile)
	assert.Equal(t, 2, f.viewer.Status().Count)
	assert.Equal(t, notify.Error, f.lastNotification(t).Severity)
}

func TestSetWallpaper(t *testing.T) {
	f := newFixture(t, "a.png")
	f.open(t)

	f.press(t, interaction.ActionSetWallpaper)

	want, err := filepath.EvalSymlinks(filepath.Join(f.dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{want}, f.setter.paths)

	last := f.lastNotification(t)
	assert.Equal(t, notify.Success, last.Severity)
	assert.Equal(t, "Wallpaper set to: "+want, last.Message)
}

func TestSetWallpaperFailures(t *testing.T) {
	f := newFixture(t, "a.png")
	f.open(t)

	f.setter.err = &hyprpaper.ExternalToolError{Step: hyprpaper.StepPreload, Stderr: "bad path", Err: &exec.ExitError{}}
	err := f.viewer.SetWallpaper(context.Background())
	assert.ErrorIs(t, err, hyprpaper.ErrExternalTool)
	assert.Equal(t, "Failed to preload image: bad path", f.lastNotification(t).Message)

	f.setter.err = errors.New("hyprctl not found")
	require.Error(t, f.viewer.SetWallpaper(context.Background()))
	assert.Equal(t, "Error setting wallpaper: hyprctl not found", f.lastNotification(t).Message)
	assert.Equal(t, notify.Error, f.lastNotification(t).Severity)
}

func TestResizeUpdatesAspect(t *testing.T) {
	f := newFixture(t, "a.png")
	f.open(t)

	f.viewer.Resize(presenter.Size{Width: 1000, Height: 500})
	f.viewer.Frame(func(p *presenter.Presenter) {
		assert.InDelta(t, 2.0, p.Uniforms().ScreenAspect, 1e-6)
		assert.InDelta(t, 2.0, p.Uniforms().ImageAspect, 1e-6)
	})
}

func TestRescanPicksUpNewFiles(t *testing.T) {
	f := newFixture(t, "b.png")
	f.open(t)
	decodes := len(f.decoder.decoded)

	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "a.png"), []byte("x"), 0o644))
	require.NoError(t, f.viewer.Rescan())

	assert.Equal(t, viewer.Status{Index: 2, Count: 2, Path: filepath.Join(f.dir, "b.png")}, f.viewer.Status())
	assert.Len(t, f.decoder.decoded, decodes, "current image kept without reloading")
	assert.Equal(t, "Directory changed: 2 images", f.lastNotification(t).Message)
}

func TestRescanCurrentRemovedExternally(t *testing.T) {
	f := newFixture(t, "a.png", "b.png")
	f.open(t)

	require.NoError(t, os.Remove(filepath.Join(f.dir, "a.png")))
	require.NoError(t, f.viewer.Rescan())
	assert.Equal(t, "EleViewr - b.png", f.viewer.Title())

	require.NoError(t, os.Remove(filepath.Join(f.dir, "b.png")))
	require.NoError(t, f.viewer.Rescan())
	assert.Equal(t, viewer.Status{}, f.viewer.Status())
	assert.Equal(t, notify.Warning, f.lastNotification(t).Severity)
}

func TestRescanLoadFailureClearsStaleImage(t *testing.T) {
	f := newFixture(t, "a.png", "b_broken.png")
	f.open(t)

	require.NoError(t, os.Remove(filepath.Join(f.dir, "a.png")))
	err := f.viewer.Rescan()
	require.Error(t, err)

	assert.True(t, f.device.textures[0].destroyed)
	f.viewer.Frame(func(p *presenter.Presenter) {
		_, bound := p.Binding()
		assert.False(t, bound)
	})
	assert.Equal(t, "EleViewr - b_broken.png", f.viewer.Title())
	assert.Equal(t, viewer.Status{Index: 1, Count: 1, Path: filepath.Join(f.dir, "b_broken.png")}, f.viewer.Status())
	assert.Equal(t, notify.Error, f.lastNotification(t).Severity)
}

func TestDeleteRemoveFailureKeepsImage(t *testing.T) {
	f := newFixture(t, "a.png", "b.jpg")
	f.open(t)
	f.removeErr = errors.New("permission denied")

	err := f.viewer.Delete()
	require.Error(t, err)

	assert.Equal(t, viewer.Status{Index: 1, Count: 2, Path: filepath.Join(f.dir, "a.png")}, f.viewer.Status())
	assert.False(t, f.device.textures[0].destroyed)
	assert.FileExists(t, filepath.Join(f.dir, "a.png"))
	assert.Equal(t, notify.Error, f.lastNotification(t).Severity)
}

func TestNotificationsExpireOnTick(t *testing.T) {
	f := newFixture(t, "a.png", "b.jpg")
	f.open(t)
	require.NotEmpty(t, f.viewer.Notifications())

	f.now = f.now.Add(time.Second)
	require.NoError(t, f.viewer.Navigate(catalog.Next))

	f.viewer.Tick(f.now.Add(notify.DefaultDuration - time.Second + time.Millisecond))
	assert.Equal(t, []string{"Loading image: " + filepath.Join(f.dir, "b.jpg"), "Next image: EleViewr - b.jpg"}, f.messages())

	f.viewer.Tick(f.now.Add(notify.DefaultDuration + time.Millisecond))
	assert.Empty(t, f.viewer.Notifications())
}

func TestSetWallpaperDoesNotHoldLock(t *testing.T) {
	f := newFixture(t, "a.png")
	f.open(t)

	var during viewer.Status
	f.setter.during = func() { during = f.viewer.Status() }

	f.press(t, interaction.ActionSetWallpaper)
	assert.Equal(t, 1, during.Count)
	assert.Equal(t, notify.Success, f.lastNotification(t).Severity)
}
