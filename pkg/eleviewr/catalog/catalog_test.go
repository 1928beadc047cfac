package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func scanned(t *testing.T, names ...string) (*catalog.Catalog, string) {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, names...)
	c := catalog.New()
	require.NoError(t, c.Scan(dir))
	return c, dir
}

func TestScanFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.GIF", "a.png", "notes.txt", "b.jpeg", "d.WebP", "e.tiff", "f.bmp", "g.jpg", "archive.zip")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFiles(t, filepath.Join(dir, "sub"), "deep.png")

	c := catalog.New()
	require.NoError(t, c.Scan(dir))

	assert.Equal(t, []string{"a.png", "b.jpeg", "c.GIF", "d.WebP", "e.tiff", "f.bmp", "g.jpg"}, baseNames(c.Entries()))
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, dir, c.Dir())
}

func TestScanFileSelectsTarget(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.jpg", "c.gif")

	c := catalog.New()
	require.NoError(t, c.Scan(filepath.Join(dir, "b.jpg")))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.Index())
	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "b.jpg", filepath.Base(current))
}

func TestScanNonImageFileFallsBackToFirst(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.jpg", "readme.txt")

	c := catalog.New()
	require.NoError(t, c.Scan(filepath.Join(dir, "readme.txt")))
	assert.Equal(t, 0, c.Index())
}

func TestScanEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "notes.txt")

	c := catalog.New()
	err := c.Scan(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrEmptyCatalog))
	assert.Equal(t, 0, c.Len())

	_, err = c.Current()
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestScanFailureKeepsPreviousState(t *testing.T) {
	c, dir := scanned(t, "a.png", "b.jpg", "c.gif")
	require.NoError(t, c.Advance(catalog.Next))

	empty := t.TempDir()
	err := c.Scan(empty)
	require.ErrorIs(t, err, catalog.ErrEmptyCatalog)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, dir, c.Dir())
}

func TestScanMissingPath(t *testing.T) {
	c := catalog.New()
	err := c.Scan(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, catalog.ErrPathNotFound)
}

func TestAdvanceWrapsAround(t *testing.T) {
	c, _ := scanned(t, "a.png", "b.jpg", "c.gif", "d.bmp")

	start := c.Index()
	for i := 0; i < c.Len(); i++ {
		require.NoError(t, c.Advance(catalog.Next))
	}
	assert.Equal(t, start, c.Index())

	require.NoError(t, c.Advance(catalog.Previous))
	assert.Equal(t, 3, c.Index())
	require.NoError(t, c.Advance(catalog.Next))
	assert.Equal(t, 0, c.Index())
}

func TestAdvancePreviousInvertsNext(t *testing.T) {
	c, _ := scanned(t, "a.png", "b.jpg", "c.gif")

	for i := 0; i < c.Len(); i++ {
		c.Restore(i)
		require.NoError(t, c.Advance(catalog.Next))
		require.NoError(t, c.Advance(catalog.Previous))
		assert.Equal(t, i, c.Index())
	}
}

func TestAdvanceEmpty(t *testing.T) {
	c := catalog.New()
	assert.ErrorIs(t, c.Advance(catalog.Next), catalog.ErrEmptyCatalog)
	assert.ErrorIs(t, c.Advance(catalog.Previous), catalog.ErrEmptyCatalog)
}

func TestDeleteCurrentMiddle(t *testing.T) {
	c, dir := scanned(t, "a.png", "b.jpg", "c.gif")
	require.NoError(t, c.Advance(catalog.Next))

	empty, err := c.DeleteCurrent()
	require.NoError(t, err)
	assert.False(t, empty)

	assert.Equal(t, []string{"a.png", "c.gif"}, baseNames(c.Entries()))
	assert.Equal(t, 1, c.Index())
	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "c.gif", filepath.Base(current))

	_, err = os.Stat(filepath.Join(dir, "b.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteCurrentLastIndexClamps(t *testing.T) {
	c, _ := scanned(t, "a.png", "b.jpg", "c.gif")
	require.NoError(t, c.Advance(catalog.Previous))
	require.Equal(t, 2, c.Index())

	empty, err := c.DeleteCurrent()
	require.NoError(t, err)
	assert.False(t, empty)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Index())
}

func TestDeleteCurrentSingleEntry(t *testing.T) {
	c, _ := scanned(t, "only.png")

	empty, err := c.DeleteCurrent()
	require.NoError(t, err)
	assert.True(t, empty)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Index())

	_, err = c.DeleteCurrent()
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestDeleteCurrentMissingFile(t *testing.T) {
	c, dir := scanned(t, "a.png", "b.jpg")
	require.NoError(t, os.Remove(filepath.Join(dir, "a.png")))

	_, err := c.DeleteCurrent()
	assert.ErrorIs(t, err, catalog.ErrMissingFile)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 0, c.Index())
}

func TestDeleteCurrentRemoverFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.jpg")

	boom := errors.New("read-only filesystem")
	c := catalog.New(catalog.WithRemover(func(string) error { return boom }))
	require.NoError(t, c.Scan(dir))

	_, err := c.DeleteCurrent()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, c.Len())
}

func TestRescanKeepsSelection(t *testing.T) {
	c, dir := scanned(t, "b.jpg", "c.gif")
	require.NoError(t, c.Advance(catalog.Next))

	writeFiles(t, dir, "a.png")
	require.NoError(t, c.Rescan())

	assert.Equal(t, []string{"a.png", "b.jpg", "c.gif"}, baseNames(c.Entries()))
	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "c.gif", filepath.Base(current))
}

func TestRescanWithoutScan(t *testing.T) {
	assert.ErrorIs(t, catalog.New().Rescan(), catalog.ErrEmptyCatalog)
}

func TestIsImage(t *testing.T) {
	assert.True(t, catalog.IsImage("/tmp/photo.JPG"))
	assert.True(t, catalog.IsImage("scan.tiff"))
	assert.False(t, catalog.IsImage("scan.tif"))
	assert.False(t, catalog.IsImage("notes.txt"))
	assert.False(t, catalog.IsImage("png"))
	assert.False(t, catalog.IsImage(".png"))
	assert.False(t, catalog.IsImage("/photos/.JPG"))
	assert.True(t, catalog.IsImage(".hidden.png"))
}

func TestScanSkipsBareExtensionDotfile(t *testing.T) {
	c, _ := scanned(t, ".png", "a.png")
	assert.Equal(t, []string{"a.png"}, baseNames(c.Entries()))
}

func TestRescanClampsWhenCurrentVanishes(t *testing.T) {
	c, dir := scanned(t, "a.png", "b.jpg", "c.gif")
	require.NoError(t, c.Advance(catalog.Next))

	require.NoError(t, os.Remove(filepath.Join(dir, "b.jpg")))
	require.NoError(t, c.Rescan())
	current, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "c.gif", filepath.Base(current))
	assert.Equal(t, 1, c.Index())

	require.NoError(t, os.Remove(filepath.Join(dir, "c.gif")))
	require.NoError(t, c.Rescan())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, []string{"a.png"}, baseNames(c.Entries()))
}

func TestConcreteScenario(t *testing.T) {
	c, _ := scanned(t, "a.png", "b.jpg", "c.gif")
	assert.Equal(t, 0, c.Index())

	require.NoError(t, c.Advance(catalog.Next))
	assert.Equal(t, 1, c.Index())

	_, err := c.DeleteCurrent()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "c.gif"}, baseNames(c.Entries()))
	assert.Equal(t, 1, c.Index())
}

func TestRescanEmptiedDirectory(t *testing.T) {
	c, dir := scanned(t, "a.png")
	require.NoError(t, os.Remove(filepath.Join(dir, "a.png")))

	assert.ErrorIs(t, c.Rescan(), catalog.ErrEmptyCatalog)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, dir, c.Dir())

	_, err := c.Current()
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)

	writeFiles(t, dir, "b.png")
	require.NoError(t, c.Rescan())
	assert.Equal(t, 1, c.Len())
}
