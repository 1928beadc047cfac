// Package catalog keeps the ordered set of image files found in a directory
// together with the cursor of the image currently on screen.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
	"github.com/gobwas/glob"
)

var (
	ErrEmptyCatalog = errors.New("no images in catalog")
	ErrMissingFile  = errors.New("image file no longer exists")
	ErrPathNotFound = errors.New("file or directory not found")
)

// Extensions lists the recognised image extensions, lower case and without the dot.
var Extensions = []string{"jpg", "jpeg", "png", "gif", "webp", "tiff", "bmp"}

var imagePattern = glob.MustCompile("*.{" + strings.Join(Extensions, ",") + "}")

// Direction selects which way Advance moves the cursor.
type Direction int

const (
	Next Direction = iota
	Previous
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Remover deletes a file from disk.
type Remover func(path string) error

// Catalog is not safe for concurrent use; callers serialise access.
type Catalog struct {
	dir     string
	entries []string
	cursor  int
	remove  Remover
}

type Option func(*Catalog)

// WithRemover replaces os.Remove as the function used by DeleteCurrent.
func WithRemover(remove Remover) Option {
	return func(c *Catalog) {
		c.remove = remove
	}
}

func New(opts ...Option) *Catalog {
	c := &Catalog{remove: os.Remove}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsImage reports whether name carries one of the recognised extensions
// after a non-empty stem, so a bare ".png" does not count.
func IsImage(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	if strings.TrimSuffix(base, filepath.Ext(base)) == "" {
		return false
	}
	return imagePattern.Match(base)
}

// Scan replaces the catalog with the images found next to path.
//
// A file path scans its parent directory and selects that file; a directory
// is scanned as is and the first image is selected. On error the previous
// contents are kept.
func (c *Catalog) Scan(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	dir := path
	target := ""
	if !info.IsDir() {
		dir = filepath.Dir(path)
		target = filepath.Base(path)
	}

	return c.scanDir(dir, target, 0)
}

// Rescan reloads the current directory, keeping the current image selected
// when it is still present. When it is gone the cursor stays at the same
// index, clamped to the new length. Unlike Scan, a directory that no longer holds
// any image empties the catalog before ErrEmptyCatalog is returned.
func (c *Catalog) Rescan() error {
	if c.dir == "" {
		return ErrEmptyCatalog
	}

	target := ""
	if len(c.entries) > 0 {
		target = filepath.Base(c.entries[c.cursor])
	}

	err := c.scanDir(c.dir, target, c.cursor)
	if errors.Is(err, ErrEmptyCatalog) {
		c.entries = nil
		c.cursor = 0
	}
	return err
}

// scanDir selects target when present and otherwise fallback, clamped.
func (c *Catalog) scanDir(dir, target string, fallback int) error {
	logger := logging.GetInternalLogger()

	dirEntries, err := os.ReadDir(dir)
	if err != nil && len(dirEntries) == 0 {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, dir)
		}
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	entries := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if !IsImage(entry.Name()) {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())
		info, err := os.Stat(entryPath)
		if err != nil {
			logger.Debug("Skipping unreadable directory entry", "path", entryPath, "error", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		entries = append(entries, entryPath)
	}

	if len(entries) == 0 {
		return fmt.Errorf("%w: no image files found in directory: %s", ErrEmptyCatalog, dir)
	}

	sort.Strings(entries)

	cursor := min(max(fallback, 0), len(entries)-1)
	if target != "" {
		for i, entry := range entries {
			if filepath.Base(entry) == target {
				cursor = i
				break
			}
		}
	}

	c.dir = dir
	c.entries = entries
	c.cursor = cursor

	logger.Debug("Catalog scanned", "dir", dir, "count", len(entries), "cursor", cursor)

	return nil
}

// Current returns the path under the cursor.
func (c *Catalog) Current() (string, error) {
	if len(c.entries) == 0 {
		return "", ErrEmptyCatalog
	}
	return c.entries[c.cursor], nil
}

// Advance moves the cursor one step with wraparound. The caller reloads the image.
func (c *Catalog) Advance(direction Direction) error {
	n := len(c.entries)
	if n == 0 {
		return ErrEmptyCatalog
	}

	switch direction {
	case Previous:
		if c.cursor == 0 {
			c.cursor = n - 1
		} else {
			c.cursor--
		}
	default:
		c.cursor = (c.cursor + 1) % n
	}

	return nil
}

// DeleteCurrent removes the current image from disk and from the catalog.
// It reports whether the catalog is now empty.
func (c *Catalog) DeleteCurrent() (bool, error) {
	if len(c.entries) == 0 {
		return false, ErrEmptyCatalog
	}

	path := c.entries[c.cursor]
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := c.remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return false, fmt.Errorf("removing %s: %w", path, err)
	}

	c.entries = append(c.entries[:c.cursor], c.entries[c.cursor+1:]...)

	if len(c.entries) == 0 {
		c.cursor = 0
		return true, nil
	}

	if c.cursor >= len(c.entries) {
		c.cursor = len(c.entries) - 1
	}

	return false, nil
}

// Restore puts the cursor back to index. Out of range values are ignored.
func (c *Catalog) Restore(index int) {
	if index >= 0 && index < len(c.entries) {
		c.cursor = index
	}
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Index() int {
	return c.cursor
}

func (c *Catalog) Dir() string {
	return c.dir
}

// Entries returns a copy of the ordered paths.
func (c *Catalog) Entries() []string {
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}
