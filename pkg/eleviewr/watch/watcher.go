// Package watch raises a flag when image files appear in or disappear from a
// directory. The flag is polled by the frame loop, which performs the rescan
// on its own thread.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/atomic"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/catalog"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

const DefaultDebounce = 250 * time.Millisecond

type Watcher struct {
	dir      string
	debounce time.Duration

	fsWatcher *fsnotify.Watcher
	dirty     *atomic.Bool
	lastEvent *atomic.Time

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New starts watching dir. Close must be called to release the watch.
func New(dir string, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	w := &Watcher{
		dir:       dir,
		debounce:  DefaultDebounce,
		fsWatcher: fsWatcher,
		dirty:     atomic.NewBool(false),
		lastEvent: atomic.NewTime(time.Time{}),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.loop()

	logging.GetLogger().Info("Watching directory", "directory", dir)
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	logger := logging.GetInternalLogger()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event, time.Now())

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Error("fsnotify watcher error", "directory", w.dir, "error", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, now time.Time) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if !catalog.IsImage(event.Name) {
		return
	}

	logging.GetInternalLogger().Debug("Directory changed", "file", event.Name, "op", event.Op.String())
	w.lastEvent.Store(now)
	w.dirty.Store(true)
}

// Consume reports whether a change is pending and the directory has been
// quiet for the debounce interval. A true result clears the flag.
func (w *Watcher) Consume(now time.Time) bool {
	if !w.dirty.Load() {
		return false
	}
	if now.Sub(w.lastEvent.Load()) < w.debounce {
		return false
	}
	return w.dirty.CompareAndSwap(true, false)
}

func (w *Watcher) Dir() string {
	return w.dir
}

func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.fsWatcher.Close()
		<-w.done
	})
	return err
}
