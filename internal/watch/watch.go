// Package watch reloads state when files under a directory change. Bursts of
// events are collapsed into a single callback after a quiet period.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before OnChange fires.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes a directory tree.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func(ctx context.Context) error
	filter   func(path string) bool
	logger   zerolog.Logger
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFilter ignores events for paths where fn returns false.
func WithFilter(fn func(path string) bool) Option {
	return func(w *Watcher) { w.filter = fn }
}

// WithLogger sets the logger used for reload failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New returns a watcher over root calling onChange after changes settle.
func New(root string, onChange func(ctx context.Context) error, opts ...Option) (*Watcher, error) {
	if root == "" {
		return nil, errors.New("watch: root is required")
	}
	if onChange == nil {
		return nil, errors.New("watch: onChange is required")
	}
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		onChange: onChange,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Run blocks until ctx is cancelled. Errors from onChange are logged and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.root); err != nil {
		return err
	}
	w.logger.Debug().Str("root", w.root).Msg("watching")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fsw, event.Name); err != nil {
						w.logger.Warn().Err(err).Msg("watch new directory")
					}
				}
			}
			if event.Has(fsnotify.Chmod) {
				continue
			}
			if w.filter != nil && !w.filter(event.Name) {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change")
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				w.logger.Error().Err(err).Msg("reload failed")
			}
		}
	}
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}
