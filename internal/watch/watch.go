// Package watch re-runs generation when the source tree changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

// DefaultDebounce is the quiet period after the last event before a run.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Source   source.Options
	Debounce time.Duration
}

// Watcher watches every walked directory under a source root.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	filter   *source.Discovery
	debounce time.Duration
}

// New registers root and its directories. Hidden, skipped and excluded
// directories are not watched.
func New(root string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, ferrors.PathError("cannot resolve source directory").
			WithCause(err).
			WithContext("path", root).
			Build()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.FileSystemError("cannot create file watcher").WithCause(err).Build()
	}
	w := &Watcher{
		root:     abs,
		fsw:      fsw,
		filter:   source.NewDiscovery(opts.Source),
		debounce: opts.Debounce,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if err := w.addDirsRecursive(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run calls fn after each burst of relevant changes, one call at a time, until
// ctx is cancelled. Errors from fn are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	defer func() { _ = w.fsw.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			slog.Info("Change detected; regenerating", logfields.Path(w.root))
			if err := fn(ctx); err != nil {
				slog.Warn("Regeneration failed", logfields.Error(err))
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// handleEvent registers new directories and reports whether ev should trigger
// a run.
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	if shouldIgnoreEvent(ev.Name) || w.inSkippedDir(rel) {
		return false
	}

	if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
		if w.filter.SkipsDir(info.Name()) || w.filter.Excluded(filepath.ToSlash(rel)+"/") {
			return false
		}
		if ev.Has(fsnotify.Create) {
			_ = w.addDirsRecursive(ev.Name)
		}
		slog.Debug("Directory change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
		return true
	}

	base := filepath.Base(ev.Name)
	// Removed or renamed directories can no longer be stat'ed.
	removed := ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
	if !w.filter.Matches(base) && !(removed && filepath.Ext(base) == "") {
		return false
	}
	if w.filter.Excluded(rel) {
		return false
	}
	slog.Debug("File change detected", logfields.File(filepath.ToSlash(rel)), slog.String("op", ev.Op.String()))
	return true
}

func (w *Watcher) inSkippedDir(rel string) bool {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i, part := range parts[:len(parts)-1] {
		if w.filter.SkipsDir(part) || w.filter.Excluded(strings.Join(parts[:i+1], "/")+"/") {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable path", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root {
			rel, _ := filepath.Rel(w.root, path)
			if w.filter.SkipsDir(d.Name()) || w.filter.Excluded(filepath.ToSlash(rel)+"/") {
				return filepath.SkipDir
			}
		}
		if err := w.fsw.Add(path); err != nil {
			return ferrors.FileSystemError("cannot watch directory").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil
	})
}

// shouldIgnoreEvent reports editor swap, backup and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"),
		base == "Thumbs.db":
		return true
	}
	return false
}
