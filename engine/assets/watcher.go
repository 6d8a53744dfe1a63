package assets

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/vetro/engine/core"
)

// Watcher observes an asset root and dispatches change events to
// per-extension handlers, typically to mark a mesh or texture changed
// so the next prepare re-uploads it.
type Watcher struct {
	fs       *fsnotify.Watcher
	handlers map[string][]func(path string)
}

// NewWatcher watches root and every directory below it.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fs: fsw, handlers: make(map[string][]func(string))}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// OnChange registers a handler for files with the given extension
// (including the dot, e.g. ".obj").
func (w *Watcher) OnChange(ext string, fn func(path string)) {
	ext = strings.ToLower(ext)
	w.handlers[ext] = append(w.handlers[ext], fn)
}

// Run dispatches events until the context is canceled. It is meant to
// be a goroutine; handlers are invoked on that goroutine, so they must
// not touch the device context directly, only flip host-side flags.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			for _, fn := range w.handlers[ext] {
				fn(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			core.LogWarn("asset watcher: %v", err)
		}
	}
}

// Close stops watching. Run returns once the event channel drains.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
