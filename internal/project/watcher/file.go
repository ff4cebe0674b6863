package watcher

import (
	"path/filepath"
	"sync"
)

// FileWatcher reports debounced changes to one file. It watches the
// file's directory and keeps only events whose path is the file.
type FileWatcher struct {
	mu     sync.Mutex
	inner  *DebouncedWatcher
	filter Filter
	path   string
	dir    string
}

// NewFileWatcher creates a FileWatcher backed by fsnotify. It watches
// nothing until SetPath is called.
func NewFileWatcher(opts ...Option) (*FileWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	fsw, err := NewFSNotifyWatcher(config.BufferSize)
	if err != nil {
		return nil, err
	}
	return newFileWatcher(fsw, config), nil
}

func newFileWatcher(inner Watcher, config Config) *FileWatcher {
	w := &FileWatcher{filter: config.Filter}
	w.inner = NewDebouncedWatcher(inner, config.DebounceDelay, w.accept)
	return w
}

// SetPath switches the watched file. An empty path stops watching.
// On error the previous file stays watched.
func (w *FileWatcher) SetPath(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var absPath, dir string
	if path != "" {
		var err error
		if absPath, err = filepath.Abs(path); err != nil {
			return err
		}
		dir = filepath.Dir(absPath)
	}

	if dir != w.dir {
		if dir != "" {
			if err := w.inner.Watch(dir); err != nil {
				return err
			}
		}
		if w.dir != "" {
			_ = w.inner.Unwatch(w.dir)
		}
		w.dir = dir
	}
	w.path = absPath
	return nil
}

// Path returns the absolute path of the watched file, or "".
func (w *FileWatcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

func (w *FileWatcher) accept(event Event) bool {
	w.mu.Lock()
	path := w.path
	w.mu.Unlock()

	if path == "" || event.Path != path {
		return false
	}
	return w.filter == nil || w.filter(event)
}

// Events returns the channel of changes to the watched file.
func (w *FileWatcher) Events() <-chan Event {
	return w.inner.Events()
}

// Errors returns the channel of watcher errors.
func (w *FileWatcher) Errors() <-chan error {
	return w.inner.Errors()
}

// Close stops watching.
func (w *FileWatcher) Close() error {
	return w.inner.Close()
}
