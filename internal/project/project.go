package project

import (
	"errors"
	"sync"

	"github.com/dshills/gridedit/internal/project/filestore"
	"github.com/dshills/gridedit/internal/project/vfs"
	"github.com/dshills/gridedit/internal/project/watcher"
)

// Project is the file being edited.
type Project struct {
	mu      sync.Mutex
	store   *filestore.FileStore
	watcher *watcher.FileWatcher
	path    string

	// Configuration
	untitled string
	vfs      vfs.VFS
	watch    bool
	watchOpt []watcher.Option
	storeOpt []filestore.Option
}

// Option configures a Project.
type Option func(*Project)

// WithVFS sets the file system. The default is the OS file system.
func WithVFS(v vfs.VFS) Option {
	return func(p *Project) {
		p.vfs = v
	}
}

// WithUntitledPath sets the name used for the recovery file of an unnamed
// buffer.
func WithUntitledPath(path string) Option {
	return func(p *Project) {
		p.untitled = path
	}
}

// WithWatch enables reporting of external changes.
func WithWatch(enabled bool, opts ...watcher.Option) Option {
	return func(p *Project) {
		p.watch = enabled
		p.watchOpt = opts
	}
}

// WithStoreOptions passes options to the file store.
func WithStoreOptions(opts ...filestore.Option) Option {
	return func(p *Project) {
		p.storeOpt = append(p.storeOpt, opts...)
	}
}

// New creates a Project with no file.
func New(opts ...Option) (*Project, error) {
	p := &Project{}
	for _, opt := range opts {
		opt(p)
	}
	p.store = filestore.New(p.vfs, p.storeOpt...)

	if p.watch {
		wopts := append([]watcher.Option{watcher.WithFilter(p.external)}, p.watchOpt...)
		w, err := watcher.NewFileWatcher(wopts...)
		if err != nil {
			return nil, err
		}
		p.watcher = w
	}
	return p, nil
}

// external reports whether an event was caused by another program.
func (p *Project) external(e watcher.Event) bool {
	return !p.store.OwnWrite(e.Path)
}

// Store returns the file store.
func (p *Project) Store() *filestore.FileStore {
	return p.store
}

// Path returns the current file name, or "" for an unnamed buffer.
func (p *Project) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Open makes path the current file and returns its content. A recovery
// file, when present, is returned instead and removed; recovered reports
// that case. A missing file yields an error matching filestore.ErrNotFound
// and still becomes the current file.
//
// For an unnamed buffer only the untitled recovery file is consulted.
func (p *Project) Open(path string) (data []byte, recovered bool, err error) {
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
	if path != "" {
		return p.store.Load(path)
	}
	if p.untitled == "" {
		return nil, false, nil
	}
	data, err = p.store.ReadRecovery(p.untitled)
	switch {
	case err == nil:
		return data, true, nil
	case errors.Is(err, filestore.ErrRecoveryKept):
		return data, true, err
	case filestore.IsNotFound(err):
		return nil, false, nil
	}
	return nil, false, err
}

// Watch starts reporting external changes to the current file. It does
// nothing when watching is disabled.
func (p *Project) Watch() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.SetPath(p.Path())
}

// Save writes data to the current file.
func (p *Project) Save(data []byte) error {
	return p.store.WriteWhole(p.Path(), data)
}

// SaveAs writes data to path and, on success, makes it the current file.
// Call Watch afterwards to follow the new file.
func (p *Project) SaveAs(path string, data []byte) error {
	if err := p.store.WriteWhole(path, data); err != nil {
		return err
	}
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
	return nil
}

// recoveryTarget is the current file, or the untitled path for an unnamed
// buffer.
func (p *Project) recoveryTarget() string {
	if path := p.Path(); path != "" {
		return path
	}
	return p.untitled
}

// RecoveryPath returns where WriteRecovery saves, or "" when there is
// nowhere to save.
func (p *Project) RecoveryPath() string {
	target := p.recoveryTarget()
	if target == "" {
		return ""
	}
	return filestore.RecoveryPath(target)
}

// WriteRecovery saves data next to the current file for the next start.
// An unnamed buffer is saved under the untitled path.
func (p *Project) WriteRecovery(data []byte) error {
	return p.store.WriteRecovery(p.recoveryTarget(), data)
}

// Changes returns external change events, or nil when watching is
// disabled.
func (p *Project) Changes() <-chan watcher.Event {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Events()
}

// Errors returns watcher errors, or nil when watching is disabled.
func (p *Project) Errors() <-chan error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Errors()
}

// Close stops watching.
func (p *Project) Close() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Close()
}
