package vfs

import (
	"io/fs"
	"path"
	"sort"
	"sync"
	"time"
)

// MemFS is an in-memory VFS. Directories are implicit: any path that is a
// prefix of a stored file is a directory.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile

	// FailWrites makes WriteFile and Rename fail with fs.ErrPermission.
	FailWrites bool

	// FailRemoves makes Remove fail with fs.ErrPermission.
	FailRemoves bool
}

type memFile struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memFile)}
}

// Ensure MemFS implements VFS.
var _ VFS = (*MemFS)(nil)

func (m *MemFS) cleanPath(p string) string {
	return path.Clean("/" + p)
}

func (m *MemFS) isDir(p string) bool {
	prefix := p + "/"
	if p == "/" {
		prefix = "/"
	}
	for name := range m.files {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p := m.cleanPath(filePath)
	f, ok := m.files[p]
	if !ok {
		if m.isDir(p) {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrInvalid}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.data...), nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p := m.cleanPath(filePath)
	if f, ok := m.files[p]; ok {
		return NewFileInfo(p, int64(len(f.data)), f.mode, f.modTime, false), nil
	}
	if m.isDir(p) {
		return NewFileInfo(p, 0, fs.ModeDir|0o755, time.Time{}, true), nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

// WriteFile writes data to a file, creating it if necessary.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrPermission}
	}
	m.files[m.cleanPath(filePath)] = &memFile{
		data:    append([]byte(nil), data...),
		mode:    perm,
		modTime: time.Now(),
	}
	return nil
}

// Remove removes a file.
func (m *MemFS) Remove(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailRemoves {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrPermission}
	}
	p := m.cleanPath(filePath)
	if _, ok := m.files[p]; !ok {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	delete(m.files, p)
	return nil
}

// Rename renames (moves) a file, replacing newPath.
func (m *MemFS) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrPermission}
	}
	from, to := m.cleanPath(oldPath), m.cleanPath(newPath)
	f, ok := m.files[from]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	delete(m.files, from)
	m.files[to] = f
	return nil
}

// Abs returns the cleaned path rooted at "/".
func (m *MemFS) Abs(filePath string) (string, error) {
	return m.cleanPath(filePath), nil
}

// AddFile adds a file with the given content.
func (m *MemFS) AddFile(filePath string, content string) {
	_ = m.WriteFile(filePath, []byte(content), 0o644)
}

// Files returns all file paths, sorted.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]string, 0, len(m.files))
	for p := range m.files {
		files = append(files, p)
	}
	sort.Strings(files)
	return files
}
