// Package filestore reads and writes whole files for the editor: the
// document file itself and its crash recovery copy.
package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/gridedit/internal/project/vfs"
)

// RecoverySuffix is appended to a file name to form its recovery file.
const RecoverySuffix = ".temp"

// DefaultMaxFileSize is the largest file ReadWhole accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024

// FileStore reads and writes whole files through a VFS.
//
// Writes go to a uniquely named sibling first and are renamed over the
// target, so a failed save never truncates the existing file. The store
// remembers what it last wrote to each path so that file watch events
// caused by its own saves can be told apart from external edits.
type FileStore struct {
	mu      sync.Mutex
	vfs     vfs.VFS
	written map[string][]byte

	// Configuration
	maxFileSize int64 // Maximum file size to read (0 = unlimited)
	perm        fs.FileMode
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithMaxFileSize sets the maximum file size.
func WithMaxFileSize(size int64) Option {
	return func(s *FileStore) {
		s.maxFileSize = size
	}
}

// WithPerm sets the permission bits used for new files.
func WithPerm(perm fs.FileMode) Option {
	return func(s *FileStore) {
		s.perm = perm
	}
}

// New creates a FileStore. A nil VFS means the OS file system.
func New(v vfs.VFS, opts ...Option) *FileStore {
	if v == nil {
		v = vfs.NewOSFS()
	}
	s := &FileStore{
		vfs:         v,
		written:     make(map[string][]byte),
		maxFileSize: DefaultMaxFileSize,
		perm:        0o644,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadWhole returns the content of path. A missing file yields an error
// matching ErrNotFound.
func (s *FileStore) ReadWhole(path string) ([]byte, error) {
	return s.read("read", path)
}

func (s *FileStore) read(op, path string) ([]byte, error) {
	info, err := s.vfs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNotFound
		}
		return nil, &PathError{Op: op, Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &PathError{Op: op, Path: path, Err: ErrIsDirectory}
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, &PathError{Op: op, Path: path, Err: ErrFileTooLarge}
	}

	data, err := s.vfs.ReadFile(path)
	if err != nil {
		return nil, &PathError{Op: op, Path: path, Err: err}
	}
	return data, nil
}

// WriteWhole replaces the content of path with data.
func (s *FileStore) WriteWhole(path string, data []byte) error {
	if path == "" {
		return &PathError{Op: "write", Path: path, Err: ErrNoPath}
	}
	if err := s.writeAtomic(path, data); err != nil {
		return &PathError{Op: "write", Path: path, Err: err}
	}

	abs := s.abs(path)
	s.mu.Lock()
	s.written[abs] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}

func (s *FileStore) writeAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString())
	if err := s.vfs.WriteFile(tmp, data, s.perm); err != nil {
		return err
	}
	if err := s.vfs.Rename(tmp, path); err != nil {
		_ = s.vfs.Remove(tmp)
		return err
	}
	return nil
}

// OwnWrite reports whether the current content of path is exactly what
// this store last wrote there.
func (s *FileStore) OwnWrite(path string) bool {
	s.mu.Lock()
	last, ok := s.written[s.abs(path)]
	s.mu.Unlock()
	if !ok {
		return false
	}
	data, err := s.vfs.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(data, last)
}

func (s *FileStore) abs(path string) string {
	if abs, err := s.vfs.Abs(path); err == nil {
		return abs
	}
	return path
}

// RecoveryPath returns the recovery file for path.
func RecoveryPath(path string) string {
	return path + RecoverySuffix
}

// WriteRecovery saves data to the recovery file of path.
func (s *FileStore) WriteRecovery(path string, data []byte) error {
	if path == "" {
		return &PathError{Op: "recover", Path: path, Err: ErrNoPath}
	}
	rp := RecoveryPath(path)
	if err := s.writeAtomic(rp, data); err != nil {
		return &PathError{Op: "recover", Path: rp, Err: err}
	}
	return nil
}

// ReadRecovery returns the content of the recovery file of path and removes
// it. It returns ErrNotFound when there is no recovery file. When the file
// cannot be removed the content is returned with an error matching
// ErrRecoveryKept.
func (s *FileStore) ReadRecovery(path string) ([]byte, error) {
	rp := RecoveryPath(path)
	data, err := s.read("recover", rp)
	if err != nil {
		return nil, err
	}
	if err := s.vfs.Remove(rp); err != nil {
		return data, &PathError{Op: "recover", Path: rp, Err: fmt.Errorf("%w: %w", ErrRecoveryKept, err)}
	}
	return data, nil
}

// Load returns the content the editor should start with for path: the
// recovery file when one exists, otherwise the file itself. recovered
// reports which one was used. A recovery file that could not be removed
// still yields its content, together with an ErrRecoveryKept error.
func (s *FileStore) Load(path string) (data []byte, recovered bool, err error) {
	data, err = s.ReadRecovery(path)
	switch {
	case err == nil:
		return data, true, nil
	case errors.Is(err, ErrRecoveryKept):
		return data, true, err
	case !IsNotFound(err):
		return nil, false, err
	}
	data, err = s.ReadWhole(path)
	return data, false, err
}
