package filestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/gridedit/internal/project/vfs"
)

func setupTestStore(t *testing.T) (*FileStore, *vfs.MemFS) {
	t.Helper()
	memfs := vfs.NewMemFS()
	return New(memfs), memfs
}

func TestReadWhole(t *testing.T) {
	store, memfs := setupTestStore(t)
	memfs.AddFile("/test/file.txt", "hello\n")

	data, err := store.ReadWhole("/test/file.txt")
	if err != nil {
		t.Fatalf("ReadWhole failed: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("content = %q", data)
	}
}

func TestReadWholeErrors(t *testing.T) {
	store, memfs := setupTestStore(t)
	memfs.AddFile("/test/file.txt", "0123456789")
	small := New(memfs, WithMaxFileSize(4))

	tests := []struct {
		name  string
		store *FileStore
		path  string
		want  error
	}{
		{"missing", store, "/nope.txt", ErrNotFound},
		{"directory", store, "/test", ErrIsDirectory},
		{"too large", small, "/test/file.txt", ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.store.ReadWhole(tt.path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var pe *PathError
			if !errors.As(err, &pe) || pe.Path != tt.path || pe.Op != "read" {
				t.Errorf("PathError = %+v", pe)
			}
		})
	}
}

func TestWriteWholeReplaces(t *testing.T) {
	store, memfs := setupTestStore(t)
	memfs.AddFile("/a.txt", "old")

	if err := store.WriteWhole("/a.txt", []byte("new")); err != nil {
		t.Fatalf("WriteWhole failed: %v", err)
	}
	data, _ := memfs.ReadFile("/a.txt")
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}
	if files := memfs.Files(); len(files) != 1 {
		t.Errorf("leftover files: %v", files)
	}
}

func TestWriteWholeFailureKeepsFile(t *testing.T) {
	store, memfs := setupTestStore(t)
	memfs.AddFile("/a.txt", "old")
	memfs.FailWrites = true

	err := store.WriteWhole("/a.txt", []byte("new"))
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *PathError
	if !errors.As(err, &pe) || pe.Op != "write" {
		t.Errorf("err = %v, want write PathError", err)
	}
	data, _ := memfs.ReadFile("/a.txt")
	if string(data) != "old" {
		t.Errorf("content = %q, want old", data)
	}
	if store.OwnWrite("/a.txt") {
		t.Error("OwnWrite true after failed write")
	}
}

func TestWriteWholeNoPath(t *testing.T) {
	store, _ := setupTestStore(t)
	if err := store.WriteWhole("", []byte("x")); !errors.Is(err, ErrNoPath) {
		t.Errorf("err = %v, want ErrNoPath", err)
	}
}

func TestOwnWrite(t *testing.T) {
	store, memfs := setupTestStore(t)

	if store.OwnWrite("/a.txt") {
		t.Error("OwnWrite true before any write")
	}
	if err := store.WriteWhole("/a.txt", []byte("mine")); err != nil {
		t.Fatal(err)
	}
	if !store.OwnWrite("/a.txt") {
		t.Error("OwnWrite false after own write")
	}
	memfs.AddFile("/a.txt", "theirs")
	if store.OwnWrite("/a.txt") {
		t.Error("OwnWrite true after external write")
	}
}

func TestRecovery(t *testing.T) {
	store, memfs := setupTestStore(t)
	memfs.AddFile("/doc.txt", "saved")

	data, recovered, err := store.Load("/doc.txt")
	if err != nil || recovered || string(data) != "saved" {
		t.Fatalf("Load = %q, %v, %v", data, recovered, err)
	}

	if err := store.WriteRecovery("/doc.txt", []byte("unsaved")); err != nil {
		t.Fatalf("WriteRecovery failed: %v", err)
	}
	if _, err := memfs.Stat(RecoveryPath("/doc.txt")); err != nil {
		t.Fatalf("recovery file missing: %v", err)
	}

	data, recovered, err = store.Load("/doc.txt")
	if err != nil || !recovered || string(data) != "unsaved" {
		t.Fatalf("Load = %q, %v, %v", data, recovered, err)
	}
	if _, err := store.ReadRecovery("/doc.txt"); !IsNotFound(err) {
		t.Errorf("recovery file not removed: %v", err)
	}
}

func TestLoadRecoveryNotRemovable(t *testing.T) {
	store, memfs := setupTestStore(t)
	memfs.AddFile("/doc.txt", "saved")
	memfs.AddFile(RecoveryPath("/doc.txt"), "unsaved")
	memfs.FailRemoves = true

	data, recovered, err := store.Load("/doc.txt")
	if !errors.Is(err, ErrRecoveryKept) {
		t.Fatalf("Load error = %v, want ErrRecoveryKept", err)
	}
	if !recovered || string(data) != "unsaved" {
		t.Errorf("Load = %q, %v, want recovered content", data, recovered)
	}
	var pe *PathError
	if !errors.As(err, &pe) || pe.Path != RecoveryPath("/doc.txt") {
		t.Errorf("error = %v, want PathError for the recovery file", err)
	}
}

func TestLoadMissing(t *testing.T) {
	store, _ := setupTestStore(t)
	_, recovered, err := store.Load("/new.txt")
	if !IsNotFound(err) || recovered {
		t.Errorf("Load = %v, %v, want ErrNotFound", recovered, err)
	}
}

func TestOSFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	store := New(nil)

	if err := store.WriteWhole(path, []byte("disk")); err != nil {
		t.Fatalf("WriteWhole failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "file.txt" {
		t.Errorf("dir entries = %v", entries)
	}
	data, err := store.ReadWhole(path)
	if err != nil || string(data) != "disk" {
		t.Errorf("ReadWhole = %q, %v", data, err)
	}
	if !store.OwnWrite(path) {
		t.Error("OwnWrite false")
	}
}
