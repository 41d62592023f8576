package mmqa

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

var errInjected = errors.New("injected failure")

// newMemTree builds an in-memory filesystem from path -> content
func newMemTree(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for name, content := range files {
		if dir := filepath.Dir(name); dir != "." {
			if err := fsys.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", dir, err)
			}
		}
		if err := util.WriteFile(fsys, name, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return fsys
}

// writeTree creates files under dir on the real filesystem
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// failingFS wraps a filesystem and injects errors for chosen paths
type failingFS struct {
	billy.Filesystem

	failOpen    map[string]bool
	failRead    map[string]bool
	failStat    map[string]bool
	failReadDir map[string]bool

	mu     sync.Mutex
	opened int
	closed int
}

func newFailingFS(inner billy.Filesystem) *failingFS {
	return &failingFS{
		Filesystem:  inner,
		failOpen:    make(map[string]bool),
		failRead:    make(map[string]bool),
		failStat:    make(map[string]bool),
		failReadDir: make(map[string]bool),
	}
}

func (f *failingFS) Open(filename string) (billy.File, error) {
	if f.failOpen[filepath.ToSlash(filename)] {
		return nil, &os.PathError{Op: "open", Path: filename, Err: os.ErrPermission}
	}
	file, err := f.Filesystem.Open(filename)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opened++
	f.mu.Unlock()
	return &trackedFile{File: file, owner: f, failRead: f.failRead[filepath.ToSlash(filename)]}, nil
}

func (f *failingFS) Stat(filename string) (os.FileInfo, error) {
	if f.failStat[filepath.ToSlash(filename)] {
		return nil, &os.PathError{Op: "stat", Path: filename, Err: os.ErrPermission}
	}
	return f.Filesystem.Stat(filename)
}

func (f *failingFS) ReadDir(path string) ([]os.FileInfo, error) {
	if f.failReadDir[filepath.ToSlash(path)] {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrPermission}
	}
	return f.Filesystem.ReadDir(path)
}

func (f *failingFS) handles() (opened, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed
}

// trackedFile counts closes and can fail reads after the first byte
type trackedFile struct {
	billy.File
	owner    *failingFS
	failRead bool
	reads    int
}

func (tf *trackedFile) Read(p []byte) (int, error) {
	if tf.failRead {
		tf.reads++
		if tf.reads > 1 {
			return 0, errInjected
		}
		if len(p) > 1 {
			p = p[:1]
		}
	}
	return tf.File.Read(p)
}

func (tf *trackedFile) Close() error {
	tf.owner.mu.Lock()
	tf.owner.closed++
	tf.owner.mu.Unlock()
	return tf.File.Close()
}

// captureLogger returns a debug-level logger writing into the returned buffer
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&buf, slog.LevelDebug), &buf
}
