package fs

import (
	"os"
	"sync"
)

// Faulty wraps an [FS] and injects errors for configured paths.
//
// Used in tests to exercise error propagation: an unreadable include
// target must surface as a hard failure, never an empty fragment.
// Injection is keyed by the exact path passed to the FS method.
//
// Safe for concurrent use.
type Faulty struct {
	inner FS

	mu    sync.Mutex
	fails map[string]error
}

// NewFaulty wraps inner with no failures configured.
func NewFaulty(inner FS) *Faulty {
	return &Faulty{inner: inner, fails: make(map[string]error)}
}

// FailPath makes every operation on path return err.
func (f *Faulty) FailPath(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fails[path] = err
}

// ClearPath removes a configured failure.
func (f *Faulty) ClearPath(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.fails, path)
}

func (f *Faulty) check(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fails[path]
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(path); err != nil {
		return nil, err
	}

	return f.inner.ReadFile(path)
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	if err := f.check(path); err != nil {
		return nil, err
	}

	return f.inner.Stat(path)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.check(path); err != nil {
		return false, err
	}

	return f.inner.Exists(path)
}

func (f *Faulty) ReadDir(path string) ([]os.DirEntry, error) {
	if err := f.check(path); err != nil {
		return nil, err
	}

	return f.inner.ReadDir(path)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(path); err != nil {
		return err
	}

	return f.inner.MkdirAll(path, perm)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte) error {
	if err := f.check(path); err != nil {
		return err
	}

	return f.inner.WriteFileAtomic(path, data)
}

// Compile-time interface check.
var _ FS = (*Faulty)(nil)
