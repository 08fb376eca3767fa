package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/calvinalkan/docweave/internal/fs"
)

// Loader reads fragment files and memoizes raw contents by absolute
// path, so a partial included from several places is read once per
// composition run.
//
// Safe for concurrent use; independent topics may be composed in
// parallel against one Loader.
type Loader struct {
	fs fs.FS

	mu   sync.Mutex
	memo map[string][]byte
}

// NewLoader returns a Loader reading through filesystem.
func NewLoader(filesystem fs.FS) *Loader {
	return &Loader{fs: filesystem, memo: make(map[string][]byte)}
}

// Load returns the raw bytes of the file at path (made absolute and
// cleaned). A missing or unreadable file is a hard ErrNotFound failure,
// never an empty fragment. Callers attach path context; Load itself
// does not know how paths should be displayed.
func (l *Loader) Load(path string) ([]byte, error) {
	abs, err := absPath(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	cached, ok := l.memo[abs]
	l.mu.Unlock()

	if ok {
		return cached, nil
	}

	data, err := l.fs.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	l.mu.Lock()
	l.memo[abs] = data
	l.mu.Unlock()

	return data, nil
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}

	return filepath.Clean(abs), nil
}

// displayPath renders abs relative to base for error messages, falling
// back to the absolute path when they do not share a prefix.
func displayPath(abs string, base string) string {
	if base == "" {
		return abs
	}

	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(os.PathSeparator) {
		return abs
	}

	return rel
}
