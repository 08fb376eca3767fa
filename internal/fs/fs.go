// Package fs provides the filesystem abstraction used by composition.
//
// Two implementations are provided:
//   - [Real]: production implementation wrapping the [os] package
//   - [Faulty]: testing implementation that injects errors per path
//
// Composition only ever reads fragment trees and atomically writes
// output files, so the interface is deliberately small.
package fs

import "os"

// FS defines the filesystem operations composition depends on.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// Stat returns file info. See [os.Stat].
	// Returns an error wrapping [os.ErrNotExist] if the file is missing.
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// WriteFileAtomic writes data to a file atomically via a temp file
	// and rename, so readers never observe a partially written output.
	WriteFileAtomic(path string, data []byte) error
}
