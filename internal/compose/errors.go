package compose

import (
	"errors"
	"strings"
)

// Sentinel errors returned by composition. Match with [errors.Is].
var (
	// ErrNotFound is returned when a topic entry file or an @include target
	// does not exist or cannot be read.
	ErrNotFound = errors.New("file not found")

	// ErrCyclicInclude is returned when an include chain revisits a file
	// that is already being resolved.
	ErrCyclicInclude = errors.New("cyclic include")

	// ErrDepthExceeded is returned when include nesting exceeds the
	// configured maximum depth.
	ErrDepthExceeded = errors.New("include depth exceeded")

	// ErrMalformedDirective is returned when an @include token is present
	// but its argument cannot be parsed as a relative path.
	ErrMalformedDirective = errors.New("malformed include directive")

	// ErrNoTopic is returned when a directory contains neither a manifest
	// nor any of the default fragment files.
	ErrNoTopic = errors.New("not a topic directory")
)

// Error is the uniform error type returned by all public compose APIs.
//
// The underlying error message appears first, followed by the offending
// path and, when includes are involved, the chain of including files:
//
//	cyclic include (path=a.md chain=docs.md -> a.md -> b.md -> a.md)
//
// Use [errors.As] to extract structured fields and [errors.Is] to check
// for the sentinel errors above.
type Error struct {
	// Path is the file the failure is about: the missing include target,
	// the file containing a malformed directive, or the file that closed
	// a cycle. Relative to the topic directory where possible.
	Path string

	// Chain is the stack of including files at the point of failure,
	// outermost first. Empty when the failure has no include context.
	Chain []string

	// Err is the underlying cause.
	Err error
}

// Error formats as "<cause> (path=X chain=A -> B -> C)".
func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	cause := ""
	if e.Err != nil {
		cause = e.Err.Error()
	}

	suffix := e.suffix()
	if suffix == "" {
		return cause
	}

	if cause == "" {
		return suffix
	}

	return cause + " " + suffix
}

// Unwrap returns the underlying error for use with [errors.Is] and [errors.As].
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

func (e *Error) suffix() string {
	var parts []string

	if e.Path != "" {
		parts = append(parts, "path="+e.Path)
	}

	if len(e.Chain) > 0 {
		parts = append(parts, "chain="+strings.Join(e.Chain, " -> "))
	}

	if len(parts) == 0 {
		return ""
	}

	return "(" + strings.Join(parts, " ") + ")"
}

// withContext attaches path and chain context at API boundaries.
// If err is already *Error, missing fields are filled in (existing
// values preserved) so the innermost context wins.
func withContext(err error, path string, chain []string) error {
	if err == nil {
		return nil
	}

	existing := &Error{}
	if errors.As(err, &existing) {
		if existing.Path == "" && path != "" {
			existing.Path = path
		}

		if len(existing.Chain) == 0 && len(chain) > 0 {
			existing.Chain = append([]string(nil), chain...)
		}

		return existing
	}

	return &Error{Path: path, Chain: append([]string(nil), chain...), Err: err}
}
