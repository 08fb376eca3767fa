package compose

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/calvinalkan/docweave/internal/frontmatter"
)

// DefaultMaxDepth bounds include nesting independently of cycle
// detection; cycle detection alone does not catch extremely deep
// legitimate chains.
const DefaultMaxDepth = 32

// Resolver expands @include directives depth-first, in source order.
//
// Cycle detection uses an explicit stack of absolute paths threaded
// through the recursive calls rather than shared mutable state, so
// independent topics can resolve concurrently against one Resolver.
// Fully resolved fragments are memoized by absolute path.
type Resolver struct {
	loader      *Loader
	maxDepth    int
	honorFences bool

	// baseDir, when set, is used to shorten paths in error chains.
	baseDir string

	mu   sync.Mutex
	memo map[string]string
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// MaxDepth bounds include nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// HonorFences expands directives inside fenced code blocks.
	// Off by default so guides can show the directive syntax literally.
	HonorFences bool

	// BaseDir shortens paths in error messages when set.
	BaseDir string
}

// NewResolver returns a Resolver reading fragments through loader.
func NewResolver(loader *Loader, opts ResolverOptions) *Resolver {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Resolver{
		loader:      loader,
		maxDepth:    maxDepth,
		honorFences: opts.HonorFences,
		baseDir:     opts.BaseDir,
		memo:        make(map[string]string),
	}
}

// ResolveFile loads the file at path and returns its fully resolved
// text with every include directive replaced. A file with zero
// directives resolves to itself unchanged.
func (r *Resolver) ResolveFile(path string) (string, error) {
	abs, err := absPath(path)
	if err != nil {
		return "", withContext(err, path, nil)
	}

	return r.resolve(abs, nil)
}

// ResolveText resolves already-loaded text as if it lived in dir.
// Used for fragment bodies whose metadata block has been stripped.
func (r *Resolver) ResolveText(text []byte, dir string) (string, error) {
	absDir, err := absPath(dir)
	if err != nil {
		return "", withContext(err, dir, nil)
	}

	return r.expand(text, absDir, nil)
}

// resolve returns the fully resolved text of the fragment at abs,
// with stack holding the absolute paths currently being resolved.
func (r *Resolver) resolve(abs string, stack []string) (string, error) {
	if len(stack) >= r.maxDepth {
		return "", &Error{
			Path:  displayPath(abs, r.baseDir),
			Chain: r.chain(stack, abs),
			Err:   fmt.Errorf("%w: more than %d levels", ErrDepthExceeded, r.maxDepth),
		}
	}

	for _, open := range stack {
		if open == abs {
			return "", &Error{
				Path:  displayPath(abs, r.baseDir),
				Chain: r.chain(stack, abs),
				Err:   ErrCyclicInclude,
			}
		}
	}

	r.mu.Lock()
	cached, ok := r.memo[abs]
	r.mu.Unlock()

	if ok {
		return cached, nil
	}

	raw, err := r.loader.Load(abs)
	if err != nil {
		return "", withContext(err, displayPath(abs, r.baseDir), r.chain(stack, ""))
	}

	// Metadata blocks belong to the composer, not the transcluded text.
	body := frontmatter.Strip(raw)

	resolved, err := r.expand(body, filepath.Dir(abs), append(stack, abs))
	if err != nil {
		return "", err
	}

	// Only fully resolved fragments are memoized; partial results
	// must never be observable from another goroutine.
	r.mu.Lock()
	r.memo[abs] = resolved
	r.mu.Unlock()

	return resolved, nil
}

// expand splices resolved include targets into text, left-to-right,
// preserving all surrounding content.
func (r *Resolver) expand(text []byte, dir string, stack []string) (string, error) {
	directives, err := scanDirectives(text, r.honorFences)
	if err != nil {
		source := ""
		if len(stack) > 0 {
			source = displayPath(stack[len(stack)-1], r.baseDir)
		}

		return "", withContext(err, source, r.chain(stack, ""))
	}

	if len(directives) == 0 {
		return string(text), nil
	}

	var out strings.Builder

	last := 0

	for _, d := range directives {
		target := filepath.Join(dir, filepath.FromSlash(d.Target))

		replacement, err := r.resolve(target, stack)
		if err != nil {
			return "", err
		}

		out.Write(text[last:d.Start])
		out.WriteString(replacement)

		last = d.End
	}

	out.Write(text[last:])

	return out.String(), nil
}

// chain renders the current resolution stack (plus the closing path,
// when non-empty) for error reporting, outermost include first.
func (r *Resolver) chain(stack []string, closing string) []string {
	if len(stack) == 0 && closing == "" {
		return nil
	}

	out := make([]string, 0, len(stack)+1)

	for _, p := range stack {
		out = append(out, displayPath(p, r.baseDir))
	}

	if closing != "" {
		out = append(out, displayPath(closing, r.baseDir))
	}

	return out
}
