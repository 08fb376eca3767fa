// Package compose assembles topic documentation from markdown fragment
// files, expanding @include(<relative-path>) directives recursively.
//
// The pipeline is Loader (raw file reads) -> Resolver (directive
// expansion with cycle and depth protection) -> Composer (ordered
// concatenation into one document per topic). Composition is
// all-or-nothing: the first failure aborts with no partial output.
package compose

import (
	"path/filepath"
	"strings"

	"github.com/calvinalkan/docweave/internal/fs"
)

// DefaultSeparator is the boundary placed between composed sections.
const DefaultSeparator = "\n---\n\n"

// State tracks a composition request through its lifecycle.
type State uint8

// Composition states. Composed and Failed are terminal.
const (
	StatePending State = iota
	StateLoading
	StateResolving
	StateComposed
	StateFailed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoading:
		return "loading"
	case StateResolving:
		return "resolving"
	case StateComposed:
		return "composed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Section is one fully resolved fragment of a composed document.
type Section struct {
	// File is the fragment file name relative to the topic directory.
	File string

	// Text is the fully resolved fragment text.
	Text string
}

// Document is the final output for a topic: the ordered concatenation
// of its fully resolved fragments. Not mutated after composition.
type Document struct {
	Topic    *Topic
	Sections []Section

	// Output is the joined document text. Empty unless State is
	// StateComposed; there is no partial output.
	Output string

	// State is the terminal composition state.
	State State

	// Err carries the failure when State is StateFailed.
	Err error
}

// Options configures a Composer.
type Options struct {
	// Separator joins resolved sections. Empty means DefaultSeparator.
	// A per-topic manifest separator takes precedence over both.
	Separator string

	// MaxDepth bounds include nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// IncludeInFences expands directives inside fenced code blocks.
	IncludeInFences bool

	// BaseDir shortens paths in error messages when set, typically to
	// the docs root.
	BaseDir string
}

// Composer turns topics into composed documents.
//
// Safe for concurrent use: independent topics may be composed in
// parallel, sharing the loader and resolver memoization.
type Composer struct {
	fs       fs.FS
	loader   *Loader
	opts     Options
	resolver *Resolver
}

// New returns a Composer reading through filesystem.
func New(filesystem fs.FS, opts Options) *Composer {
	loader := NewLoader(filesystem)

	return &Composer{
		fs:     filesystem,
		loader: loader,
		opts:   opts,
		resolver: NewResolver(loader, ResolverOptions{
			MaxDepth:    opts.MaxDepth,
			HonorFences: opts.IncludeInFences,
			BaseDir:     opts.BaseDir,
		}),
	}
}

// ComposeDir loads the topic at dir and composes it.
func (c *Composer) ComposeDir(dir string) (*Document, error) {
	topic, err := LoadTopic(c.fs, dir)
	if err != nil {
		return &Document{State: StateFailed, Err: err}, err
	}

	return c.Compose(topic)
}

// Compose resolves every fragment of topic in declared order and joins
// them with the effective separator. The first loader or resolver error
// aborts composition; the returned Document then has State StateFailed,
// carries the error, and holds no partial output.
func (c *Composer) Compose(topic *Topic) (*Document, error) {
	doc := &Document{Topic: topic, State: StatePending}

	doc.State = StateLoading

	for _, file := range topic.Files {
		_, err := c.loader.Load(filepath.Join(topic.Dir, file))
		if err != nil {
			return c.fail(doc, withContext(err, file, nil))
		}
	}

	doc.State = StateResolving

	for _, file := range topic.Files {
		text, err := c.resolver.ResolveFile(filepath.Join(topic.Dir, file))
		if err != nil {
			return c.fail(doc, err)
		}

		doc.Sections = append(doc.Sections, Section{File: file, Text: text})
	}

	parts := make([]string, 0, len(doc.Sections)+1)

	if preamble := c.preamble(topic); preamble != "" {
		parts = append(parts, preamble)
	}

	for _, section := range doc.Sections {
		parts = append(parts, section.Text)
	}

	doc.Output = strings.Join(parts, c.separator(topic))
	doc.State = StateComposed

	return doc, nil
}

// separator returns the effective section separator for topic:
// manifest override, then Options, then DefaultSeparator.
func (c *Composer) separator(topic *Topic) string {
	if topic.Separator != "" {
		return topic.Separator
	}

	if c.opts.Separator != "" {
		return c.opts.Separator
	}

	return DefaultSeparator
}

// preamble renders the topic title/description header section, or ""
// when the topic carries neither.
func (c *Composer) preamble(topic *Topic) string {
	if topic.Title == "" && topic.Description == "" {
		return ""
	}

	var b strings.Builder

	if topic.Title != "" {
		b.WriteString("# ")
		b.WriteString(topic.Title)
		b.WriteString("\n")
	}

	if topic.Description != "" {
		if topic.Title != "" {
			b.WriteString("\n")
		}

		b.WriteString(topic.Description)
		b.WriteString("\n")
	}

	return b.String()
}

func (c *Composer) fail(doc *Document, err error) (*Document, error) {
	doc.State = StateFailed
	doc.Err = err
	doc.Sections = nil

	return doc, err
}
