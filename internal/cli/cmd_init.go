package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const initHelp = `  init <slug>             Scaffold a new topic directory`

var (
	errSlugRequired = errors.New("topic slug is required")
	errTopicExists  = errors.New("topic directory already exists")
	errSlugInvalid  = errors.New("slug must be lowercase letters, digits, and dashes")
)

func cmdInit(o *IO, in io.Reader, cfg compose.Config, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw init [options] <slug>")
		o.Println("")
		o.Println("Create <docs-dir>/<slug> with a manifest and fragment")
		o.Println("skeletons. Prompts for title and description unless both are")
		o.Println("given as flags.")
		o.Println("")
		o.Println("Options:")
		o.Println("  --title <title>        Topic title (skips prompt)")
		o.Println("  --description <text>   Topic description (skips prompt)")

		return nil
	}

	flagSet := flag.NewFlagSet("init", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	title := flagSet.String("title", "", "Topic title")
	description := flagSet.String("description", "", "Topic description")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() == 0 {
		return errSlugRequired
	}

	slug := flagSet.Arg(0)

	err = validateSlug(slug)
	if err != nil {
		return err
	}

	fsys := fs.NewReal()

	dir := filepath.Join(cfg.DocsDirAbs, slug)

	exists, err := fsys.Exists(dir)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", errTopicExists, dir)
	}

	prompts := newPrompter(in)

	if !flagSet.Changed("title") {
		*title, err = prompts.line("Title: ")
		if err != nil {
			return err
		}
	}

	if !flagSet.Changed("description") {
		*description, err = prompts.line("Description: ")
		if err != nil {
			return err
		}
	}

	err = fsys.MkdirAll(dir, 0o755)
	if err != nil {
		return err
	}

	manifest := fmt.Sprintf(`{
	// Topic metadata used for the composed document's preamble.
	"title": %q,
	"description": %q,
}
`, *title, *description)

	files := map[string]string{
		compose.ManifestFileName: manifest,
		"docs.md":                fmt.Sprintf("# %s\n\nWrite the guide here.\n", headingOr(*title, slug)),
		"examples.md":            "## Examples\n\nAdd examples here.\n",
	}

	for name, content := range files {
		err = fsys.WriteFileAtomic(filepath.Join(dir, name), []byte(content))
		if err != nil {
			return err
		}
	}

	o.Println("created topic", slug, "at", dir)

	return nil
}

// prompter reads answers for init prompts, with line editing when
// attached to a terminal. Non-terminal input (tests, pipes) falls back
// to a single shared buffered reader so consecutive prompts do not eat
// each other's lines.
type prompter struct {
	useLiner bool
	reader   *bufio.Reader
}

func newPrompter(in io.Reader) *prompter {
	if in == os.Stdin && liner.TerminalSupported() {
		return &prompter{useLiner: true}
	}

	if in == nil {
		return &prompter{}
	}

	return &prompter{reader: bufio.NewReader(in)}
}

func (p *prompter) line(prompt string) (string, error) {
	if p.useLiner {
		line := liner.NewLiner()
		defer func() { _ = line.Close() }()

		answer, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return "", nil
			}

			return "", fmt.Errorf("prompt: %w", err)
		}

		return strings.TrimSpace(answer), nil
	}

	if p.reader == nil {
		return "", nil
	}

	answer, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return errSlugRequired
	}

	for _, r := range slug {
		valid := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !valid {
			return fmt.Errorf("%w: %s", errSlugInvalid, slug)
		}
	}

	return nil
}

func headingOr(title, fallback string) string {
	if title != "" {
		return title
	}

	return fallback
}
