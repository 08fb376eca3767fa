package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const previewHelp = `  preview <topic-dir>     Compose a topic and render it in the terminal`

const previewWordWrap = 100

func cmdPreview(o *IO, cfg compose.Config, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw preview <topic-dir>")
		o.Println("")
		o.Println("Compose a topic and render the result styled for the")
		o.Println("terminal.")

		return nil
	}

	if len(args) == 0 {
		return errTopicDirRequired
	}

	fsys := fs.NewReal()

	dir, err := resolveTopicDir(fsys, cfg, args[0])
	if err != nil {
		return err
	}

	doc, err := compose.New(fsys, cfg.ComposerOptions()).ComposeDir(dir)
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWordWrap),
	)
	if err != nil {
		return fmt.Errorf("init terminal renderer: %w", err)
	}

	styled, err := renderer.Render(doc.Output)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}

	o.Print(styled)

	return nil
}
