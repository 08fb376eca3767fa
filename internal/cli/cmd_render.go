package cli

import (
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const renderHelp = `  render <topic-dir>      Compose a topic and render it to HTML`

func cmdRender(o *IO, cfg compose.Config, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw render [options] <topic-dir>")
		o.Println("")
		o.Println("Compose a topic and render the result as a standalone HTML")
		o.Println("page (GitHub-flavored markdown).")
		o.Println("")
		o.Println("Options:")
		o.Println("  -o, --out <file>       Write HTML atomically to <file> instead of stdout")

		return nil
	}

	flagSet := flag.NewFlagSet("render", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	outPath := flagSet.StringP("out", "o", "", "Output file")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() == 0 {
		return errTopicDirRequired
	}

	fsys := fs.NewReal()

	dir, err := resolveTopicDir(fsys, cfg, flagSet.Arg(0))
	if err != nil {
		return err
	}

	doc, err := compose.New(fsys, cfg.ComposerOptions()).ComposeDir(dir)
	if err != nil {
		return err
	}

	page, err := compose.RenderHTML(doc)
	if err != nil {
		return err
	}

	if *outPath == "" {
		o.Print(string(page))

		return nil
	}

	target := *outPath
	if !filepath.IsAbs(target) {
		target = filepath.Join(cfg.EffectiveCwd, target)
	}

	err = fsys.WriteFileAtomic(target, page)
	if err != nil {
		return err
	}

	o.Println("rendered", doc.Topic.Slug, "->", target)

	return nil
}
