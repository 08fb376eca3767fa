package cli

import (
	"errors"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const composeHelp = `  compose <topic-dir>     Compose a topic to stdout or a file`

var errTopicDirRequired = errors.New("topic directory is required")

func cmdCompose(o *IO, cfg compose.Config, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw compose [options] <topic-dir>")
		o.Println("")
		o.Println("Resolve a topic's fragments and emit one composed document.")
		o.Println("Composition is all-or-nothing: any missing include target,")
		o.Println("cycle, or malformed directive aborts with no partial output.")
		o.Println("")
		o.Println("Options:")
		o.Println("  -o, --out <file>       Write output atomically to <file> instead of stdout")
		o.Println("      --separator <sep>  Section separator (overrides config)")

		return nil
	}

	flagSet := flag.NewFlagSet("compose", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	outPath := flagSet.StringP("out", "o", "", "Output file")
	separator := flagSet.String("separator", "", "Section separator")

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

	opts := cfg.ComposerOptions()
	if *separator != "" {
		opts.Separator = *separator
	}

	doc, err := compose.New(fsys, opts).ComposeDir(dir)
	if err != nil {
		return err
	}

	if *outPath == "" {
		o.Print(doc.Output)

		return nil
	}

	target := *outPath
	if !filepath.IsAbs(target) {
		target = filepath.Join(cfg.EffectiveCwd, target)
	}

	err = fsys.WriteFileAtomic(target, []byte(doc.Output))
	if err != nil {
		return err
	}

	o.Println("composed", doc.Topic.Slug, "->", target)

	return nil
}

// resolveTopicDir resolves a topic argument against the working
// directory first, then the configured docs root, so both
// "dw compose docs/design-system" and "dw compose design-system" work.
func resolveTopicDir(fsys fs.FS, cfg compose.Config, arg string) (string, error) {
	if filepath.IsAbs(arg) {
		return arg, nil
	}

	direct := filepath.Join(cfg.EffectiveCwd, arg)

	exists, err := fsys.Exists(direct)
	if err != nil {
		return "", err
	}

	if exists {
		return direct, nil
	}

	inDocs := filepath.Join(cfg.DocsDirAbs, arg)

	exists, err = fsys.Exists(inDocs)
	if err != nil {
		return "", err
	}

	if exists {
		return inDocs, nil
	}

	return "", &compose.Error{Path: arg, Err: compose.ErrNotFound}
}
