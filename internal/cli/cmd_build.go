package cli

import (
	"io"
	"path/filepath"
	"sync"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const buildHelp = `  build [root]            Compose every topic under a root directory`

func cmdBuild(o *IO, cfg compose.Config, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw build [options] [root]")
		o.Println("")
		o.Println("Discover every topic under root (default: the configured docs")
		o.Println("directory) and compose each into <out-dir>/<slug>.md. Topics do")
		o.Println("not reference each other and are composed concurrently; each")
		o.Println("topic is still all-or-nothing on its own.")
		o.Println("")
		o.Println("Options:")
		o.Println("  -o, --out-dir <dir>    Output directory (default: configured output_dir)")

		return nil
	}

	flagSet := flag.NewFlagSet("build", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	outDir := flagSet.StringP("out-dir", "o", "", "Output directory")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	root := cfg.DocsDirAbs
	if flagSet.NArg() > 0 {
		root = flagSet.Arg(0)
		if !filepath.IsAbs(root) {
			root = filepath.Join(cfg.EffectiveCwd, root)
		}
	}

	target := cfg.OutputDirAbs
	if *outDir != "" {
		target = *outDir
		if !filepath.IsAbs(target) {
			target = filepath.Join(cfg.EffectiveCwd, target)
		}
	}

	fsys := fs.NewReal()

	topics, err := compose.DiscoverTopics(fsys, root)
	if err != nil {
		return err
	}

	if len(topics) == 0 {
		o.Println("no topics found under", root)

		return nil
	}

	err = fsys.MkdirAll(target, 0o755)
	if err != nil {
		return err
	}

	composer := compose.New(fsys, cfg.ComposerOptions())

	// Topics are independent, so composition order between them does
	// not matter; within one topic the resolver's depth-first order is
	// preserved. Results are indexed by position to keep output
	// deterministic.
	type result struct {
		doc *compose.Document
		err error
	}

	results := make([]result, len(topics))

	var wg sync.WaitGroup

	for i, topic := range topics {
		wg.Add(1)

		go func(i int, topic *compose.Topic) {
			defer wg.Done()

			doc, err := composer.Compose(topic)
			results[i] = result{doc: doc, err: err}
		}(i, topic)
	}

	wg.Wait()

	for i, topic := range topics {
		res := results[i]

		if res.err != nil {
			o.Warn("compose "+topic.Slug+" failed: "+res.err.Error(), "fix the directive or fragment and re-run build")

			continue
		}

		out := filepath.Join(target, topic.Slug+".md")

		err := fsys.WriteFileAtomic(out, []byte(res.doc.Output))
		if err != nil {
			o.Warn("write "+out+" failed: "+err.Error(), "check output directory permissions")

			continue
		}

		o.Println("composed", topic.Slug, "->", out)
	}

	return nil
}
