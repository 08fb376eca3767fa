package cli

import (
	"errors"
	"path/filepath"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const checkHelp = `  check [root]            Resolve every topic, report problems, write nothing`

func cmdCheck(o *IO, cfg compose.Config, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw check [root|topic-dir]")
		o.Println("")
		o.Println("Resolve every topic under root (default: the configured docs")
		o.Println("directory) without writing output. Reports each broken")
		o.Println("directive with its full include chain so the author can locate")
		o.Println("and fix it. Exit code is non-zero when any topic fails.")

		return nil
	}

	root := cfg.DocsDirAbs
	if len(args) > 0 && args[0] != "" {
		root = args[0]
		if !filepath.IsAbs(root) {
			root = filepath.Join(cfg.EffectiveCwd, root)
		}
	}

	fsys := fs.NewReal()

	// A topic directory checks just itself; anything else is treated
	// as a root to discover under.
	topics := []*compose.Topic{}

	topic, err := compose.LoadTopic(fsys, root)

	switch {
	case err == nil:
		topics = append(topics, topic)
	case errors.Is(err, compose.ErrNoTopic):
		topics, err = compose.DiscoverTopics(fsys, root)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if len(topics) == 0 {
		o.Println("no topics found under", root)

		return nil
	}

	composer := compose.New(fsys, cfg.ComposerOptions())

	for _, topic := range topics {
		_, err := composer.Compose(topic)
		if err != nil {
			o.Warn(topic.Slug+": "+err.Error(), "fix the directive or fragment")

			continue
		}

		o.Println("ok", topic.Slug)
	}

	return nil
}
