package cli

import (
	"path/filepath"
	"strings"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const lsHelp = `  ls [root]               List topics under a root directory`

func cmdLs(o *IO, cfg compose.Config, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw ls [root]")
		o.Println("")
		o.Println("List topics under root (default: the configured docs")
		o.Println("directory), sorted by slug, with their fragment files.")

		return nil
	}

	root := cfg.DocsDirAbs
	if len(args) > 0 && args[0] != "" {
		root = args[0]
		if !filepath.IsAbs(root) {
			root = filepath.Join(cfg.EffectiveCwd, root)
		}
	}

	topics, err := compose.DiscoverTopics(fs.NewReal(), root)
	if err != nil {
		return err
	}

	if len(topics) == 0 {
		o.Println("no topics found under", root)

		return nil
	}

	for _, topic := range topics {
		o.Println(formatTopicLine(topic))
	}

	return nil
}

func formatTopicLine(topic *compose.Topic) string {
	var builder strings.Builder

	builder.WriteString(topic.Slug)
	builder.WriteString(" [")
	builder.WriteString(strings.Join(topic.Files, ", "))
	builder.WriteString("]")

	if topic.Title != "" {
		builder.WriteString(" - ")
		builder.WriteString(topic.Title)
	}

	return builder.String()
}
