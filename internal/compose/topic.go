package compose

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/docweave/internal/fs"
	"github.com/calvinalkan/docweave/internal/frontmatter"
)

// ManifestFileName is the optional per-topic manifest (JSONC).
const ManifestFileName = ".topic.json"

// DefaultFiles is the fragment order used when a topic has no manifest.
var DefaultFiles = []string{"docs.md", "examples.md"}

// Topic is a named documentation unit: a directory of fragment files
// composed in a fixed order. Defined by directory structure on disk and
// immutable once loaded.
type Topic struct {
	// Slug is the topic identifier, the base name of its directory.
	Slug string

	// Dir is the absolute path of the topic directory.
	Dir string

	// Title and Description come from the manifest, falling back to
	// the first fragment's metadata block. Either may be empty.
	Title       string
	Description string

	// Files is the ordered list of fragment files, relative to Dir.
	Files []string

	// Separator overrides the section separator when non-empty.
	Separator string
}

// manifest is the on-disk shape of .topic.json.
type manifest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Files       []string `json:"files,omitempty"`
	Separator   string   `json:"separator,omitempty"`
}

// LoadTopic reads the topic at dir.
//
// With a manifest, the manifest's file list is authoritative (each file
// must exist at compose time or composition fails with NotFound).
// Without one, Files defaults to whichever of DefaultFiles exist, in
// order; a directory with no manifest and none of the default files is
// ErrNoTopic.
func LoadTopic(filesystem fs.FS, dir string) (*Topic, error) {
	abs, err := absPath(dir)
	if err != nil {
		return nil, withContext(err, dir, nil)
	}

	topic := &Topic{
		Slug: filepath.Base(abs),
		Dir:  abs,
	}

	manifestPath := filepath.Join(abs, ManifestFileName)

	data, readErr := filesystem.ReadFile(manifestPath)
	if readErr != nil && !os.IsNotExist(readErr) {
		return nil, withContext(readErr, displayPath(manifestPath, abs), nil)
	}

	switch {
	case readErr == nil:
		var m manifest

		err := parseManifest(data, &m)
		if err != nil {
			return nil, withContext(err, displayPath(manifestPath, abs), nil)
		}

		topic.Title = m.Title
		topic.Description = m.Description
		topic.Files = m.Files
		topic.Separator = m.Separator

		if len(topic.Files) == 0 {
			topic.Files = append([]string(nil), DefaultFiles...)
		}
	default:
		for _, name := range DefaultFiles {
			exists, err := filesystem.Exists(filepath.Join(abs, name))
			if err != nil {
				return nil, withContext(err, name, nil)
			}

			if exists {
				topic.Files = append(topic.Files, name)
			}
		}

		if len(topic.Files) == 0 {
			return nil, &Error{Path: displayPath(abs, ""), Err: ErrNoTopic}
		}
	}

	fillFromFragmentMeta(filesystem, topic)

	return topic, nil
}

// fillFromFragmentMeta backfills Title/Description from the first
// fragment's metadata block. Read or parse problems are left for
// composition to surface; metadata is best-effort here.
func fillFromFragmentMeta(filesystem fs.FS, topic *Topic) {
	if topic.Title != "" && topic.Description != "" {
		return
	}

	raw, err := filesystem.ReadFile(filepath.Join(topic.Dir, topic.Files[0]))
	if err != nil {
		return
	}

	meta, _, err := frontmatter.Parse(raw)
	if err != nil {
		return
	}

	if topic.Title == "" {
		topic.Title, _ = meta.GetString("title")
	}

	if topic.Description == "" {
		topic.Description, _ = meta.GetString("description")
	}
}

func parseManifest(data []byte, m *manifest) error {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC manifest: %w", err)
	}

	err = json.Unmarshal(standardized, m)
	if err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	for _, file := range m.Files {
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("invalid manifest: empty file entry")
		}

		if filepath.IsAbs(file) {
			return fmt.Errorf("invalid manifest: absolute file path %s", file)
		}
	}

	return nil
}

// DiscoverTopics walks root and returns every topic directory found,
// sorted by slug. A directory qualifies when LoadTopic accepts it;
// discovery does not descend into a topic's own subdirectories, which
// hold partials rather than nested topics. Hidden directories are
// skipped.
func DiscoverTopics(filesystem fs.FS, root string) ([]*Topic, error) {
	abs, err := absPath(root)
	if err != nil {
		return nil, withContext(err, root, nil)
	}

	var topics []*Topic

	err = discoverInto(filesystem, abs, &topics)
	if err != nil {
		return nil, err
	}

	sort.Slice(topics, func(i, j int) bool {
		return topics[i].Slug < topics[j].Slug
	})

	return topics, nil
}

func discoverInto(filesystem fs.FS, dir string, topics *[]*Topic) error {
	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		return withContext(fmt.Errorf("%w: %v", ErrNotFound, err), dir, nil)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		sub := filepath.Join(dir, entry.Name())

		topic, err := LoadTopic(filesystem, sub)
		if err == nil {
			*topics = append(*topics, topic)

			continue
		}

		if !errors.Is(err, ErrNoTopic) {
			return err
		}

		err = discoverInto(filesystem, sub, topics)
		if err != nil {
			return err
		}
	}

	return nil
}
