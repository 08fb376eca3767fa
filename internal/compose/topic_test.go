package compose_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

func Test_LoadTopic_DefaultsToExistingFragments_When_NoManifest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "both default fragments",
			files: []string{"docs.md", "examples.md"},
			want:  []string{"docs.md", "examples.md"},
		},
		{
			name:  "docs only",
			files: []string{"docs.md"},
			want:  []string{"docs.md"},
		},
		{
			name:  "examples only",
			files: []string{"examples.md"},
			want:  []string{"examples.md"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, f := range tc.files {
				writeFile(t, dir, f, "content\n")
			}

			topic, err := compose.LoadTopic(fs.NewReal(), dir)
			if err != nil {
				t.Fatalf("load topic: %v", err)
			}

			if diff := cmp.Diff(tc.want, topic.Files); diff != "" {
				t.Fatalf("files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_LoadTopic_UsesManifestFileList_When_ManifestPresent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".topic.json", `{
		"title": "Code Conventions",
		"files": ["intro.md", "rules.md", "examples.md"],
	}`)

	topic, err := compose.LoadTopic(fs.NewReal(), dir)
	if err != nil {
		t.Fatalf("load topic: %v", err)
	}

	want := []string{"intro.md", "rules.md", "examples.md"}
	if diff := cmp.Diff(want, topic.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}

	if topic.Title != "Code Conventions" {
		t.Fatalf("title = %q", topic.Title)
	}
}

func Test_LoadTopic_Fails_When_ManifestInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		manifest string
	}{
		{name: "broken JSONC", manifest: `{"title": `},
		{name: "empty file entry", manifest: `{"files": ["docs.md", ""]}`},
		{name: "absolute file entry", manifest: `{"files": ["/etc/passwd"]}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, dir, ".topic.json", tc.manifest)

			_, err := compose.LoadTopic(fs.NewReal(), dir)
			if err == nil {
				t.Fatal("want error, got nil")
			}
		})
	}
}

func Test_LoadTopic_FailsWithNoTopic_When_DirectoryEmpty(t *testing.T) {
	t.Parallel()

	_, err := compose.LoadTopic(fs.NewReal(), t.TempDir())
	if !errors.Is(err, compose.ErrNoTopic) {
		t.Fatalf("want ErrNoTopic, got %v", err)
	}
}

func Test_DiscoverTopics_ReturnsSortedSlugs_When_TopicsNested(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "zeta/docs.md", "z\n")
	writeFile(t, root, "group/alpha/docs.md", "a\n")
	writeFile(t, root, "group/beta/examples.md", "b\n")

	topics, err := compose.DiscoverTopics(fs.NewReal(), root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	slugs := make([]string, 0, len(topics))
	for _, topic := range topics {
		slugs = append(slugs, topic.Slug)
	}

	want := []string{"alpha", "beta", "zeta"}
	if diff := cmp.Diff(want, slugs); diff != "" {
		t.Fatalf("slugs mismatch (-want +got):\n%s", diff)
	}
}

func Test_DiscoverTopics_SkipsPartialSubdirs_When_TopicHasNestedDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "guide/docs.md", "g\n")
	// Looks like a topic but lives inside one; partials are not topics.
	writeFile(t, root, "guide/partials/docs.md", "p\n")

	topics, err := compose.DiscoverTopics(fs.NewReal(), root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	if len(topics) != 1 || topics[0].Slug != "guide" {
		t.Fatalf("topics = %v", topics)
	}
}

func Test_DiscoverTopics_SkipsHiddenDirectories_When_Walking(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "visible/docs.md", "v\n")
	writeFile(t, root, ".hidden/docs.md", "h\n")

	topics, err := compose.DiscoverTopics(fs.NewReal(), root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	if len(topics) != 1 || topics[0].Slug != "visible" {
		t.Fatalf("topics = %v", topics)
	}
}
