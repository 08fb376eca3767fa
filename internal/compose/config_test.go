package compose_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/docweave/internal/compose"
)

func Test_LoadConfig_UsesDefaults_When_NoConfigFilesExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.DocsDir != "docs" {
		t.Fatalf("docs_dir = %q", cfg.DocsDir)
	}

	if cfg.OutputDir != "dist" {
		t.Fatalf("output_dir = %q", cfg.OutputDir)
	}

	if cfg.DocsDirAbs != filepath.Join(dir, "docs") {
		t.Fatalf("docs_dir abs = %q", cfg.DocsDirAbs)
	}

	if cfg.Sources.Global != "" || cfg.Sources.Project != "" {
		t.Fatalf("unexpected sources: %+v", cfg.Sources)
	}
}

func Test_LoadConfig_ReadsProjectFile_When_PresentInWorkDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".docweave.json", `{
		// Project overrides.
		"docs_dir": "content",
		"separator": "\n***\n\n",
		"max_depth": 8,
	}`)

	cfg, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.DocsDir != "content" {
		t.Fatalf("docs_dir = %q", cfg.DocsDir)
	}

	if cfg.Separator != "\n***\n\n" {
		t.Fatalf("separator = %q", cfg.Separator)
	}

	if cfg.MaxDepth != 8 {
		t.Fatalf("max_depth = %d", cfg.MaxDepth)
	}

	if cfg.Sources.Project != filepath.Join(dir, ".docweave.json") {
		t.Fatalf("project source = %q", cfg.Sources.Project)
	}
}

func Test_LoadConfig_ProjectOverridesGlobal_When_BothPresent(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	writeFile(t, home, "docweave/config.json", `{"docs_dir": "global-docs", "output_dir": "global-out"}`)

	dir := t.TempDir()
	writeFile(t, dir, ".docweave.json", `{"docs_dir": "project-docs"}`)

	cfg, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{"XDG_CONFIG_HOME": home},
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.DocsDir != "project-docs" {
		t.Fatalf("docs_dir = %q, want project file to win", cfg.DocsDir)
	}

	// Settings the project file leaves alone fall through to global.
	if cfg.OutputDir != "global-out" {
		t.Fatalf("output_dir = %q, want global value", cfg.OutputDir)
	}
}

func Test_LoadConfig_UsesExplicitFile_When_ConfigPathGiven(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".docweave.json", `{"docs_dir": "default-file"}`)
	writeFile(t, dir, "other.json", `{"docs_dir": "explicit-file"}`)

	cfg, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: dir,
		ConfigPath:      "other.json",
		Env:             map[string]string{},
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.DocsDir != "explicit-file" {
		t.Fatalf("docs_dir = %q", cfg.DocsDir)
	}
}

func Test_LoadConfig_Fails_When_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: t.TempDir(),
		ConfigPath:      "nope.json",
		Env:             map[string]string{},
	})
	if !errors.Is(err, compose.ErrConfigFileNotFound) {
		t.Fatalf("want ErrConfigFileNotFound, got %v", err)
	}
}

func Test_LoadConfig_Fails_When_ProjectFileInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".docweave.json", `{"docs_dir": `)

	_, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})
	if !errors.Is(err, compose.ErrConfigInvalid) {
		t.Fatalf("want ErrConfigInvalid, got %v", err)
	}
}

func Test_LoadConfig_Fails_When_MaxDepthNegative(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".docweave.json", `{"docs_dir": "x", "max_depth": -1}`)

	_, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: dir,
		Env:             map[string]string{},
	})
	if !errors.Is(err, compose.ErrMaxDepthNegative) {
		t.Fatalf("want ErrMaxDepthNegative, got %v", err)
	}
}

func Test_LoadConfig_AppliesDocsDirOverride_When_FlagGiven(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".docweave.json", `{"docs_dir": "from-file"}`)

	cfg, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: dir,
		DocsDirOverride: "from-flag",
		Env:             map[string]string{},
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.DocsDir != "from-flag" {
		t.Fatalf("docs_dir = %q", cfg.DocsDir)
	}
}

func Test_ComposerOptions_CarriesConfigValues(t *testing.T) {
	t.Parallel()

	cfg := compose.Config{Separator: "\n***\n", MaxDepth: 5, IncludeInFences: true}

	opts := cfg.ComposerOptions()
	if opts.Separator != "\n***\n" || opts.MaxDepth != 5 || !opts.IncludeInFences {
		t.Fatalf("options = %+v", opts)
	}
}
