package compose

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// ConfigFileName is the default project config file name.
const ConfigFileName = ".docweave.json"

// Config errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDocsDirEmpty       = errors.New("docs_dir cannot be empty")
	ErrMaxDepthNegative   = errors.New("max_depth cannot be negative")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DocsDir         string `json:"docs_dir"`
	OutputDir       string `json:"output_dir,omitempty"`
	Separator       string `json:"separator,omitempty"`
	MaxDepth        int    `json:"max_depth,omitempty"`
	IncludeInFences bool   `json:"include_in_fences,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DocsDirAbs   string `json:"-"` // Absolute path to the docs root
	OutputDirAbs string `json:"-"` // Absolute path to the output directory

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DocsDir:   "docs",
		OutputDir: "dist",
	}
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	DocsDirOverride string            // --docs-dir flag value; empty means no override
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/docweave/config.json or $XDG_CONFIG_HOME/docweave/config.json)
// 3. Project config file at default location (.docweave.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.DocsDirOverride != "" {
		cfg.DocsDir = input.DocsDirOverride
	}

	err = validateConfig(cfg)
	if err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir
	cfg.DocsDirAbs = absJoin(workDir, cfg.DocsDir)
	cfg.OutputDirAbs = absJoin(workDir, cfg.OutputDir)

	return cfg, nil
}

// FormatConfig renders cfg as indented JSON for print-config.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/docweave/config.json if set, otherwise
// ~/.config/docweave/config.json. Returns empty string if the home
// directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "docweave", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "docweave", "config.json")
	}

	return ""
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return globalCfg, globalCfgPath, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing
// files return zero config. Returns the config, whether a file was
// loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DocsDir != "" {
		base.DocsDir = overlay.DocsDir
	}

	if overlay.OutputDir != "" {
		base.OutputDir = overlay.OutputDir
	}

	if overlay.Separator != "" {
		base.Separator = overlay.Separator
	}

	if overlay.MaxDepth != 0 {
		base.MaxDepth = overlay.MaxDepth
	}

	if overlay.IncludeInFences {
		base.IncludeInFences = true
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.DocsDir == "" {
		return ErrDocsDirEmpty
	}

	if cfg.MaxDepth < 0 {
		return ErrMaxDepthNegative
	}

	return nil
}

func absJoin(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// ComposerOptions derives composer Options from cfg.
func (c Config) ComposerOptions() Options {
	return Options{
		Separator:       c.Separator,
		MaxDepth:        c.MaxDepth,
		IncludeInFences: c.IncludeInFences,
		BaseDir:         c.DocsDirAbs,
	}
}
