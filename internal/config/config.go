package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WorkspaceFile is the optional per-workspace overlay file name.
const WorkspaceFile = ".redline.yaml"

// Config represents the redline configuration.
type Config struct {
	Model                 string      `json:"model" yaml:"model"`
	Port                  int         `json:"port" yaml:"port"`
	Workers               int         `json:"workers" yaml:"workers"`
	CooldownSeconds       int         `json:"cooldownSeconds" yaml:"cooldownSeconds"`
	CustomInstructionFile string      `json:"customInstructionFile,omitempty" yaml:"customInstructionFile,omitempty"`
	Include               []string    `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude               []string    `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	AutoReviewOnSave      *bool       `json:"autoReviewOnSave,omitempty" yaml:"autoReviewOnSave,omitempty"`
	AutoReviewOnOpen      *bool       `json:"autoReviewOnOpen,omitempty" yaml:"autoReviewOnOpen,omitempty"`
	RedactSecrets         bool        `json:"redactSecrets,omitempty" yaml:"redactSecrets,omitempty"`
	Cache                 CacheConfig `json:"cache" yaml:"cache"`
	LogLevel              string      `json:"logLevel" yaml:"logLevel"`
}

// CacheConfig controls response caching. Enabled is a pointer so an
// explicit false in the config file or workspace overlay survives the merge.
type CacheConfig struct {
	Enabled    *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Dir        string `json:"dir,omitempty" yaml:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds" yaml:"ttlSeconds"`
}

// On reports whether caching is enabled (default true).
func (c CacheConfig) On() bool { return c.Enabled == nil || *c.Enabled }

// OnSave reports whether save events trigger reviews (default true).
func (c Config) OnSave() bool { return c.AutoReviewOnSave == nil || *c.AutoReviewOnSave }

// OnOpen reports whether newly seen documents trigger reviews (default true).
func (c Config) OnOpen() bool { return c.AutoReviewOnOpen == nil || *c.AutoReviewOnOpen }

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model:           "local-model",
		Port:            8080,
		Workers:         2,
		CooldownSeconds: 30,
		Exclude:         []string{".venv/**", "**/.venv/**"},
		Cache: CacheConfig{
			TTLSeconds: 86400,
		},
		LogLevel: "info",
	}
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "redline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "redline"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "redline"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "redline"), nil
	default:
		return filepath.Join(home, ".config", "redline"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. A missing file yields a zero
// Config and nil error.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// LoadWorkspaceFile loads the yaml overlay from the workspace root. A
// missing file yields a zero Config and nil error.
func LoadWorkspaceFile(workspace string) (Config, error) {
	if workspace == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(filepath.Join(workspace, WorkspaceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", WorkspaceFile, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", WorkspaceFile, err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging:
// defaults <- config file <- workspace overlay <- env <- flag overrides.
// Configuration is read once at startup and never reloaded.
func Load(workspace string, overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	merge(&cfg, fileCfg)

	wsCfg, err := LoadWorkspaceFile(workspace)
	if err != nil {
		return Config{}, err
	}
	merge(&cfg, wsCfg)

	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func merge(dst *Config, src Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Port > 0 {
		dst.Port = src.Port
	}
	if src.Workers > 0 {
		dst.Workers = src.Workers
	}
	if src.CooldownSeconds > 0 {
		dst.CooldownSeconds = src.CooldownSeconds
	}
	if src.CustomInstructionFile != "" {
		dst.CustomInstructionFile = src.CustomInstructionFile
	}
	if len(src.Include) > 0 {
		dst.Include = src.Include
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if src.AutoReviewOnSave != nil {
		dst.AutoReviewOnSave = src.AutoReviewOnSave
	}
	if src.AutoReviewOnOpen != nil {
		dst.AutoReviewOnOpen = src.AutoReviewOnOpen
	}
	if src.RedactSecrets {
		dst.RedactSecrets = true
	}
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("REDLINE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("REDLINE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("REDLINE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("REDLINE_COOLDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CooldownSeconds = n
		}
	}
	if v := os.Getenv("REDLINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["port"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v, ok := overrides["workers"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v, ok := overrides["cooldownSeconds"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CooldownSeconds = n
		}
	}
	if v, ok := overrides["customInstructionFile"]; ok && v != "" {
		cfg.CustomInstructionFile = v
	}
	if v, ok := overrides["logLevel"]; ok && v != "" {
		cfg.LogLevel = v
	}
}

// SetField sets a single config field by key name for `redline config set`.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "model":
		cfg.Model = value
	case "port":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("port must be an integer: %w", err)
		}
		cfg.Port = n
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers must be an integer: %w", err)
		}
		cfg.Workers = n
	case "cooldownSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cooldownSeconds must be an integer: %w", err)
		}
		cfg.CooldownSeconds = n
	case "customInstructionFile":
		cfg.CustomInstructionFile = value
	case "redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redactSecrets must be a boolean: %w", err)
		}
		cfg.RedactSecrets = b
	case "logLevel":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// CustomInstructions reads the configured custom-instructions file, if any.
// A relative path resolves against the workspace root. A missing or
// unreadable file yields empty instructions, never an error: review must
// not fail because a side file went away.
func CustomInstructions(cfg Config, workspace string) string {
	file := cfg.CustomInstructionFile
	if file == "" {
		return ""
	}
	if !filepath.IsAbs(file) && workspace != "" {
		file = filepath.Join(workspace, file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return ""
	}
	return string(data)
}
