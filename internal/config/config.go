// Package config handles configuration loading and defaults for the todo app.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/todo/config.yaml, or config.toml next to it).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvDataFile = "TODO_FILE"
	EnvLogLevel = "TODO_LOG_LEVEL"
)

// Config represents the application configuration.
type Config struct {
	// DataFile is the task file (default todo_data.json in the working directory)
	DataFile string `yaml:"data_file,omitempty" toml:"data_file"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level"`

	// StrictValidation rejects empty titles and unknown priorities on add
	StrictValidation bool `yaml:"strict_validation,omitempty" toml:"strict_validation"`

	// Backup configures the .bak copy and timestamped backups
	Backup BackupConfig `yaml:"backup,omitempty" toml:"backup"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty" toml:"theme"`

	// Keys customizes the interactive menu shortcuts
	Keys KeysConfig `yaml:"keys,omitempty" toml:"keys"`

	// path is the file this config was read from, empty for defaults
	path string
}

// BackupConfig defines backup settings.
type BackupConfig struct {
	// Enabled keeps <data_file>.bak with the previous contents on every save
	Enabled bool `yaml:"enabled,omitempty" toml:"enabled"`

	// Dir holds timestamped backups (default: "backups" next to the data file)
	Dir string `yaml:"dir,omitempty" toml:"dir"`

	// Keep is how many backups prune leaves behind
	Keep int `yaml:"keep,omitempty" toml:"keep"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	Primary string `yaml:"primary,omitempty" toml:"primary"`
	Accent  string `yaml:"accent,omitempty" toml:"accent"`
	Muted   string `yaml:"muted,omitempty" toml:"muted"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "x,delete"
type KeysConfig struct {
	Add    string `yaml:"add,omitempty" toml:"add"`       // default: "a"
	Remove string `yaml:"remove,omitempty" toml:"remove"` // default: "x,delete"
	Done   string `yaml:"done,omitempty" toml:"done"`     // default: "d,space"
	Search string `yaml:"search,omitempty" toml:"search"` // default: "/"
	Sort   string `yaml:"sort,omitempty" toml:"sort"`     // default: "s"
	Save   string `yaml:"save,omitempty" toml:"save"`     // default: "w"
	Quit   string `yaml:"quit,omitempty" toml:"quit"`     // default: "q,ctrl+c"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataFile: "todo_data.json",
		LogLevel: "warn",
		Backup: BackupConfig{
			Enabled: true,
			Keep:    10,
		},
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
		},
	}
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todo")
}

// discover returns the first existing config file, YAML before TOML.
func discover() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads configuration, merging it over defaults and then applying
// environment overrides. An empty path means the XDG location; a missing
// file there is not an error, but an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = discover()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.merge(path, data); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
			cfg.path = path
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// merge decodes data by file extension and applies it over c.
func (c *Config) merge(path string, data []byte) error {
	var user Config

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		meta, err := toml.Decode(string(data), &user)
		if err != nil {
			return err
		}
		c.mergeFrom(&user, meta.IsDefined)
		return nil
	}

	if err := yaml.Unmarshal(data, &user); err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	c.mergeFrom(&user, func(keys ...string) bool { return yamlHasPath(&doc, keys...) })
	return nil
}

// mergeFrom applies non-empty strings and positive ints from other, and
// booleans only when the source file sets them.
func (c *Config) mergeFrom(other *Config, has func(keys ...string) bool) {
	setString(&c.DataFile, other.DataFile)
	setString(&c.LogLevel, other.LogLevel)
	setString(&c.Backup.Dir, other.Backup.Dir)
	setString(&c.Theme.Primary, other.Theme.Primary)
	setString(&c.Theme.Accent, other.Theme.Accent)
	setString(&c.Theme.Muted, other.Theme.Muted)

	setString(&c.Keys.Add, other.Keys.Add)
	setString(&c.Keys.Remove, other.Keys.Remove)
	setString(&c.Keys.Done, other.Keys.Done)
	setString(&c.Keys.Search, other.Keys.Search)
	setString(&c.Keys.Sort, other.Keys.Sort)
	setString(&c.Keys.Save, other.Keys.Save)
	setString(&c.Keys.Quit, other.Keys.Quit)

	if other.Backup.Keep > 0 {
		c.Backup.Keep = other.Backup.Keep
	}

	if has("strict_validation") {
		c.StrictValidation = other.StrictValidation
	}
	if has("backup", "enabled") {
		c.Backup.Enabled = other.Backup.Enabled
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) applyEnv() {
	setString(&c.DataFile, os.Getenv(EnvDataFile))
	setString(&c.LogLevel, os.Getenv(EnvLogLevel))
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Path returns the file the configuration was read from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// GetDataFile returns the task file path with a leading ~ expanded.
func (c *Config) GetDataFile() string {
	if c.DataFile == "" {
		return Default().DataFile
	}
	return expandHome(c.DataFile)
}

// GetBackupDir returns the backup directory, defaulting to "backups" next
// to the data file.
func (c *Config) GetBackupDir() string {
	if c.Backup.Dir != "" {
		return expandHome(c.Backup.Dir)
	}
	return filepath.Join(filepath.Dir(c.GetDataFile()), "backups")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimLeft(p[1:], `/\`))
}
