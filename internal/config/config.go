// Package config loads the project's .thai-i18n.yaml
//
// Configuration is loaded from:
// 1. .thai-i18n.yaml at the project root (optional)
// 2. Environment variables prefixed with THAI_I18N_ (THAI_I18N_LOG_LEVEL, ...)
// 3. Default values
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yejune/thai-i18n/internal/source"
	"github.com/yejune/thai-i18n/internal/translate"
)

// FileName is the project configuration file
const FileName = ".thai-i18n.yaml"

// EnvPrefix is prepended to environment overrides
const EnvPrefix = "THAI_I18N"

// marshalFunc is the function used to marshal YAML (allows testing)
var marshalFunc = yaml.Marshal

// Config is the root configuration structure.
type Config struct {
	Language     string                       `mapstructure:"language" yaml:"language"`
	Encoding     string                       `mapstructure:"encoding" yaml:"encoding"`
	Log          LogConfig                    `mapstructure:"log" yaml:"log"`
	Backup       BackupConfig                 `mapstructure:"backup" yaml:"backup"`
	Translate    translate.Options            `mapstructure:"translate" yaml:"translate"`
	Exclude      []string                     `mapstructure:"exclude" yaml:"exclude"`
	Dictionaries map[string]string            `mapstructure:"dictionaries" yaml:"dictionaries,omitempty"`
	Profiles     map[string]translate.Profile `mapstructure:"profiles" yaml:"profiles,omitempty"`
}

// LogConfig contains zap settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// BackupConfig controls copies taken before a file is overwritten.
type BackupConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir           string `mapstructure:"dir" yaml:"dir"`
	RetentionDays int    `mapstructure:"retention_days" yaml:"retention_days"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Language: "en",
		Encoding: source.UTF8,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Backup: BackupConfig{
			Enabled:       true,
			Dir:           filepath.Join(".thai-i18n", "backup"),
			RetentionDays: 30,
		},
		Translate: translate.DefaultOptions(),
		Exclude:   []string{"**/node_modules/**", "**/dist/**", ".thai-i18n/**"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("language", d.Language)
	v.SetDefault("encoding", d.Encoding)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("backup.enabled", d.Backup.Enabled)
	v.SetDefault("backup.dir", d.Backup.Dir)
	v.SetDefault("backup.retention_days", d.Backup.RetentionDays)
	v.SetDefault("translate.function", d.Translate.Function)
	v.SetDefault("translate.hook", d.Translate.Hook)
	v.SetDefault("translate.module", d.Translate.Module)
	v.SetDefault("exclude", d.Exclude)
}

// Load reads the configuration for the project at dir.
// path overrides the file location; empty means dir/.thai-i18n.yaml.
func Load(dir, path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || os.IsNotExist(err) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	switch c.Language {
	case "en", "th":
	default:
		return fmt.Errorf("language must be en or th, got %q", c.Language)
	}
	if _, err := source.Lookup(c.Encoding); err != nil {
		return err
	}
	if c.Backup.Enabled && c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir is empty")
	}
	return nil
}

// BackupDir returns the absolute backup directory for a project root
func (c *Config) BackupDir(root string) string {
	if filepath.IsAbs(c.Backup.Dir) {
		return c.Backup.Dir
	}
	return filepath.Join(root, c.Backup.Dir)
}

// Exists checks if the project has a configuration file
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}

// Save writes the configuration to dir/.thai-i18n.yaml
func Save(dir string, c *Config) error {
	data, err := marshalFunc(c)
	if err != nil {
		return err
	}

	// Blank line between top-level sections for readability
	buf := bytes.NewBuffer(nil)
	buf.WriteString("# thai-i18n project configuration\n")
	for i, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if i > 0 && line != "" && line[0] != ' ' && line[0] != '-' && strings.HasSuffix(line, ":") {
			buf.WriteString("\n")
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return os.WriteFile(filepath.Join(dir, FileName), buf.Bytes(), 0644)
}
