// Package config loads versekeep settings from flags, an optional YAML file
// and VERSEKEEP_* environment variables.
//
// Precedence, highest first: flags set on the command line, environment,
// config file, flag defaults.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // Zone names resolve without a system zoneinfo

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/conorfennell/versekeep/internal/validate"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "VERSEKEEP_"

// Config holds all application configuration.
type Config struct {
	DBPath    string `koanf:"db_path" validate:"required"`
	Listen    string `koanf:"listen" validate:"required,hostname_port"`
	LogLevel  string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"required,oneof=json text"`
	Timezone  string `koanf:"timezone" validate:"required"`
	KitsDir   string `koanf:"kits_dir"`
	KitsRepo  string `koanf:"kits_repo"`
	ReposDir  string `koanf:"repos_dir" validate:"required"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		DBPath:    "versekeep.db",
		Listen:    "localhost:8080",
		LogLevel:  "info",
		LogFormat: "text",
		Timezone:  "Local",
		ReposDir:  ".versekeep/repos",
	}
}

// AddFlags registers one flag per setting on fs, plus --config.
// Flag names use dashes; keys use underscores.
func AddFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("config", "", "Path to a YAML config file")
	fs.String("db-path", d.DBPath, "Path to the SQLite database file")
	fs.String("listen", d.Listen, "Address the HTTP API listens on")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn or error")
	fs.String("log-format", d.LogFormat, "Log format: json or text")
	fs.String("timezone", d.Timezone, "IANA time zone used for study streak days")
	fs.String("kits-dir", d.KitsDir, "Directory of extra starter kit YAML files")
	fs.String("kits-repo", d.KitsRepo, "Git repository of extra starter kit YAML files")
	fs.String("repos-dir", d.ReposDir, "Where kit repositories are cloned")
}

// Load resolves the configuration. fs must have been set up by AddFlags and
// parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	path, _ := fs.GetString("config")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Unchanged flags only fill keys nothing else has set.
	err = k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if f.Name == "config" {
			return "", nil
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field, including that Timezone names a known zone.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves Timezone. "Local" is the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
