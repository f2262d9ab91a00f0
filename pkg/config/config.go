// Package config loads tierflow settings from a TOML file.
//
//	top_countries = 12
//	top_disciplines = 12
//	selected_country = ""
//	variant = "disciplines"
//	split_quoted_lists = false
//
//	[columns]
//	country = "country"
//	category = "discipline"
//	subgroup = "gender"
//
//	[cache]
//	backend = "file"   # file | redis | none
//	redis_addr = "localhost:6379"
//	prefix = ""
//	ttl = "24h"
//
// Missing keys keep their defaults. Command-line flags override file values.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/pipeline"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds every setting of a run.
type Config struct {
	TopCountries     int          `toml:"top_countries"`
	TopDisciplines   int          `toml:"top_disciplines"`
	SelectedCountry  string       `toml:"selected_country"`
	Variant          string       `toml:"variant"`
	SplitQuotedLists bool         `toml:"split_quoted_lists"`
	Columns          flow.Columns `toml:"columns"`
	Cache            Cache        `toml:"cache"`
}

// Cache configures the build cache.
type Cache struct {
	Backend   string        `toml:"backend"`
	RedisAddr string        `toml:"redis_addr"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TopCountries:   flow.DefaultTopCountries,
		TopDisciplines: flow.DefaultTopCategories,
		Variant:        flow.VariantDisciplines,
		Columns:        flow.DefaultColumns(),
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads path on top of [Default] and validates the result. Unknown
// keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := tferrors.ValidatePath(path); err != nil {
		return cfg, err
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, tferrors.Wrap(tferrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, tferrors.Wrap(tferrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, tferrors.New(tferrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault loads the config file from the user config directory.
// A missing file yields [Default] without error.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if tferrors.Is(err, tferrors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// DefaultPath returns $XDG_CONFIG_HOME/tierflow/config.toml or its
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tierflow", FileName), nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if err := tferrors.ValidateTopN("top_countries", c.TopCountries); err != nil {
		return err
	}
	if err := tferrors.ValidateTopN("top_disciplines", c.TopDisciplines); err != nil {
		return err
	}
	if err := tferrors.ValidateFocus(c.SelectedCountry); err != nil {
		return err
	}
	if err := pipeline.ValidateVariant(c.Variant); err != nil {
		return err
	}
	for _, col := range []string{c.Columns.Country, c.Columns.Category, c.Columns.Subgroup} {
		if col == "" {
			continue
		}
		if err := tferrors.ValidateColumnName(col); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return tferrors.New(tferrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return tferrors.New(tferrors.ErrCodeInvalidConfig,
			"invalid cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return tferrors.New(tferrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// PipelineOptions maps the configuration onto pipeline options. Columns
// left at their default name are passed blank so the variant supplies its
// own column for that field.
func (c Config) PipelineOptions() pipeline.Options {
	def := flow.DefaultColumns()
	cols := c.Columns
	if cols.Country == def.Country {
		cols.Country = ""
	}
	if cols.Category == def.Category {
		cols.Category = ""
	}
	if cols.Subgroup == def.Subgroup {
		cols.Subgroup = ""
	}
	return pipeline.Options{
		Variant:          c.Variant,
		TopCountries:     c.TopCountries,
		TopCategories:    c.TopDisciplines,
		Focus:            c.SelectedCountry,
		Columns:          cols,
		SplitQuotedLists: c.SplitQuotedLists,
	}
}
