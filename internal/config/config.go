// Package config loads conversion settings from a TOML or YAML file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xojotools/rbbf/rbbfxml"
	"gopkg.in/yaml.v3"
)

// Config holds conversion settings. Policy and charset names are those
// accepted by the rbbfxml Parse functions.
type Config struct {
	TrailerPolicy   string
	BlockErrors     string
	Charset         string
	FallbackVersion string
	LogLevel        string
	CompressOutput  bool
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		TrailerPolicy:   rbbfxml.TrailerWarn.String(),
		BlockErrors:     rbbfxml.BlockPartial.String(),
		Charset:         string(rbbfxml.CharsetASCII),
		FallbackVersion: rbbfxml.FallbackVersion,
		LogLevel:        "warn",
	}
}

// fileConfig is the file layout. Fields are pointers so that keys left out of
// the file keep their defaults.
type fileConfig struct {
	TrailerPolicy   *string `toml:"trailer_policy" yaml:"trailer_policy"`
	BlockErrors     *string `toml:"block_errors" yaml:"block_errors"`
	Charset         *string `toml:"charset" yaml:"charset"`
	FallbackVersion *string `toml:"fallback_version" yaml:"fallback_version"`
	LogLevel        *string `toml:"log_level" yaml:"log_level"`
	CompressOutput  *bool   `toml:"compress_output" yaml:"compress_output"`
}

// Load reads the file at path over the defaults. The format is chosen by
// extension: ".toml", or ".yaml" and ".yml".
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.Decode(string(b), &raw)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && len(bytes.TrimSpace(b)) > 0 {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("load config: unsupported file type %q", ext)
	}
	cfg := Default()
	raw.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (raw fileConfig) apply(cfg *Config) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&cfg.TrailerPolicy, raw.TrailerPolicy)
	set(&cfg.BlockErrors, raw.BlockErrors)
	set(&cfg.Charset, raw.Charset)
	set(&cfg.FallbackVersion, raw.FallbackVersion)
	set(&cfg.LogLevel, raw.LogLevel)
	if raw.CompressOutput != nil {
		cfg.CompressOutput = *raw.CompressOutput
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	_, err := c.Decoder()
	return err
}

// Decoder returns a decoder configured with the settings.
func (c Config) Decoder() (rbbfxml.Decoder, error) {
	var d rbbfxml.Decoder
	var err error
	if d.Trailers, err = rbbfxml.ParseTrailerPolicy(c.TrailerPolicy); err != nil {
		return d, err
	}
	if d.BlockErrors, err = rbbfxml.ParseBlockErrorPolicy(c.BlockErrors); err != nil {
		return d, err
	}
	if d.Charset, err = rbbfxml.ParseCharset(c.Charset); err != nil {
		return d, err
	}
	d.FallbackVersion = c.FallbackVersion
	return d, nil
}
