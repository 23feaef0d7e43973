// Package config loads cronset configuration with koanf: embedded
// defaults, then an optional user config file (TOML or YAML), then
// CRONSET_* environment variables.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/djatlantic/cronset/pkg/errors"
)

//go:embed defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for environment variable overrides, e.g.
// CRONSET_CRONTAB_BIN overrides crontab.bin.
const EnvPrefix = "CRONSET_"

// Config is the resolved cronset configuration.
type Config struct {
	Marker  string        `koanf:"marker" toml:"marker"`
	Crontab CrontabConfig `koanf:"crontab" toml:"crontab"`
	Backup  BackupConfig  `koanf:"backup" toml:"backup"`
}

// CrontabConfig configures the crontab binary invocation.
type CrontabConfig struct {
	Bin string `koanf:"bin" toml:"bin"`
}

// BackupConfig configures backup file placement.
type BackupConfig struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// rawBytesProvider adapts an embedded byte slice to koanf's Provider
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "raw bytes provider does not support Read")
}

// Load resolves configuration from defaults, the first existing file
// among candidates, and environment variables, in that precedence.
func Load(candidates []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default config")
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load config from %s", path)
		}
		break
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal config")
	}

	return &cfg, nil
}

// Default returns the built-in configuration without file or
// environment overrides. The embedded defaults are fixed at build
// time, so a parse failure here is a packaging bug.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// DefaultContent returns the embedded defaults file verbatim, for
// gen-config output.
func DefaultContent() string {
	return string(defaultConfig)
}

// parserFor picks a koanf parser from the file extension
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps CRONSET_CRONTAB_BIN to crontab.bin
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}
