// Package config loads the configuration of the command-line tool from a
// config file, environment variables, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables, e.g.,
// ENUMNEWTYPE_ATTRIBUTE or ENUMNEWTYPE_LOG_JSON.
const EnvPrefix = "ENUMNEWTYPE"

// FileName is the base name of the config file searched in the working
// directory. Both .yaml and .toml are accepted.
const FileName = ".enumnewtype"

// Config is the configuration of the command-line tool.
type Config struct {
	// Attribute is the name of the attribute to expand.
	Attribute string `mapstructure:"attribute"`

	// Suffix replaces the ".rs" extension of input files to name output
	// files.
	Suffix string `mapstructure:"suffix"`

	// Stdout writes expanded code to stdout instead of output files.
	Stdout bool `mapstructure:"stdout"`

	// CompileErrors replaces items failing to expand by compile_error!
	// invocations instead of failing the file.
	CompileErrors bool `mapstructure:"compile_errors"`

	// Color is one of "auto", "always", and "never".
	Color string `mapstructure:"color"`

	Log LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults sets the default values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("attribute", "enum_newtype")
	v.SetDefault("suffix", ".expanded.rs")
	v.SetDefault("stdout", false)
	v.SetDefault("compile_errors", false)
	v.SetDefault("color", "auto")
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

// New creates a Viper instance with defaults and environment variables. If
// configFile is empty, the config file is searched in wd. A missing config
// file is not an error.
func New(wd, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile == "" {
		configFile = findConfigFile(wd)
		if configFile == "" {
			return v, nil
		}
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to read config file %s", configFile),
			"config files are YAML or TOML with keys like \"attribute\" and \"suffix\"",
		)
	}
	return v, nil
}

func findConfigFile(wd string) string {
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		path := filepath.Join(wd, FileName+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load unmarshals and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports invalid values.
func (cfg *Config) Validate() error {
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return errors.WithHint(
			errors.Newf("invalid color %q", cfg.Color),
			"use one of auto, always, and never",
		)
	}
	if cfg.Attribute == "" {
		return errors.New("attribute must not be empty")
	}
	if cfg.Suffix == "" || cfg.Suffix == ".rs" {
		return errors.Newf("invalid suffix %q: output files would overwrite input files", cfg.Suffix)
	}
	return nil
}
