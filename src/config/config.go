// Package config resolves benchplot settings from defaults, an optional config
// file, BENCHPLOT_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/iafilius/benchplot/src/figure"
	"github.com/iafilius/benchplot/src/logging"
	"github.com/iafilius/benchplot/src/render"
	"github.com/iafilius/benchplot/src/report"
)

// EnvPrefix namespaces environment overrides (BENCHPLOT_OUTPUT, ...).
const EnvPrefix = "BENCHPLOT"

// Keys shared by viper, flags and the environment.
const (
	KeyInput    = "input"
	KeyOutput   = "output"
	KeyBackend  = "backend"
	KeyWidth    = "width"
	KeyHeight   = "height"
	KeyCaption  = "caption"
	KeyShow     = "show"
	KeyLogLevel = "log_level"
)

const minDimension = 200

// Config is the resolved run configuration.
type Config struct {
	Input    string `mapstructure:"input"`
	Output   string `mapstructure:"output"`
	Backend  string `mapstructure:"backend"`
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
	Caption  string `mapstructure:"caption"`
	Show     bool   `mapstructure:"show"`
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Input:    report.DefaultInput,
		Output:   report.DefaultOutput,
		Backend:  render.DefaultBackend,
		Width:    figure.DefaultWidth,
		Height:   figure.DefaultHeight,
		Show:     true,
		LogLevel: "info",
	}
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault(KeyInput, d.Input)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyBackend, d.Backend)
	v.SetDefault(KeyWidth, d.Width)
	v.SetDefault(KeyHeight, d.Height)
	v.SetDefault(KeyCaption, d.Caption)
	v.SetDefault(KeyShow, d.Show)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load merges an optional config file into v and decodes the result.
// An empty path means no file; a named file that cannot be read is an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that viper cannot type-check.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, errors.New("input path is empty"))
	}
	if strings.TrimSpace(c.Output) == "" {
		errs = append(errs, errors.New("output path is empty"))
	}
	if c.Width < minDimension || c.Height < minDimension {
		errs = append(errs, fmt.Errorf("canvas %dx%d is smaller than %dx%d", c.Width, c.Height, minDimension, minDimension))
	}
	if _, err := render.New(c.Backend); err != nil {
		errs = append(errs, err)
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q (debug|info|warn|error)", c.LogLevel))
	}
	return errors.Join(errs...)
}

// ReportOptions maps the configuration onto pipeline options.
func (c Config) ReportOptions() report.Options {
	return report.Options{Backend: c.Backend, Width: c.Width, Height: c.Height, Caption: c.Caption}
}
