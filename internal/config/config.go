// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves harness settings from defaults, an optional
// .skillcheck.yaml file, SKILLCHECK_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/bartekus/skillcheck/internal/conformance"
	"github.com/bartekus/skillcheck/internal/report"
	"github.com/bartekus/skillcheck/internal/routing"
)

// Keys understood in the config file and environment.
const (
	KeySkillsDir = "skills_dir"
	KeyCases     = "cases"
	KeyMaxLines  = "max_lines"
	KeyFormat    = "format"
	KeyColor     = "color"
	KeyExclude   = "exclude"
	KeyHints     = "hints"
)

const (
	EnvPrefix = "SKILLCHECK"
	fileName  = ".skillcheck"
)

// Defaults for the conventional repository layout.
const (
	DefaultSkillsDir = "agents"
	DefaultCases     = "scripts/skill-regression-cases.yaml"
)

// Config is the resolved harness configuration.
type Config struct {
	SkillsDir string
	Cases     string
	MaxLines  int
	Format    report.Format
	Color     report.ColorMode
	// Exclude lists skill folders to leave out of discovery.
	Exclude []string
	// Hints replace the built-in hint words per folder.
	Hints map[string][]string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeySkillsDir, DefaultSkillsDir)
	v.SetDefault(KeyCases, DefaultCases)
	v.SetDefault(KeyMaxLines, conformance.DefaultMaxLines)
	v.SetDefault(KeyFormat, string(report.FormatText))
	v.SetDefault(KeyColor, "auto")
	v.SetDefault(KeyExclude, []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads path into v. With an empty path it looks for
// .skillcheck.yaml in the working directory and tolerates its absence; an
// explicit path must exist.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrapf(err, "config file %s", path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "reading config")
	}
	return nil
}

// Load resolves and validates the configuration. Every invalid setting is
// reported, not only the first.
func Load(v *viper.Viper) (*Config, error) {
	var result *multierror.Error

	cfg := &Config{
		SkillsDir: strings.TrimSpace(v.GetString(KeySkillsDir)),
		Cases:     strings.TrimSpace(v.GetString(KeyCases)),
		MaxLines:  v.GetInt(KeyMaxLines),
		Exclude:   v.GetStringSlice(KeyExclude),
	}

	if cfg.SkillsDir == "" {
		result = multierror.Append(result, errors.Errorf("%s must not be empty", KeySkillsDir))
	}
	if cfg.Cases == "" {
		result = multierror.Append(result, errors.Errorf("%s must not be empty", KeyCases))
	}
	if cfg.MaxLines <= 0 {
		result = multierror.Append(result, errors.Errorf("%s must be positive, got %d", KeyMaxLines, cfg.MaxLines))
	}

	format, err := report.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		result = multierror.Append(result, err)
	}
	cfg.Format = format

	color, err := report.ParseColorMode(v.GetString(KeyColor))
	if err != nil {
		result = multierror.Append(result, err)
	}
	cfg.Color = color

	hints, err := decodeHints(v.Get(KeyHints))
	if err != nil {
		result = multierror.Append(result, err)
	}
	cfg.Hints = hints

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// HintTable returns the built-in hints with the configured overrides applied.
func (c *Config) HintTable() routing.HintTable {
	return routing.DefaultHints().Merge(c.Hints)
}

// decodeHints accepts folder → list of words; a single string is taken as
// a one-word list.
func decodeHints(raw any) (map[string][]string, error) {
	if raw == nil {
		return nil, nil
	}

	var hints map[string][]string
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &hints,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create hints decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrapf(err, "%s must map skill folders to word lists", KeyHints)
	}
	return hints, nil
}
