// Package config loads generator settings from a YAML file, COPYGEN_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"copy-generator/internal/common"
	"copy-generator/internal/gen"
	"copy-generator/internal/plan"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "COPYGEN"

// DefaultConfigName is the file searched for in the working directory when
// no config file is given.
const DefaultConfigName = "copygen"

// Config is the complete generator configuration.
type Config struct {
	// Manifests are doublestar patterns of manifest files.
	Manifests []string `mapstructure:"manifests" validate:"required,min=1,dive,required"`
	// Output is the directory generated files are written to.
	Output string `mapstructure:"output" validate:"required"`
	// Parallelism bounds concurrent rendering; 0 uses the number of CPUs.
	Parallelism int `mapstructure:"parallelism" validate:"gte=0"`
	// FileSuffix is appended to "<Namespace>.<Name>".
	FileSuffix string `mapstructure:"file_suffix" validate:"required,startswith=."`
	// Fluent makes copy methods return the receiver.
	Fluent bool `mapstructure:"fluent"`
	// Exclude lists "Namespace.Type.Member" patterns never copied.
	Exclude []string `mapstructure:"exclude"`
	// Modes overrides hook generation per mode ("init", "copy", ...).
	Modes map[string]ModeOverride `mapstructure:"modes"`
	Log   LogConfig               `mapstructure:"log"`
}

// ModeOverride toggles the Before/After hooks of a mode. Nil keeps the default.
type ModeOverride struct {
	Before *bool `mapstructure:"before"`
	After  *bool `mapstructure:"after"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `mapstructure:"json"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("manifests", []string{})
	v.SetDefault("output", "Generated")
	v.SetDefault("parallelism", 0)
	v.SetDefault("file_suffix", gen.DefaultFileSuffix)
	v.SetDefault("fluent", false)
	v.SetDefault("exclude", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load reads the configuration into v. An explicit path must exist; without
// one, "copygen.yaml" in the working directory is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
			return name
		})
	})

	return validate
}

// Validate checks field constraints, mode names and exclude patterns.
func (c *Config) Validate() error {
	var errs []error

	if err := structValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}

		for _, fe := range verrs {
			_, path, _ := strings.Cut(fe.Namespace(), ".")
			errs = append(errs, fmt.Errorf("config %s: failed %q validation", path, fe.Tag()))
		}
	}

	seen := make(map[plan.Mode]string)

	for _, name := range common.SortedKeys(c.Modes) {
		m, ok := plan.ParseMode(name)
		if !ok {
			errs = append(errs, fmt.Errorf("config modes: unknown mode %q", name))

			continue
		}

		if prev, dup := seen[m]; dup {
			errs = append(errs, fmt.Errorf("config modes: %q and %q both configure %s", prev, name, m))

			continue
		}

		seen[m] = name
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("config exclude: invalid pattern %q", pattern))
		}
	}

	return errors.Join(errs...)
}

// ModeConfigs returns the configuration of every mode with the overrides
// applied.
func (c *Config) ModeConfigs() []plan.ModeConfig {
	out := make([]plan.ModeConfig, 0, len(plan.AllModes()))

	for _, m := range plan.AllModes() {
		cfg := plan.DefaultModeConfig(m)

		// Sorted so that aliases of one mode ("copy_to", "copyto") apply in a
		// fixed order.
		for _, name := range common.SortedKeys(c.Modes) {
			o := c.Modes[name]
			if parsed, ok := plan.ParseMode(name); !ok || parsed != m {
				continue
			}

			if o.Before != nil {
				cfg.Before = *o.Before
			}

			if o.After != nil {
				cfg.After = *o.After
			}
		}

		if c.Fluent && m == plan.ModeCopy {
			cfg.Return = plan.ReturnSelf
		}

		out = append(out, cfg)
	}

	return out
}

// Excluded reports whether a member matches one of the exclude patterns.
// Patterns use "." as separator, so "App.*.Secret" matches Secret on every
// type of namespace App.
func (c *Config) Excluded(qualifiedType, member string) bool {
	name := strings.ReplaceAll(common.QualifiedName(qualifiedType, member), ".", "/")

	return slices.ContainsFunc(c.Exclude, func(pattern string) bool {
		ok, _ := doublestar.Match(strings.ReplaceAll(pattern, ".", "/"), name)
		return ok
	})
}
