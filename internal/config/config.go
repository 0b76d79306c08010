// Package config loads the tokentrim command's settings from flags, the
// environment and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abemedia/tokentrim"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the command configuration.
type Config struct {
	// Extensions lists the extensions run through the trimmer; everything
	// else is copied through.
	Extensions []string `mapstructure:"extensions" validate:"min=1,dive,startswith=."`

	// PreserveMarkdown copies markdown through untouched.
	PreserveMarkdown bool `mapstructure:"preserve_md"`

	// Workers bounds the number of files processed at once. Zero means
	// one per CPU.
	Workers int `mapstructure:"workers" validate:"gte=0"`

	// Atomic writes each output through a temporary file and a rename.
	Atomic bool `mapstructure:"atomic"`

	// Format selects the summary format: text, json or yaml.
	Format string `mapstructure:"format" validate:"oneof=text json yaml"`

	Verbose bool `mapstructure:"verbose"`
	Quiet   bool `mapstructure:"quiet"`
	LogJSON bool `mapstructure:"log_json"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extensions", tokentrim.DefaultExtensions)
	v.SetDefault("preserve_md", false)
	v.SetDefault("workers", 0)
	v.SetDefault("atomic", true)
	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("log_json", false)
}

// Load decodes v into a Config, normalizes the extension list and
// validates the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Extensions = ParseExtensions(cfg.Extensions)
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fe := errs[0]
	switch fe.Field() {
	case "Workers":
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case "Format":
		return fmt.Errorf("unknown format %q (want one of %s)", c.Format, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "Extensions":
		return errors.New("no extensions configured")
	default:
		return fmt.Errorf("invalid %s: %w", fe.Namespace(), fe)
	}
}

// Trim returns the trimmer configuration.
func (c *Config) Trim() *tokentrim.Config {
	return &tokentrim.Config{
		Extensions:    c.Extensions,
		PreserveProse: c.PreserveMarkdown,
	}
}

// ParseExtensions splits comma separated entries, normalizes each one and
// drops duplicates and blanks while keeping the first-seen order.
func ParseExtensions(list []string) []string {
	out := make([]string, 0, len(list))
	for _, entry := range list {
		for part := range strings.SplitSeq(entry, ",") {
			ext := tokentrim.NormalizeExt(part)
			if ext == "" || slices.Contains(out, ext) {
				continue
			}
			out = append(out, ext)
		}
	}
	return out
}
