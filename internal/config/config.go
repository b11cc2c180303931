// Package config loads diffrefine's settings from, in increasing precedence: built-in defaults, a TOML config file, DIFFREFINE_* environment variables, and command
// line flags.
//
// Keys are the long flag names (ex: "moves-first"); the environment variable for a key is DIFFREFINE_ followed by the key upper-cased with "-" replaced by "_" (ex:
// DIFFREFINE_MOVES_FIRST). List values in the environment are comma-separated.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/codalotl/diffrefine/internal/diff"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DIFFREFINE"

// FileName is the config file looked up in the working directory.
const FileName = ".diffrefine.toml"

var ErrInvalid = errors.New("invalid configuration")

// Formats lists the valid values of Config.Format.
var Formats = []string{"pretty", "annotated", "side-by-side", "markdown", "html"}

// Config is the resolved configuration.
type Config struct {
	Rules        string `mapstructure:"rules"`     // rules file (TOML or YAML); empty means the built-in default rules
	Normalize    string `mapstructure:"normalize"` // overrides the rules file's normalizer when set
	Moves        bool   `mapstructure:"moves"`
	MovesFirst   bool   `mapstructure:"moves-first"`
	Replacements bool   `mapstructure:"replacements"`

	Format  string `mapstructure:"format"`
	Context int    `mapstructure:"context"` // -1 shows all lines
	Width   int    `mapstructure:"width"`   // 0 means the terminal width, or render.DefaultWidth
	Color   string `mapstructure:"color"`   // auto, always, never

	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
	Workers int      `mapstructure:"workers"` // 0 means GOMAXPROCS
}

// Defaults is the configuration with no file, environment, or flags.
var Defaults = Config{
	Moves:        true,
	Replacements: true,
	Format:       "pretty",
	Context:      3,
	Color:        "auto",
}

// New returns a viper instance with Defaults and environment lookup configured.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("rules", Defaults.Rules)
	v.SetDefault("normalize", Defaults.Normalize)
	v.SetDefault("moves", Defaults.Moves)
	v.SetDefault("moves-first", Defaults.MovesFirst)
	v.SetDefault("replacements", Defaults.Replacements)
	v.SetDefault("format", Defaults.Format)
	v.SetDefault("context", Defaults.Context)
	v.SetDefault("width", Defaults.Width)
	v.SetDefault("color", Defaults.Color)
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("workers", Defaults.Workers)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags defines a flag for every key on fs, with Defaults as flag defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("rules", Defaults.Rules, "rules file (.toml, .yaml, .yml)")
	fs.String("normalize", Defaults.Normalize, "normalizer: none, whitespace, unicode (default from rules)")
	fs.Bool("moves", Defaults.Moves, "detect moved lines")
	fs.Bool("moves-first", Defaults.MovesFirst, "detect moves before substitutions")
	fs.Bool("replacements", Defaults.Replacements, "group adjacent changes into replacement blocks")
	fs.String("format", Defaults.Format, "output format: "+strings.Join(Formats, ", "))
	fs.Int("context", Defaults.Context, "unchanged lines around changes (-1 for all)")
	fs.Int("width", Defaults.Width, "side-by-side width (0 for terminal width)")
	fs.String("color", Defaults.Color, "color output: auto, always, never")
	fs.StringSlice("include", Defaults.Include, "glob of files to compare in directories (repeatable)")
	fs.StringSlice("exclude", Defaults.Exclude, "glob of files to skip in directories (repeatable)")
	fs.Int("workers", Defaults.Workers, "parallel file diffs (0 for GOMAXPROCS)")
}

// FindFile returns the first existing default config file: FileName in the working directory, then diffrefine/config.toml in the user config directory. It returns
// "" if there is none.
func FindFile() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "diffrefine", "config.toml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Load reads file (if not "") into v and returns the validated configuration. Flags must already be bound to v.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	valid := false
	for _, f := range Formats {
		if c.Format == f {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(Formats, ", "))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color %q (want auto, always, or never)", ErrInvalid, c.Color)
	}
	if c.Normalize != "" {
		if _, err := diff.NormalizerByName(c.Normalize); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if c.Context < -1 {
		return fmt.Errorf("%w: context %d", ErrInvalid, c.Context)
	}
	if c.Width < 0 {
		return fmt.Errorf("%w: width %d", ErrInvalid, c.Width)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	return nil
}
