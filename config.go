package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/zam-dot/wordly/internal/storage"
)

// Config is the root application configuration.
// Priority: flags > ENV > config file > env-default tags.
type Config struct {
	Lookup  LookupConfig  `yaml:"lookup"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// LookupConfig holds dictionary service settings.
// Booleans default to false: env-default only fills zero values, so a
// default of true could never be switched off from a file.
type LookupConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"WORDLY_LOOKUP_URL"      env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout   time.Duration `yaml:"timeout"    env:"WORDLY_LOOKUP_TIMEOUT"  env-default:"10s"`
	NoRetry   bool          `yaml:"no_retry"   env:"WORDLY_LOOKUP_NO_RETRY"`
	UserAgent string        `yaml:"user_agent" env:"WORDLY_USER_AGENT"      env-default:"wordly/1.0"`
}

// StorageConfig selects where favorites and the theme are kept.
// An empty Path resolves to the per-user data directory.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"WORDLY_STORAGE" env-default:"file"`
	Path    string `yaml:"path"    env:"WORDLY_DATA"`
}

// LogConfig holds logging settings. An empty File resolves to
// wordly.log in the data directory.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORDLY_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WORDLY_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"WORDLY_LOG_FILE"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// Inline draws in the normal screen buffer instead of the alternate one.
	Inline bool `yaml:"inline" env:"WORDLY_INLINE"`
	Width  int  `yaml:"width"  env:"WORDLY_WIDTH"  env-default:"80"`
}

// Options is everything the command line asks for.
type Options struct {
	Config Config
	// Define runs a single lookup and prints it instead of starting the TUI.
	Define string
	// Theme is "dark" or "light" when the theme should be stored and the
	// program should exit.
	Theme string
}

// LoadConfig reads configuration from an optional YAML file and the
// environment. An empty path falls back to WORDLY_CONFIG; if that is unset
// too, configuration comes from ENV and defaults only.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("WORDLY_CONFIG")
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}

	return cfg, nil
}

// ParseFlags parses args (without the program name) on top of LoadConfig.
// Flags only override values they were explicitly given for.
func ParseFlags(args []string, output io.Writer) (Options, error) {
	fs := flag.NewFlagSet("wordly", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		configFile string
		backend    string
		dataPath   string
		logLevel   string
		define     string
		dark       bool
		light      bool
	)
	fs.StringVar(&configFile, "config", "", "Path to a YAML config file")
	fs.StringVar(&backend, "storage", "", "Storage backend: file, sqlite or memory")
	fs.StringVar(&dataPath, "data", "", "Path to the storage file or database")
	fs.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&define, "define", "", "Look up a word, print it and exit")
	fs.BoolVar(&dark, "dark", false, "Store the dark theme and exit")
	fs.BoolVar(&light, "light", false, "Store the light theme and exit")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if dark && light {
		return Options{}, errors.New("config: -dark and -light are mutually exclusive")
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return Options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "storage":
			cfg.Storage.Backend = backend
		case "data":
			cfg.Storage.Path = dataPath
		case "log-level":
			cfg.Log.Level = logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return Options{}, fmt.Errorf("config: validate: %w", err)
	}

	opts := Options{Config: cfg, Define: strings.TrimSpace(define)}
	switch {
	case dark:
		opts.Theme = "dark"
	case light:
		opts.Theme = "light"
	}
	if fs.NArg() > 0 && opts.Define == "" {
		opts.Define = strings.Join(fs.Args(), " ")
	}
	return opts, nil
}

// Validate checks the configuration for values the program cannot run with.
func (c Config) Validate() error {
	var errs []error

	backends := []string{storage.BackendFile, storage.BackendSQLite, storage.BackendMemory}
	if !slices.Contains(backends, strings.ToLower(c.Storage.Backend)) {
		errs = append(errs, fmt.Errorf("storage.backend must be one of %s, got %q", strings.Join(backends, ", "), c.Storage.Backend))
	}
	if c.Lookup.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("lookup.timeout must be positive, got %s", c.Lookup.Timeout))
	}
	if c.UI.Width < 20 {
		errs = append(errs, fmt.Errorf("ui.width must be at least 20, got %d", c.UI.Width))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(strings.TrimSpace(c.Log.Level))) {
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if !strings.EqualFold(c.Log.Format, "text") && !strings.EqualFold(c.Log.Format, "json") {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
