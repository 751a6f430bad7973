package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvAPIKey is the environment variable consulted when the settings file
// and flags carry no API key.
const EnvAPIKey = "DEEPGRAM_API_KEY"

// Config is the runtime configuration, resolved once at startup and
// passed explicitly to the components that need it.
type Config struct {
	APIKey                string        `toml:"api_key"`
	Language              string        `toml:"language"`
	Diarize               bool          `toml:"diarize"`
	OutputExt             string        `toml:"output_ext"`
	Workers               int           `toml:"workers"`
	BaseURL               string        `toml:"base_url"`
	Model                 string        `toml:"model"`
	RequestTimeoutSeconds int           `toml:"request_timeout_seconds"`
	RetryMaxAttempts      int           `toml:"retry_max_attempts"`
	RetryInitialBackoffMs int           `toml:"retry_initial_backoff_ms"`
	Logging               LoggingConfig `toml:"logging"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		OutputExt:             "txt",
		Workers:               1,
		BaseURL:               "https://api.deepgram.com",
		Model:                 "nova-3",
		RequestTimeoutSeconds: 300,
		RetryMaxAttempts:      3,
		RetryInitialBackoffMs: 1000,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from the given TOML file, falling back to the
// default locations when path is empty and to defaults when no file
// exists. The environment overrides the file for the API key; CLI flags
// are layered on top via Apply. Resolution order: flag > env > file >
// default.
func Load(path string) (*Config, error) {
	cfg := Default()

	candidates := []string{path}
	if path == "" {
		candidates = defaultPaths()
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			if path != "" {
				return nil, fmt.Errorf("config file not found: %s", candidate)
			}
			continue
		}
		if _, err := toml.DecodeFile(candidate, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", candidate, err)
		}
		break
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides carries explicit CLI flag values. Zero-valued string and int
// fields leave the resolved configuration untouched; Diarize is a pointer
// so an explicit -diarization=false can switch off a file-enabled setting.
type Overrides struct {
	APIKey    string
	Language  string
	Diarize   *bool
	OutputExt string
	Workers   int
	LogLevel  string
}

// Apply layers explicit CLI values over the resolved configuration.
// Flags take precedence over both the environment and the settings file.
func (c *Config) Apply(o Overrides) {
	if o.APIKey != "" {
		c.APIKey = o.APIKey
	}
	if o.Language != "" {
		c.Language = o.Language
	}
	if o.Diarize != nil {
		c.Diarize = *o.Diarize
	}
	if o.OutputExt != "" {
		c.OutputExt = o.OutputExt
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
}

// defaultPaths returns the probe order for the settings file: working
// directory first, then the user config directory.
func defaultPaths() []string {
	paths := []string{"scribe.toml"}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "scribe", "scribe.toml"))
	}
	return paths
}

// validate rejects values no component can work with. The API key is
// checked separately in main so the message can name the flag and env var.
func (c *Config) validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.RequestTimeoutSeconds < 1 {
		return errors.New("request_timeout_seconds must be at least 1")
	}
	if c.RetryMaxAttempts < 1 {
		return errors.New("retry_max_attempts must be at least 1")
	}
	if c.OutputExt == "" {
		return errors.New("output_ext must not be empty")
	}
	return nil
}
