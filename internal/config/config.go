package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sydlexius/amkit/devtoken"
	"github.com/sydlexius/amkit/transport"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig     `yaml:"api" toml:"api"`
	Auth    AuthConfig    `yaml:"auth" toml:"auth"`
	User    UserConfig    `yaml:"user" toml:"user"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// APIConfig holds transport settings.
type APIConfig struct {
	BaseURL           string   `yaml:"base_url" toml:"base_url"`
	Timeout           Duration `yaml:"timeout" toml:"timeout"`
	RequestsPerSecond float64  `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int      `yaml:"burst" toml:"burst"`
	MaxRetries        int      `yaml:"max_retries" toml:"max_retries"`
	Protocol          string   `yaml:"protocol" toml:"protocol"`
}

// AuthConfig holds developer token settings. Either DeveloperToken or the
// TeamID, KeyID and PrivateKeyPath triple must be set.
type AuthConfig struct {
	DeveloperToken string   `yaml:"developer_token" toml:"developer_token"`
	TeamID         string   `yaml:"team_id" toml:"team_id"`
	KeyID          string   `yaml:"key_id" toml:"key_id"`
	PrivateKeyPath string   `yaml:"private_key_path" toml:"private_key_path"`
	TokenTTL       Duration `yaml:"token_ttl" toml:"token_ttl"`
}

// UserConfig holds per-user defaults.
type UserConfig struct {
	MusicToken string `yaml:"music_token" toml:"music_token"`
	Storefront string `yaml:"storefront" toml:"storefront"`
	Locale     string `yaml:"locale" toml:"locale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	Format     string `yaml:"format" toml:"format"`
	FilePath   string `yaml:"file_path" toml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxFiles   int    `yaml:"max_files" toml:"max_files"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           transport.DefaultBaseURL,
			Timeout:           Duration(transport.DefaultTimeout),
			RequestsPerSecond: 20,
			Burst:             5,
			MaxRetries:        2,
			Protocol:          string(transport.HTTP2),
		},
		Auth: AuthConfig{
			TokenTTL: Duration(devtoken.DefaultTTL),
		},
		User: UserConfig{
			Storefront: "us",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads config from a YAML or TOML file (if it exists) and overrides
// with environment variables. Environment variables take precedence. Files
// ending in .toml are read as TOML; anything else is YAML.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path from operator flag or env
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, c)
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() error {
	strs := map[string]*string{
		"AM_BASE_URL":         &c.API.BaseURL,
		"AM_PROTOCOL":         &c.API.Protocol,
		"AM_DEVELOPER_TOKEN":  &c.Auth.DeveloperToken,
		"AM_TEAM_ID":          &c.Auth.TeamID,
		"AM_KEY_ID":           &c.Auth.KeyID,
		"AM_PRIVATE_KEY_PATH": &c.Auth.PrivateKeyPath,
		"AM_USER_TOKEN":       &c.User.MusicToken,
		"AM_STOREFRONT":       &c.User.Storefront,
		"AM_LOCALE":           &c.User.Locale,
		"AM_LOG_LEVEL":        &c.Logging.Level,
		"AM_LOG_FORMAT":       &c.Logging.Format,
		"AM_LOG_FILE":         &c.Logging.FilePath,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	var errs []error
	durations := map[string]*Duration{
		"AM_TIMEOUT":   &c.API.Timeout,
		"AM_TOKEN_TTL": &c.Auth.TokenTTL,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	}

	ints := map[string]*int{
		"AM_BURST":       &c.API.Burst,
		"AM_MAX_RETRIES": &c.API.MaxRetries,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			*dst = n
		}
	}

	if v := os.Getenv("AM_RATE_LIMIT"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("AM_RATE_LIMIT: %w", err))
		} else {
			c.API.RequestsPerSecond = rps
		}
	}
	return errors.Join(errs...)
}

func (c *Config) validate() error {
	if !transport.Protocol(c.API.Protocol).Valid() {
		return fmt.Errorf("invalid protocol: %q", c.API.Protocol)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.API.Timeout)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid rate limit: %v", c.API.RequestsPerSecond)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("invalid max retries: %d", c.API.MaxRetries)
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.TokenTTL.Std() > devtoken.MaxTTL {
		return fmt.Errorf("invalid token ttl: %s", c.Auth.TokenTTL)
	}
	if c.Auth.DeveloperToken == "" {
		var missing []string
		if c.Auth.TeamID == "" {
			missing = append(missing, "team_id")
		}
		if c.Auth.KeyID == "" {
			missing = append(missing, "key_id")
		}
		if c.Auth.PrivateKeyPath == "" {
			missing = append(missing, "private_key_path")
		}
		if len(missing) > 0 {
			return fmt.Errorf("developer_token or signing key settings required (missing %s)", strings.Join(missing, ", "))
		}
	}
	c.User.Storefront = strings.ToLower(strings.TrimSpace(c.User.Storefront))
	return nil
}

// SignsTokens reports whether the developer token is signed locally rather
// than supplied verbatim.
func (c *Config) SignsTokens() bool {
	return c.Auth.DeveloperToken == ""
}
