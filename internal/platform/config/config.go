package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	id "moortracker/pkg/domain"
)

const sessionFileName = "session.yaml"

// Config is the client configuration, read once at startup.
type Config struct {
	APIURL         string        `env:"MOOR_API_URL,required,notEmpty"`
	APIKey         string        `env:"MOOR_API_KEY,required,notEmpty"`
	RedirectURL    string        `env:"MOOR_REDIRECT_URL" envDefault:"http://127.0.0.1:53682/auth/callback"`
	OAuthProvider  id.Provider   `env:"MOOR_OAUTH_PROVIDER" envDefault:"google"`
	SessionFile    string        `env:"MOOR_SESSION_FILE"`
	HTTPTimeout    time.Duration `env:"MOOR_HTTP_TIMEOUT" envDefault:"10s"`
	BrowserTimeout time.Duration `env:"MOOR_BROWSER_TIMEOUT" envDefault:"5m"`
	LogLevel       string        `env:"MOOR_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"MOOR_LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return finish(&cfg)
}

// Parse builds a config from an explicit variable set instead of the process
// environment.
func Parse(vars map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("MOOR_SESSION_FILE is not set and no user config dir is available: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "moortracker", sessionFileName)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.APIKey == "" {
		return errors.New("MOOR_API_KEY is required")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("MOOR_API_URL must be an absolute http(s) URL, got %q", cfg.APIURL)
	}
	r, err := url.Parse(cfg.RedirectURL)
	if err != nil || r.Scheme == "" || r.Host == "" {
		return fmt.Errorf("MOOR_REDIRECT_URL must be an absolute URL, got %q", cfg.RedirectURL)
	}
	switch cfg.OAuthProvider {
	case id.ProviderGoogle, id.ProviderApple:
	default:
		return fmt.Errorf("MOOR_OAUTH_PROVIDER %q is not supported", cfg.OAuthProvider)
	}
	if cfg.HTTPTimeout <= 0 {
		return errors.New("MOOR_HTTP_TIMEOUT must be positive")
	}
	if cfg.BrowserTimeout <= 0 {
		return errors.New("MOOR_BROWSER_TIMEOUT must be positive")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("MOOR_LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("MOOR_LOG_LEVEL %q is not a log level", cfg.LogLevel)
	}
	return nil
}
