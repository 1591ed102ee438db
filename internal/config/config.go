// Package config reads runtime configuration from the environment.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the client.
type Config struct {
	// APIURL is the base URL of the remote management API. The client
	// refuses to start without it.
	APIURL string `envconfig:"ABASTO_API_URL" required:"true"`

	StateDir          string        `envconfig:"ABASTO_STATE_DIR" default:"~/.local/share/abasto"`
	SessionCheckEvery time.Duration `envconfig:"ABASTO_SESSION_CHECK" default:"1m"`
	LogFormat         string        `envconfig:"ABASTO_LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables. A missing or blank
// ABASTO_API_URL is a hard failure.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	if cfg.APIURL == "" {
		return Config{}, errors.New("ABASTO_API_URL must be set")
	}
	return cfg, nil
}
