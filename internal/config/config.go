package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	// HTTPAddr is where the companion listens. Loopback by default: the
	// facade exists for UI surfaces on this machine, not the network.
	HTTPAddr string `envconfig:"HTTP_ADDR" default:"127.0.0.1:7643"`

	// ProfileDir holds the per-profile durable store.
	ProfileDir string `envconfig:"PROFILE_DIR" default:"./profile"`

	// APIBaseURL is the remote storefront backend, /api prefix included.
	APIBaseURL string `envconfig:"API_BASE_URL" default:"https://foodcheq-backend-final.onrender.com/api"`

	// StorefrontOrigins are the page origins allowed to call the facade.
	StorefrontOrigins []string `envconfig:"STOREFRONT_ORIGINS" default:"http://localhost:3000"`

	APITimeout      time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// StorePath is the sqlite file backing the key-value store.
func (c Config) StorePath() string {
	return filepath.Join(c.ProfileDir, "companion.db")
}
