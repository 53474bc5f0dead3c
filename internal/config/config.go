package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings holds the process configuration read from the environment.
// Game data (abilities, races, classes, balance) lives in the catalog
// file; only deployment knobs belong here.
type Settings struct {
	Address     string `env:"WARLOCK_ADDR" envDefault:":8080"`
	DBPath      string `env:"WARLOCK_DB" envDefault:"./data/warlock.db"`
	CatalogPath string `env:"WARLOCK_CATALOG" envDefault:"./warlock_catalog.json"`

	// ActionTimeout bounds one action phase; non-submitters default to
	// a no-op when it fires.
	ActionTimeout time.Duration `env:"WARLOCK_ACTION_TIMEOUT" envDefault:"60s"`

	// SessionSecret signs guest session tokens. Required outside
	// development.
	SessionSecret string `env:"SESSION_SECRET"`

	// RNGSeed fixes gameplay randomness for reproducible games; zero
	// seeds from the clock.
	RNGSeed int64 `env:"WARLOCK_SEED" envDefault:"0"`

	// PublicBaseURL is used to build join links for QR codes.
	PublicBaseURL string `env:"WARLOCK_PUBLIC_URL" envDefault:"http://localhost:8080"`
}

// Load reads a .env file when present and parses the environment into
// Settings.
func Load() (*Settings, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &s, nil
}
