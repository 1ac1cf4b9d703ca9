package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. A .env
// file is loaded first when present, so local development works without
// exporting variables by hand.
type Config struct {
	DSN        string `env:"DB_DSN_PRIMARY,required"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogAsJSON bool   `env:"LOG_AS_JSON" envDefault:"true"`

	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"http://localhost:5173"`

	// Engine policies. The defaults keep the historical lenient behavior:
	// unresolved attribute pairs are skipped, and a unit batch without an
	// explicit base unit promotes its first entry.
	StrictAttributes bool `env:"CATALOG_STRICT_ATTRIBUTES" envDefault:"false"`
	RequireBaseUnit  bool `env:"CATALOG_REQUIRE_BASE_UNIT" envDefault:"false"`
}

func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return &cfg, nil
}
