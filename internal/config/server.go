package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// ServerConfig is the environment-driven configuration of the HTTP API.
type ServerConfig struct {
	Port        string        `env:"API_PORT" envDefault:"8080"`
	Env         string        `env:"API_ENV" envDefault:"development"`
	StaticDir   string        `env:"STATIC_DIR" envDefault:"./web/dist"`
	PresetDir   string        `env:"PRESET_DIR" envDefault:"./examples/presets"`
	CacheTTL    time.Duration `env:"EVALUATION_CACHE_TTL" envDefault:"1h"`
	CORSOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func (c ServerConfig) Production() bool { return c.Env == "production" }

// LoadServer reads ServerConfig from the environment. Files named in envFiles
// (default ".env") are loaded first when present; real environment variables win.
func LoadServer(envFiles ...string) (*ServerConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Missing files are fine; godotenv never overrides variables already set.
		_ = godotenv.Load(f)
	}

	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("EVALUATION_CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	return &cfg, nil
}
