package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP    HTTP
		Log     Log
		Storage Storage
		AI      AI
		Enrich  Enrich
		Catalog Catalog
		Swagger Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	Storage struct {
		Dir string `env:"STORAGE_DIR" envDefault:"storage"`
	}

	AI struct {
		APIKey         string        `env:"OPENAI_API_KEY,required"`
		Model          string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
		ExtractTimeout time.Duration `env:"EXTRACT_TIMEOUT" envDefault:"60s"` // один вызов экстрактора
	}

	Enrich struct {
		Workers int `env:"ENRICH_WORKERS" envDefault:"15"`
	}

	Catalog struct {
		URL     string        `env:"CATALOG_URL,required"`
		Timeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"120s"` // весь батч одним запросом
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
