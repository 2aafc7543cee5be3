package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	API      API
	Session  Session
	Server   Server
	Poll     Poll
	Postgres Postgres
	Redis    Redis
}

type Session struct {
	// File-backed by default; set SESSION_BACKEND=redis to share one login
	// across gateway instances.
	Backend string `env:"SESSION_BACKEND" envDefault:"file"`
	Path    string `env:"SESSION_PATH" envDefault:".startupconnect/session.json"`
	Key     string `env:"SESSION_REDIS_KEY" envDefault:"startupconnect:session"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
