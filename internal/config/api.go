package config

import "time"

// API configures the outbound client of the StartupConnect backend.
type API struct {
	BaseURL        string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout        time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	LogFieldMaxLen int           `env:"API_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}
