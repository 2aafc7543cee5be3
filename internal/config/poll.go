package config

import "time"

// Poll drives the notification/message refresh loops. The backend offers no
// push; the client re-fetches full collections on a fixed interval.
type Poll struct {
	Interval time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	SeenTTL  time.Duration `env:"POLL_SEEN_TTL" envDefault:"1h"`
}
