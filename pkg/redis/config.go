package redis

import "time"

// Config describes how to reach Redis. An empty URL disables Redis features.
type Config struct {
	URL            string        `env:"URL"` // redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
