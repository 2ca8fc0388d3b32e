package main

import (
	"time"

	"github.com/dmitrymomot/restock/pkg/api"
	"github.com/dmitrymomot/restock/pkg/email"
	"github.com/dmitrymomot/restock/pkg/metrics"
	"github.com/dmitrymomot/restock/pkg/redis"
	"github.com/dmitrymomot/restock/pkg/sms"
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"restockd"`

	Stock  stockConfig  `envPrefix:"STOCK_"`
	Alerts alertsConfig `envPrefix:"ALERTS_"`

	HTTP    api.Config
	Email   email.Config   `envPrefix:"EMAIL_"`
	SMS     sms.Config     `envPrefix:"SMS_"`
	Redis   redis.Config   `envPrefix:"REDIS_"`
	Metrics metrics.Config `envPrefix:"METRICS_"`
}

type stockConfig struct {
	Resource        string        `env:"RESOURCE" envDefault:"product"`
	InitialCount    int           `env:"INITIAL_COUNT" envDefault:"0"`
	AsyncDelivery   bool          `env:"ASYNC_DELIVERY" envDefault:"false"`
	Deduplicate     bool          `env:"DEDUPLICATE" envDefault:"false"`
	DeliveryTimeout time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"0s"`
	DrainTimeout    time.Duration `env:"DRAIN_TIMEOUT" envDefault:"10s"`
}

type alertsConfig struct {
	FeedBuffer   int    `env:"FEED_BUFFER" envDefault:"16"`
	StreamKey    string `env:"STREAM_KEY" envDefault:"restock:alerts"`
	StreamMaxLen int64  `env:"STREAM_MAXLEN" envDefault:"10000"`
}
