package sms

import "time"

// Config holds SMS gateway settings. An empty GatewayURL selects LogSender.
type Config struct {
	GatewayURL    string        `env:"GATEWAY_URL"`
	SigningSecret string        `env:"SIGNING_SECRET"`
	SenderID      string        `env:"SENDER_ID" envDefault:"RESTOCK"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
