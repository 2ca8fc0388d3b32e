// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is read once per process (missing files
// are ignored), then struct fields are populated from `env` tags using
// github.com/caarlos0/env. Each package that needs settings declares its own
// Config struct; the service aggregates them:
//
//	type AppConfig struct {
//	    Env   string       `env:"APP_ENV" envDefault:"development"`
//	    Email email.Config `envPrefix:"EMAIL_"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Variables already present in the environment win over .env values.
package config
