// Command restockd tracks the stock count of one resource and alerts
// subscribers by e-mail, SMS, server-sent events and a Redis stream when it
// comes back in stock.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/restock/pkg/config"
	"github.com/dmitrymomot/restock/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		os.Exit(1)
	}

	if err := a.run(ctx); err != nil {
		log.Error("restockd stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
