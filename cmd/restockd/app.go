package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/restock/pkg/alerts"
	"github.com/dmitrymomot/restock/pkg/api"
	"github.com/dmitrymomot/restock/pkg/email"
	"github.com/dmitrymomot/restock/pkg/metrics"
	"github.com/dmitrymomot/restock/pkg/redis"
	"github.com/dmitrymomot/restock/pkg/sms"
	"github.com/dmitrymomot/restock/pkg/stock"
)

// app holds the wired components of one restockd process.
type app struct {
	cfg     appConfig
	log     *slog.Logger
	subject *stock.Subject
	feed    *alerts.Feed
	redis   *goredis.Client
	handler *api.Handler
}

func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	mailer, err := newMailer(cfg.Email, log)
	if err != nil {
		return nil, err
	}
	texter, err := newTexter(cfg.SMS, log)
	if err != nil {
		return nil, err
	}

	m := metrics.New(cfg.Metrics)

	opts := []stock.Option{
		stock.WithLogger(log),
		stock.WithObserver(m),
		stock.WithInitialCount(cfg.Stock.InitialCount),
	}
	if cfg.Stock.AsyncDelivery {
		opts = append(opts, stock.WithAsyncDelivery())
	}
	if cfg.Stock.Deduplicate {
		opts = append(opts, stock.WithDeduplication())
	}
	if cfg.Stock.DeliveryTimeout > 0 {
		opts = append(opts, stock.WithDeliveryTimeout(cfg.Stock.DeliveryTimeout))
	}
	a.subject = stock.NewSubject(cfg.Stock.Resource, opts...)

	a.feed = alerts.NewFeed(cfg.Alerts.FeedBuffer, alerts.WithFeedLogger(log))
	a.subject.Register(a.feed)

	handlerOpts := []api.HandlerOption{
		api.WithFactory(alerts.Factory{Email: mailer, SMS: texter}),
		api.WithFeed(a.feed),
		api.WithMetrics(m),
		api.WithHeartbeat(cfg.HTTP.Heartbeat),
		api.WithHandlerLogger(log),
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = client
		a.subject.Register(alerts.NewStream(client, cfg.Alerts.StreamKey, alerts.WithMaxLen(cfg.Alerts.StreamMaxLen)))
		handlerOpts = append(handlerOpts, api.WithReadinessCheck(redis.Healthcheck(client)))
		log.InfoContext(ctx, "publishing alerts to redis stream", slog.String("stream", cfg.Alerts.StreamKey))
	}

	a.handler = api.NewHandler(a.subject, handlerOpts...)
	return a, nil
}

// run serves HTTP until ctx ends, then drains pending deliveries.
func (a *app) run(ctx context.Context) error {
	srv := api.NewServerFromConfig(a.cfg.HTTP, api.WithLogger(a.log))
	runErr := srv.Run(ctx, a.handler)
	return errors.Join(runErr, a.close(context.WithoutCancel(ctx)))
}

func (a *app) close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Stock.DrainTimeout)
	defer cancel()

	var errs []error
	if err := a.subject.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain alerts: %w", err))
	}
	_ = a.feed.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newMailer(cfg email.Config, log *slog.Logger) (email.Sender, error) {
	if !cfg.UsePostmark() {
		log.Info("postmark not configured, writing emails to disk", slog.String("dir", cfg.DevDir))
		return email.NewDevSender(cfg.DevDir), nil
	}
	return email.NewPostmarkClient(cfg)
}

func newTexter(cfg sms.Config, log *slog.Logger) (sms.Sender, error) {
	if cfg.GatewayURL == "" {
		log.Info("sms gateway not configured, logging messages instead")
		return sms.NewLogSender(log), nil
	}
	return sms.NewGatewayClient(cfg)
}
