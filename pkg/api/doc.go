// Package api exposes a stock.Subject over HTTP.
//
// NewHandler builds a chi router with endpoints to read and change the stock
// count, force a re-announcement, manage e-mail and SMS subscriptions, stream
// alerts as server-sent events, and report health and metrics. Server runs any
// http.Handler with graceful shutdown when its context ends.
//
//	h := api.NewHandler(subject,
//	    api.WithFactory(alerts.Factory{Email: mailer, SMS: texter}),
//	    api.WithFeed(feed),
//	    api.WithMetrics(m),
//	)
//	srv := api.NewServerFromConfig(cfg.HTTP, api.WithLogger(log))
//	return srv.Run(ctx, h)
package api
