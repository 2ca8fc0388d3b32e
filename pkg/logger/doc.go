// Package logger builds the structured loggers used across the restock service.
//
// It wraps log/slog with a small set of functional options and a decorating
// handler that copies request-scoped values out of context.Context into every
// record. Attribute helpers in attr.go keep key names stable so that logs from
// the stock engine, the sinks and the HTTP layer can be correlated.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "restockd"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "stock updated",
//	    logger.Resource("iphone-15"),
//	    logger.Count(20),
//	)
//
// Error and Errors return an empty attribute for nil errors, so callers can pass
// them unconditionally.
package logger
