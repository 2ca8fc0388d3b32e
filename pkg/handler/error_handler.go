package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/restock/pkg/logger"
)

// NewErrorHandler returns an ErrorHandler that logs err and renders it as a
// JSON error envelope. Client errors log at warn, server errors at error.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		resp := jsonResponse{status: http.StatusInternalServerError}
		resp.body.Error = errorToDetail(err, &resp.status)

		level := slog.LevelError
		if resp.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", resp.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.WarnContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
