package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/restock/pkg/handler"
	"github.com/dmitrymomot/restock/pkg/logger"
)

// streamAlerts writes every alert from the feed as a server-sent event until
// the client disconnects or the feed closes.
func (h *Handler) streamAlerts(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		_ = handler.JSONError(fmt.Errorf("%w: %w", handler.ErrNotFound, ErrFeedDisabled)).Render(w, r)
		return
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	alertsCh := h.feed.Listen(ctx)

	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		h.logger.WarnContext(ctx, "sse flush unsupported", logger.Error(err))
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case alert, ok := <-alertsCh:
			if !ok {
				return
			}
			data, err := json.Marshal(alert)
			if err != nil {
				h.logger.ErrorContext(ctx, "encode alert", logger.Error(err), logger.AlertID(alert.ID))
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %s\nevent: restock\ndata: %s\n\n", alert.ID, data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
