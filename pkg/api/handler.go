package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/restock/pkg/alerts"
	"github.com/dmitrymomot/restock/pkg/binder"
	"github.com/dmitrymomot/restock/pkg/handler"
	"github.com/dmitrymomot/restock/pkg/logger"
	"github.com/dmitrymomot/restock/pkg/metrics"
	"github.com/dmitrymomot/restock/pkg/sanitizer"
	"github.com/dmitrymomot/restock/pkg/stock"
	"github.com/dmitrymomot/restock/pkg/validator"
)

// Handler serves the HTTP API for one subject.
type Handler struct {
	subject   *stock.Subject
	factory   alerts.Factory
	feed      *alerts.Feed
	metrics   *metrics.Metrics
	checks    []func(context.Context) error
	heartbeat time.Duration
	subs      *registry
	logger    *slog.Logger
	onError   handler.ErrorHandler[handler.Context]
	router    chi.Router
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithFactory sets the factory used by POST /subscribers.
func WithFactory(f alerts.Factory) HandlerOption {
	return func(h *Handler) { h.factory = f }
}

// WithFeed enables GET /alerts/stream backed by feed. The feed must also be
// registered with the subject to receive alerts.
func WithFeed(feed *alerts.Feed) HandlerOption {
	return func(h *Handler) { h.feed = feed }
}

// WithMetrics mounts GET /metrics and records HTTP metrics.
func WithMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithReadinessCheck adds a check run by GET /health/ready.
func WithReadinessCheck(check func(context.Context) error) HandlerOption {
	return func(h *Handler) {
		if check != nil {
			h.checks = append(h.checks, check)
		}
	}
}

// WithHeartbeat sets how often idle SSE streams receive a keep-alive comment.
func WithHeartbeat(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHandler(subject *stock.Subject, opts ...HandlerOption) *Handler {
	h := &Handler{
		subject:   subject,
		heartbeat: 15 * time.Second,
		subs:      newRegistry(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("api"), logger.Resource(subject.Resource()))
	h.onError = handler.NewErrorHandler(h.logger)
	h.router = h.routes()
	return h
}

// wrap adapts a typed endpoint to http.HandlerFunc with the handler's
// error handler and the given binders.
func wrap[R any](h *Handler, fn handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](h.onError),
	)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/stock", func(r chi.Router) {
		r.Get("/", wrap[struct{}](h, h.getStock))
		r.Put("/", wrap[setStockRequest](h, h.setStock, binder.JSON()))
		r.Post("/announce", wrap[struct{}](h, h.announce))
	})

	r.Route("/subscribers", func(r chi.Router) {
		r.Get("/", wrap[listSubscribersRequest](h, h.listSubscribers, binder.Query()))
		r.Post("/", wrap[addSubscriberRequest](h, h.addSubscriber, binder.JSON()))
		r.Delete("/{id}", wrap[removeSubscriberRequest](h, h.removeSubscriber, binder.Path(chi.URLParam)))
	})

	r.Get("/alerts/stream", h.streamAlerts)

	r.Get("/health/live", h.live)
	r.Get("/health/ready", h.ready)

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	return r
}

type stockView struct {
	Resource    string      `json:"resource"`
	Count       int         `json:"count"`
	State       stock.State `json:"state"`
	Subscribers int         `json:"subscribers"`
}

func (h *Handler) view() stockView {
	return stockView{
		Resource:    h.subject.Resource(),
		Count:       h.subject.Count(),
		State:       h.subject.State(),
		Subscribers: h.subject.Len(),
	}
}

func (h *Handler) getStock(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(h.view())
}

type setStockRequest struct {
	Count *int `json:"count"`
}

func (h *Handler) setStock(ctx handler.Context, req setStockRequest) handler.Response {
	if err := validator.Apply(
		validator.Custom("count", "field is required", "validation.required", func() bool { return req.Count != nil }),
	); err != nil {
		return handler.JSONError(err)
	}

	if err := h.subject.SetCount(ctx, *req.Count); err != nil {
		if errors.Is(err, stock.ErrInvalidCount) {
			return handler.JSONError(fmt.Errorf("%w: %w", handler.ErrUnprocessableEntity, err))
		}
		h.logger.ErrorContext(ctx, "set count failed", logger.Error(err))
		return handler.JSONError(err)
	}

	return handler.JSON(h.view())
}

func (h *Handler) announce(ctx handler.Context, _ struct{}) handler.Response {
	h.subject.NotifySubscribers(ctx)
	return handler.JSON(h.view(), handler.WithJSONStatus(http.StatusAccepted))
}

type addSubscriberRequest struct {
	Channel string `json:"channel"`
	Target  string `json:"target"`
}

// addSubscriber answers 201 for a new subscription. When the subject
// deduplicates, a repeated channel and target answers 200 with the existing
// subscription.
func (h *Handler) addSubscriber(ctx handler.Context, req addSubscriberRequest) handler.Response {
	sub, err := h.factory.New(req.Channel, req.Target)
	if err != nil {
		if errors.Is(err, alerts.ErrSinkNotSet) {
			return handler.JSONError(fmt.Errorf("%w: %w", handler.ErrUnprocessableEntity, err))
		}
		return handler.JSONError(err)
	}

	s, created := h.subs.add(sub, h.subject.Deduplicates(), h.subject.Register)
	if !created {
		return handler.JSON(s)
	}

	h.logger.InfoContext(ctx, "subscriber added",
		logger.Channel(s.Channel),
		logger.Target(s.Target),
		slog.String("subscription_id", s.ID),
	)
	return handler.JSON(s, handler.WithJSONStatus(http.StatusCreated))
}

type listSubscribersRequest struct {
	Channel string `query:"channel"`
}

func (h *Handler) listSubscribers(_ handler.Context, req listSubscribersRequest) handler.Response {
	return handler.JSON(h.subs.list(sanitizer.TrimToLower(req.Channel)))
}

type removeSubscriberRequest struct {
	ID string `path:"id"`
}

// removeSubscriber answers 204 whether or not the id exists.
func (h *Handler) removeSubscriber(ctx handler.Context, req removeSubscriberRequest) handler.Response {
	if s, ok := h.subs.remove(req.ID, h.subject.Unregister); ok {
		h.logger.InfoContext(ctx, "subscriber removed",
			logger.Channel(s.Channel),
			slog.String("subscription_id", s.ID),
		)
	}
	return handler.Empty()
}

func (h *Handler) live(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	for _, check := range h.checks {
		if err := check(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		h.logger.DebugContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
			logger.RequestID(middleware.GetReqID(r.Context())),
		)
	})
}
