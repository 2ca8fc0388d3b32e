package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/restock/pkg/logger"
)

type serverConfig struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	listener        net.Listener
	logger          *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *serverConfig) { c.addr = addr }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithReadTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration for writing a response.
func WithWriteTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithWriteTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithIdleTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithShutdownTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.shutdownTimeout = d }
}

// WithListener serves on l instead of listening on the configured address.
func WithListener(l net.Listener) ServerOption {
	if l == nil {
		panic("WithListener: nil listener")
	}
	return func(c *serverConfig) { c.listener = l }
}

// WithLogger sets the server logger. Nil discards logs.
func WithLogger(l *slog.Logger) ServerOption {
	return func(c *serverConfig) { c.logger = l }
}

// Server wraps http.Server with graceful shutdown and logging. A Server
// runs one http.Server at a time and may be run again after Run returns.
type Server struct {
	cfg *serverConfig
	mu  sync.Mutex
	cur *serving
}

// serving is the state of one Run call.
type serving struct {
	srv  *http.Server
	once sync.Once
	err  error
}

func NewServer(opts ...ServerOption) *Server {
	cfg := &serverConfig{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Nop()
	}
	cfg.logger = cfg.logger.With(logger.Component("http"))
	return &Server{cfg: cfg}
}

// Run serves handler until ctx is done, then shuts down gracefully.
// Startup failures are wrapped with ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.cur != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	cfg := s.cfg
	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadTimeout:       cfg.readTimeout,
		ReadHeaderTimeout: cfg.readTimeout,
		WriteTimeout:      cfg.writeTimeout,
		IdleTimeout:       cfg.idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	cur := &serving{srv: srv}
	s.cur = cur
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.cur == cur {
			s.cur = nil
		}
		s.mu.Unlock()
	}()

	ln := cfg.listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", cfg.addr); err != nil {
			return errors.Join(ErrStart, err)
		}
	}

	cfg.logger.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
			cfg.logger.ErrorContext(ctx, "http server shutdown failed", logger.Error(err))
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	cfg.logger.InfoContext(ctx, "http server stopped")
	return nil
}

// Shutdown stops the running server gracefully. It is safe to call more
// than once and is a no-op when nothing is running.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	cur := s.cur
	s.mu.Unlock()
	if cur == nil {
		return nil
	}

	cur.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		cur.err = cur.srv.Shutdown(ctx)
	})

	if cur.err != nil && !errors.Is(cur.err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, cur.err)
	}
	return nil
}
