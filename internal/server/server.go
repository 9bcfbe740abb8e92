// Package server wires the password generator into an HTTP server.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"

	"github.com/passgen/passgen-go/internal/config"
	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/handler"
	"github.com/passgen/passgen-go/internal/metrics"
	"github.com/passgen/passgen-go/internal/middleware"
	"github.com/passgen/passgen-go/internal/service"
)

// Server serves the password generator API.
type Server struct {
	cfg     config.Config
	handler http.Handler
}

// New builds the generator, metrics and router described by cfg.
func New(cfg config.Config) *Server {
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	gen := crypto.NewGenerator(randSource(cfg))
	genService := service.NewGeneratorService(gen, m)
	genHandler := handler.NewGeneratorHandler(genService)

	return &Server{
		cfg:     cfg,
		handler: NewRouter(cfg, genHandler, m),
	}
}

// NewRouter mounts the API routes. m may be nil, in which case /metrics is not served.
func NewRouter(cfg config.Config, genHandler *handler.GeneratorHandler, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	useMiddleware(r, cfg, m)

	r.Get("/", genHandler.HandleRoot)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/generate-password", genHandler.HandleGenerate)

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	return r
}

// useMiddleware installs the middleware stack. Logger and Metrics sit outside
// Recoverer so that recovered panics are still logged and counted as 500s.
func useMiddleware(r chi.Router, cfg config.Config, m *metrics.Metrics) {
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	if m != nil {
		r.Use(middleware.Metrics(m))
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return oops.In("server").With("addr", s.cfg.Addr()).Wrapf(err, "listen")
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		slog.Info("server starting", "addr", ln.Addr().String(), "env", s.cfg.Env)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return oops.In("server").Wrapf(err, "serve")
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.In("server").Wrapf(err, "forced shutdown")
	}
	<-errCh

	slog.Info("server stopped")
	return nil
}

func randSource(cfg config.Config) crypto.RandSource {
	if cfg.RandomSource != config.RandomSourceMath {
		return crypto.CryptoSource{}
	}
	// Validate has already rejected unparsable seeds.
	seed, _ := cfg.Seed()
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	slog.Warn("using non-cryptographic random source", "seed", seed)
	return crypto.NewMathSource(seed)
}
