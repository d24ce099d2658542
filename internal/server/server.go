package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/depscope/internal/ctxlog"
	"github.com/specialistvlad/depscope/internal/depmap"
	"github.com/zishang520/socket.io/v2/socket"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Config holds the settings of a Server.
type Config struct {
	Addr      string `validate:"required"`
	CacheSize int    `validate:"gte=1"`
}

// Server answers dependency queries for one loaded graph.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	view     *graphView
	cache    *lru.Cache[string, Response]
	validate *validator.Validate
	router   *gin.Engine
	io       *socket.Server
}

// New builds a server over inverse. The logger is taken from ctx.
func New(ctx context.Context, inverse *depmap.Map, cfg Config) (*Server, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	cache, err := lru.New[string, Response](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	if inverse == nil {
		inverse = depmap.New()
	}

	s := &Server{
		cfg:      cfg,
		logger:   ctxlog.FromContext(ctx).With("component", "server"),
		view:     newGraphView(inverse),
		cache:    cache,
		validate: validate,
	}
	s.io = s.newRealtime()
	s.router = s.newRouter()

	s.logger.Debug("Server configured.", "addr", cfg.Addr, "cache_size", cfg.CacheSize, "keys", inverse.Len(), "entities", s.view.entities.Len())
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("🔎 Dependency server starting", "address", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("dependency server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.logger.Info("Shutting down dependency server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Dependency server shutdown failed", "error", err)
			return fmt.Errorf("dependency server shutdown failed: %w", err)
		}
		s.logger.Debug("Dependency server shut down gracefully.")
		return nil
	})

	return g.Wait()
}

// query resolves target against the loaded graph, consulting the cache first.
func (s *Server) query(target string, mode Mode, transport string) (Response, error) {
	normalized, err := normalizeTarget(target, mode)
	if err != nil {
		return Response{}, err
	}

	key := string(mode) + ":" + normalized
	if cached, ok := s.cache.Get(key); ok {
		queriesTotal.WithLabelValues(string(mode), transport, cacheHit).Inc()
		return cached.clone(), nil
	}

	resp := s.view.evaluate(normalized, mode)
	s.cache.Add(key, resp.clone())
	queriesTotal.WithLabelValues(string(mode), transport, cacheMiss).Inc()
	return resp, nil
}
