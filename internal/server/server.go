package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/market"
	"StockAnalyzer/internal/web"
)

const shutdownTimeout = 10 * time.Second

// Options wires the server to the rest of the application.
type Options struct {
	Config    *config.Config
	Collector *collector.Collector
	Session   *market.Session
	Version   string
	// Now is the clock used for market status; defaults to time.Now.
	Now func() time.Time
}

// Server is the HTTP front end: the embedded dashboard, the JSON API and the
// WebSocket channel.
type Server struct {
	cfg      *config.Config
	col      *collector.Collector
	session  *market.Session
	now      func() time.Time
	sem      *semaphore.Weighted
	engine   *gin.Engine
	api      huma.API
	upgrader websocket.Upgrader
}

// New builds the router and registers every route.
func New(opts Options) *Server {
	if opts.Config.Log.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.Session == nil {
		opts.Session = market.NSE()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		cfg:     opts.Config,
		col:     opts.Collector,
		session: opts.Session,
		now:     opts.Now,
	}
	if n := opts.Config.Limits.MaxConcurrentRequests; n > 0 {
		s.sem = semaphore.NewWeighted(int64(n))
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware, ZerologMiddleware())
	if s.cfg.Server.EnableCORS {
		r.Use(CORS(s.cfg.Server.AllowedOrigins))
	}
	if s.cfg.Limits.RateLimitEnabled {
		r.Use(RateLimiter(s.cfg.Limits.RateLimitRPS, s.cfg.Limits.RateLimitBurst))
	}
	if s.cfg.Server.EnableXSRFProtection {
		r.Use(XSRF())
	}

	hcfg := huma.DefaultConfig("StockAnalyzer API", opts.Version)
	hcfg.Info.Description = "Technical analysis of daily stock prices."
	s.api = humagin.New(r, hcfg)
	s.engine = r

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index())
	})
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/ws", s.serveWS)
	s.engine.NoRoute(func(c *gin.Context) {
		abortProblem(c, http.StatusNotFound, "Route not found")
	})

	registerAnalysis(s.api, s)
	registerExport(s.api, s)
	registerMeta(s.api, s)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Listen binds the configured address.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.cfg.Addr())
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
