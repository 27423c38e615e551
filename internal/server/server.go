// Package server assembles the HTTP surface: router, middleware, handlers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/api/middleware"
	"github.com/navfs/navigator/internal/config"
	"github.com/navfs/navigator/internal/dispatch"
	httpapi "github.com/navfs/navigator/internal/http"
	"github.com/navfs/navigator/internal/logging"
	"github.com/navfs/navigator/internal/monitoring"
	"github.com/navfs/navigator/internal/watch"
	"github.com/navfs/navigator/internal/ws"
)

// Version is the service version reported by the status endpoint.
const Version = "1.0.0"

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	sessions *dispatch.Manager
	monitors *watch.Manager
	httpSrv  *http.Server
}

// New creates a server from configuration.
func New(cfg *config.Config, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDefault()
	}

	sessions := dispatch.NewManager(cfg.Dispatch.Root, logger.Logger)
	monitors := watch.NewManager(cfg.Watch.MaxMonitors, logger.Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}

	handlers := httpapi.NewHandlers(sessions, monitors, Version)
	wsHandler := ws.NewHandler(monitors, logger.Logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/commands", handlers.ListCommands)
	router.POST("/commands/execute", handlers.Execute)
	router.GET("/watch", wsHandler.HandleWatch)
	router.GET("/metrics", monitoring.Handler())

	return &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		monitors: monitors,
		httpSrv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 0, // websocket streams stay open
		},
	}
}

// Run starts serving and blocks until the listener fails or is shut down.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.Addr()))
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains connections and stops every live monitor.
func (s *Server) Shutdown(ctx context.Context) error {
	s.monitors.CloseAll()
	return s.httpSrv.Shutdown(ctx)
}
