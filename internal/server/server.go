package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kubev2v/task-engine/internal/config"
)

const (
	apiPrefix       = "/api/v1"
	readHeaderLimit = 10 * time.Second
)

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

// NewServer builds the gin engine. registerHandlerFn receives the /api/v1
// group. gatherer backs GET /metrics; a nil gatherer disables the endpoint.
func NewServer(cfg *config.Configuration, gatherer prometheus.Gatherer, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server configuration is required")
	}

	if cfg.Server.ServerMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger := zap.L().Named("http")

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	router := engine.Group(apiPrefix)
	registerHandlerFn(router)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: readHeaderLimit,
		},
	}, nil
}

// Start blocks until the server stops. A graceful Stop makes it return nil.
func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	zap.S().Named("http").Infow("server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("http").Infow("stopping server")
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
