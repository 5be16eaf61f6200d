// Package server provides the HTTP server for the task engine.
//
// The server uses the Gin web framework with zap-based request logging and
// panic recovery. It hosts the versioned API, a health probe and the
// Prometheus scrape endpoint.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	│                         :HTTPPort                             │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.Ginzap (request logging, "http" logger)         │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery with stack)     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  /health          → {"status": "ok"}                          │
//	│  /metrics         → promhttp (registry passed to NewServer)   │
//	│  /api/v1/...      → handlers (registered via callback)        │
//	│  anything else    → 404 {"error": "not found"}                │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"):
//   - Gin runs in debug mode (route table printed at startup)
//
// Production Mode (ServerMode = "prod"):
//   - Gin runs in release mode
//
// # Server Lifecycle
//
// Creation:
//
//	srv, err := server.NewServer(cfg, registry, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//
// The callback receives a RouterGroup prefixed with /api/v1.
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start(ctx)
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Performs graceful shutdown, waiting for in-flight requests to complete.
// Start returns nil after a graceful stop.
//
// # Usage Example
//
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        zap.S().Errorw("server error", "error", err)
//	    }
//	}()
//
//	<-ctx.Done()
//	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	srv.Stop(shutdownCtx)
package server
