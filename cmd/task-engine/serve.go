package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/task-engine/api/v1"
	"github.com/kubev2v/task-engine/internal/config"
	"github.com/kubev2v/task-engine/internal/handlers"
	"github.com/kubev2v/task-engine/internal/metrics"
	"github.com/kubev2v/task-engine/internal/server"
	"github.com/kubev2v/task-engine/internal/services"
	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

const (
	metricsNamespace = "task_engine"
	shutdownTimeout  = 10 * time.Second
)

func newServeCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the task pool over HTTP",
		Long: `Expose the task pool over HTTP.

The pool is started once at startup. With the cooperative model the scheduler
keeps running and picks up every task submitted later. With the parallel model
workers exit as soon as the queue is empty, so a pool started on an empty queue
idles immediately: submit tasks, then call POST /api/v1/pool/run to start the
workers. Calling it on a running pool is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("task_engine")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry, metricsNamespace)

	pool, err := newPool(cfg, taskmanager.WithHooks(m.Hooks()))
	if err != nil {
		return err
	}
	if err := m.WatchQueue(registry, pool.Len); err != nil {
		return err
	}

	taskSrv := services.NewTaskService(pool, cfg.Server.TaskHistory)
	h := handlers.New(taskSrv)

	srv, err := server.NewServer(cfg, registry, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}

	taskSrv.Run()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutdown requested")
	case err = <-errCh:
		if err != nil {
			log.Errorw("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if stopErr := srv.Stop(shutdownCtx); stopErr != nil && !errors.Is(stopErr, context.DeadlineExceeded) {
		log.Errorw("failed to stop server", "error", stopErr)
	}

	taskSrv.Terminate()
	log.Infow("task engine stopped", "status", taskSrv.Status())

	return err
}
