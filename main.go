package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"newsroom/config"
	"newsroom/di"
	"newsroom/job"
	"newsroom/rest"
	"newsroom/utils/logger"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLoggerWithLevel(cfg.Logging.Level)
	log.Info("starting newsroom", "port", cfg.Server.Port)

	container := di.NewApplicationComponents(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := job.NewScheduler()
	if cfg.Collect.Interval > 0 {
		log.Info("scheduled collection enabled", "interval", cfg.Collect.Interval)
		scheduler.Add(job.NewCollectJob(container.CollectNewsUsecase, cfg.Collect.Interval))
	}
	scheduler.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout
	rest.RegisterRoutes(e, container, cfg)

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	scheduler.Shutdown()
	log.Info("stopped")
}
