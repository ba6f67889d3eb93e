package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Kalefullycode/roots-tech-news-sub000/config"
	"github.com/Kalefullycode/roots-tech-news-sub000/di"
	"github.com/Kalefullycode/roots-tech-news-sub000/job"
	"github.com/Kalefullycode/roots-tech-news-sub000/rest"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

func main() {
	// Docker healthcheck for the distroless image.
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLoggerWithOptions(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting server", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	container, err := di.NewApplicationComponents(ctx, cfg)
	if err != nil {
		log.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	scheduler := job.NewJobScheduler()
	if cfg.Job.CacheWarmEnabled {
		scheduler.Add(job.CacheWarmJob(container.AggregateFeedsUsecase, cfg.Job.CacheWarmInterval, cfg.Job.CacheWarmTimeout))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout
	rest.RegisterRoutes(e, container, cfg)

	address := fmt.Sprintf(":%d", cfg.Server.Port)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start(gCtx)
		<-gCtx.Done()
		scheduler.Shutdown()
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	waitErr := g.Wait()
	if err := container.Close(); err != nil {
		log.Error("failed to release resources", "error", err)
	}
	if waitErr != nil && !errors.Is(waitErr, http.ErrServerClosed) {
		log.Error("shutdown error", "error", waitErr)
		os.Exit(1)
	}

	log.Info("server exited properly")
}

func runHealthcheck() error {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8788"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
