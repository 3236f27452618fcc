package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	"github.com/BruksfildServices01/barbershop-appointments/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-appointments/internal/db"
	"github.com/BruksfildServices01/barbershop-appointments/internal/events"
	"github.com/BruksfildServices01/barbershop-appointments/internal/middleware"
	"github.com/BruksfildServices01/barbershop-appointments/internal/routes"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := middleware.NewLogger(os.Stdout, cfg.Log.Level, cfg.IsProduction())
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	sinks := []audit.Sink{audit.New(db)}

	publisher, err := events.Connect(ctx, cfg.Events, logger)
	if err != nil {
		return err
	}
	if publisher != nil {
		defer publisher.Close()
		sinks = append(sinks, publisher)
		logger.Info("publishing appointment events", slog.String("driver", cfg.Events.Driver))
	}

	dispatcher := audit.NewDispatcher(logger, sinks...)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(r, db, cfg, dispatcher)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("addr", cfg.Addr()), slog.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.Any("error", err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("audit events not flushed", slog.Any("error", err))
	}
	return nil
}
