package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/config"
	"github.com/umalmyha/fieldops/internal/infra"
	"github.com/umalmyha/fieldops/internal/seed"
	"github.com/umalmyha/fieldops/internal/store"
	"github.com/umalmyha/fieldops/internal/validation"
)

func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf("failed to build config - %v", err)
	}

	log, err := infra.Logger(cfg.LogCfg)
	if err != nil {
		logrus.Fatalf("failed to build logger - %v", err)
	}

	v, err := validation.New()
	if err != nil {
		log.Fatalf("failed to build validator - %v", err)
	}

	s := store.New(store.WithLogger(log), store.WithValidator(v))
	s.Subscribe(bus.All, func() {
		log.WithField("version", s.Version(bus.All)).Debug("store data changed")
	})

	if cfg.SeedCfg.File != "" {
		sum, err := seed.LoadFile(s, cfg.SeedCfg.File)
		if err != nil {
			log.Fatalf("failed to seed store - %v", err)
		}
		log.WithFields(logrus.Fields{
			"team":          sum.Team,
			"customers":     sum.Customers,
			"jobs":          sum.Jobs,
			"invoices":      sum.Invoices,
			"notifications": sum.Notifications,
		}).Info("store seeded")
	}

	start(cfg.HttpCfg, infra.Router(s, v, log), log)
}

func start(cfg config.HttpCfg, app *echo.Echo, log logrus.FieldLogger) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			log.Fatalf("failed to stop server gracefully - %s", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("shutting down the server, unexpected error occurred - %s", err)
		}
	}
}
