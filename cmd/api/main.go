package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"it-helpdesk/internal"
	"it-helpdesk/internal/config"
	"it-helpdesk/internal/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load and validate configuration
	cfg, err := config.LoadAndValidate()
	if err != nil {
		logrus.WithError(err).Fatal("Configuration error")
	}

	log := logging.New(cfg.LogLevel)

	srv, err := internal.NewServer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create server")
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
		srv.Close(shutdownCtx)
	}()

	log.WithFields(logrus.Fields{
		"addr":       cfg.Addr(),
		"schema":     srv.Schema.Name,
		"fields":     len(srv.Schema.Fields),
		"metrics":    cfg.EnableMetrics,
		"max_upload": cfg.MaxUploadBytes,
	}).Info("Starting IT help desk server")

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Server error")
	}
	<-shutdownDone
}
