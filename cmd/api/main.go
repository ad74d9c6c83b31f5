package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"remodelsite/internal/config"
	"remodelsite/internal/database"
	"remodelsite/internal/pkg/logger"
	"remodelsite/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(os.Getenv("APP_ENV")).WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.AppEnv)

	var db *gorm.DB
	if cfg.FormsBackend == config.BackendLocal {
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("failed to open database")
		}
	}

	r, err := server.New(cfg, db, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build server")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"env":     cfg.AppEnv,
			"forms":   cfg.FormsBackend,
			"storage": cfg.StorageBackend,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
