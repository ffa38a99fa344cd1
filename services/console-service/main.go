package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashendes/jewelry-admin/internal/apiclient"
	"github.com/ashendes/jewelry-admin/internal/cache"
	"github.com/ashendes/jewelry-admin/internal/config"
	"github.com/ashendes/jewelry-admin/internal/console"
	"github.com/ashendes/jewelry-admin/internal/notify"
	"github.com/ashendes/jewelry-admin/internal/patterns"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg, err := config.LoadConsole(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal("Failed to configure logging: ", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := apiclient.New(apiclient.Config{
		BaseURL:        cfg.APIURL,
		Timeout:        cfg.APITimeout,
		MaxConcurrency: cfg.MaxConcurrency,
		Token:          cfg.APIToken,
		Breaker:        patterns.DefaultBreakerSettings,
		Logger:         log.WithField("component", "apiclient"),
	})

	queries := cache.New(cache.WithStaleTime(cfg.CacheStaleTime), cache.WithGCTime(cfg.CacheGCTime))
	snapshots, stopWatching := queries.Subscribe(64)
	go watchCache(snapshots)
	go queries.RunGC(ctx, time.Minute)

	router, err := console.New(console.Deps{
		Client:   client,
		Cache:    queries,
		Notifier: notify.NewLogNotifier(log.WithField("component", "notify")),
	}).Router()
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	srv := &http.Server{Addr: cfg.Address, Handler: router}
	go func() {
		log.WithFields(log.Fields{
			"address": cfg.Address,
			"api_url": cfg.APIURL,
			"timeout": cfg.APITimeout.String(),
		}).Info("Console Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down Console Service")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Console Service forced to shut down")
	}
	stopWatching()
	log.Info("Console Service stopped")
}

// watchCache logs every cache state change at debug level
func watchCache(snapshots <-chan cache.Snapshot) {
	for s := range snapshots {
		entry := log.WithFields(log.Fields{
			"key":      s.Key.String(),
			"state":    s.State.String(),
			"fetching": s.Fetching,
		})
		if s.Err != nil {
			entry = entry.WithError(s.Err)
		}
		entry.Debug("Cache snapshot")
	}
}
