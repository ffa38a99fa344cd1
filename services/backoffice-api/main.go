package main

import (
	"os"

	"github.com/ashendes/jewelry-admin/internal/backoffice"
	"github.com/ashendes/jewelry-admin/internal/config"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg, err := config.LoadBackoffice(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal("Failed to configure logging: ", err)
	}

	store := backoffice.NewStore()
	if cfg.Seed {
		if err := backoffice.Seed(store); err != nil {
			log.Fatal("Failed to seed data: ", err)
		}
		log.Info("Sample jewelry data loaded")
	}

	// 30% of requests fail while chaos mode is on
	router, err := backoffice.NewRouter(store, backoffice.NewChaos(0.3))
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	log.WithField("address", cfg.Address).Info("Back Office API starting")
	if err := router.Run(cfg.Address); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
