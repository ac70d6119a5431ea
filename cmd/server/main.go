package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Lakshya5071/criminal-record-service/internal/auth"
	"github.com/Lakshya5071/criminal-record-service/internal/cache"
	"github.com/Lakshya5071/criminal-record-service/internal/config"
	"github.com/Lakshya5071/criminal-record-service/internal/database"
	"github.com/Lakshya5071/criminal-record-service/internal/server"
	"github.com/Lakshya5071/criminal-record-service/pkg/logger"
)

func main() {
	var migrate bool
	var issueToken bool
	flag.BoolVar(&migrate, "migrate", false, "Run database migrations and exit")
	flag.BoolVar(&issueToken, "issue-token", false, "Issue a new admin token and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}

	if migrate {
		log.Info("Database migrations completed successfully")
		return
	}

	if issueToken {
		token, err := auth.NewVerifier(db, log).Issue()
		if err != nil {
			log.Fatal("Failed to issue admin token", "error", err)
		}
		fmt.Println(token)
		return
	}

	cacheService := cache.NewCache(cfg.CacheSize, cfg.CacheTTL)

	srv := server.New(cfg, db, cacheService, log)

	log.Info("Starting criminal record service",
		"host", cfg.Host,
		"port", cfg.Port,
		"driver", cfg.DatabaseDriver,
	)

	if err := srv.Run(); err != nil {
		log.Fatal("Server failed to start", "error", err)
	}
}
