package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"ergasia-marketplace/config"
	"ergasia-marketplace/internal/database/migration"
	"ergasia-marketplace/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	applied, err := migration.NewRunner(cfg.MigrationsDir).Run(ctx, db)
	if err != nil {
		logger.Log.Error("Migration failed", "dir", cfg.MigrationsDir, "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Migrations complete", "applied", applied)
}
