// One-shot purge of expired and revoked refresh tokens, suitable for cron.
// The API server runs the same purge periodically; this binary exists for
// deployments that prefer an external scheduler.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"homewidget/internal/config"
	"homewidget/internal/database"
	"homewidget/internal/modules/auth"
	"homewidget/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	sweeper := auth.NewSweeper(repository.NewRefreshTokenRepository(db), cfg.SweepInterval)
	deleted, err := sweeper.PurgeOnce(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("purged %d refresh tokens", deleted)
}
