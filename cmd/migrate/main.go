package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-restaurant-api/internal/platform/postgres"
)

// migrate applies the restaurant schema once and exits, for deploys that keep DDL out of the API process.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup, err := platformpostgres.ConnectFromEnv(ctx, logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set; nothing to migrate")
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate restaurant schema: %v", err)
	}
	log.Printf("restaurant schema migrated")
}
