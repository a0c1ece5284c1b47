package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/gurkanbulca/choreboard/internal/config"
	"github.com/gurkanbulca/choreboard/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Store.Driver != config.StoreSQLite && cfg.Store.Driver != config.StorePostgres {
		log.Fatalf("STORE_DRIVER is %q; migrations only apply to %s and %s",
			cfg.Store.Driver, config.StoreSQLite, config.StorePostgres)
	}

	ctx := context.Background()

	// Connect to database
	db, err := database.Open(ctx, database.Config{
		Driver: cfg.Store.Driver,
		DSN:    cfg.DatabaseDSN(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	log.Printf("Running %s migrations...", cfg.Store.Driver)
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}
