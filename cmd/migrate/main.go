package main

// Run database migrations:
//   go run ./cmd/migrate            apply pending migrations
//   go run ./cmd/migrate -status    print migration state
//   go run ./cmd/migrate -seed      also store MASTER_PASSWORD in the credentials table

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"resumegen/internal/credentials"
	"resumegen/internal/shared/config"
	"resumegen/internal/shared/storage/db"
)

func main() {
	status := flag.Bool("status", false, "print migration status and exit")
	seed := flag.Bool("seed", false, "copy MASTER_PASSWORD from the environment into the credentials table")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *status {
		if err := db.MigrationStatus(ctx, sqlDB); err != nil {
			log.Printf("failed to read migration status: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	if *seed {
		password := strings.TrimSpace(os.Getenv(credentials.MasterPasswordKey))
		if password == "" {
			log.Printf("-seed requires %s", credentials.MasterPasswordKey)
			os.Exit(1)
		}
		store := &credentials.PGStore{DB: sqlDB}
		if err := store.Put(ctx, credentials.MasterPasswordKey, password); err != nil {
			log.Printf("failed to seed credentials: %v", err)
			os.Exit(1)
		}
		log.Printf("stored %s in credentials table", credentials.MasterPasswordKey)
	}
}
