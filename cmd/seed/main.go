package main

import (
	"context"
	"log"
	"time"

	"seedble/internal/app"
	"seedble/internal/config"
	"seedble/internal/database/migration"
	"seedble/internal/database/seeder"
)

// Applies pending migrations, then seeds the default skill catalog and
// knowledge circles. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	container, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Printf("close error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(ctx, container.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	seeds := seeder.Runner{Seeders: seeder.Defaults()}
	if err := seeds.Run(ctx, container.DB); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("migrations and seeds applied")
}
