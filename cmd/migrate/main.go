package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"

	"github.com/taskana/taskana/infrastructure/config"
	"github.com/taskana/taskana/infrastructure/persistence/postgres"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *down {
		if err := postgres.MigrateDown(db); err != nil {
			log.Fatalf("Migration rollback failed: %v", err)
		}
		log.Println("Rolled back one migration")
		return
	}

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
