package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/pageza/ada/backend/config"
	"github.com/pageza/ada/backend/internal/database"
	"github.com/pageza/ada/backend/internal/models"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Drop the storage table")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get database handle: %v", err)
	}
	defer sqlDB.Close()

	if *rollback {
		if err := db.Migrator().DropTable(&models.KVRecord{}); err != nil {
			log.Fatalf("failed to drop kv_records: %v", err)
		}
		fmt.Println("Successfully dropped kv_records")
		return
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	fmt.Println("All migrations applied successfully.")
}
