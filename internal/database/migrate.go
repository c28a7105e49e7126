package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/ada/backend/internal/models"
)

// RunMigrations creates or updates the storage table
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running auto-migration on %s", db.Dialector.Name())
	if err := db.AutoMigrate(&models.KVRecord{}); err != nil {
		return fmt.Errorf("failed to migrate kv_records: %w", err)
	}
	return nil
}
