package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ada/backend/config"
	"github.com/pageza/ada/backend/internal/models"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		StorageBackend: config.StorageSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "ada.db"),
	}

	db, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	assert.True(t, db.Migrator().HasTable(&models.KVRecord{}))
}

func TestNewRejectsNonSQLBackend(t *testing.T) {
	db, err := New(&config.Config{StorageBackend: config.StorageRedis})
	assert.Error(t, err)
	assert.Nil(t, db)
}
