package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/ada/backend/internal/models"
)

// SQLStore keeps documents in the kv_records table
type SQLStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps a migrated gorm connection
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	var rec models.KVRecord
	err := s.db.WithContext(ctx).Where("record_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if rec.ExpiresAt != nil && !s.now().Before(*rec.ExpiresAt) {
		return false, nil
	}
	if err := decode(key, []byte(rec.Value), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value any) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

func (s *SQLStore) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	rec, err := s.record(key, value, ttl)
	if err != nil {
		return err
	}
	if err := upsert(s.db.WithContext(ctx), rec); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) SetMany(ctx context.Context, values map[string]any) error {
	records := make([]*models.KVRecord, 0, len(values))
	for key, value := range values {
		rec, err := s.record(key, value, 0)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := upsert(tx, rec); err != nil {
				return fmt.Errorf("failed to save %s: %w", rec.Key, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("record_key IN ?", keys).Delete(&models.KVRecord{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) record(key string, value any, ttl time.Duration) (*models.KVRecord, error) {
	data, err := encode(key, value)
	if err != nil {
		return nil, err
	}
	rec := &models.KVRecord{Key: key, Value: string(data), UpdatedAt: s.now()}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		rec.ExpiresAt = &expires
	}
	return rec, nil
}

func upsert(db *gorm.DB, rec *models.KVRecord) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(rec).Error
}
