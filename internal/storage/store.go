// Package storage persists JSON documents under string keys: one shared
// account list, one marker per login session and a profile, plan and weight
// history per account.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Key layout
const (
	UsersKey               = "diet_app_users"
	SessionNamespace       = "diet_app_session"
	ProfileNamespace       = "diet_app_profile"
	PlanNamespace          = "diet_app_plan"
	WeightHistoryNamespace = "diet_app_weight_history"
)

// ErrCorruptRecord is returned when a stored value cannot be decoded
var ErrCorruptRecord = errors.New("corrupt stored record")

// Store is a last-write-wins key-value store of JSON documents.
//
// SetMany and Remove with several keys are applied atomically by every
// implementation.
type Store interface {
	// Get decodes the value stored under key into dst. It reports false when
	// the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// SetWithTTL stores a value that disappears after ttl
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error
	SetMany(ctx context.Context, values map[string]any) error
	Remove(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// Key builds the per-account key of a namespace
func Key(namespace, email string) string {
	return namespace + "_" + email
}

// AccountKeys returns every per-account key owned by email
func AccountKeys(email string) []string {
	return []string{
		Key(ProfileNamespace, email),
		Key(PlanNamespace, email),
		Key(WeightHistoryNamespace, email),
	}
}

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return nil
}
