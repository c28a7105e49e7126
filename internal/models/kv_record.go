package models

import "time"

// KVRecord is a row of the SQL storage backend
type KVRecord struct {
	Key       string     `gorm:"primaryKey;column:record_key;size:320" json:"key"`
	Value     string     `gorm:"type:text;not null" json:"value"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for KVRecord
func (KVRecord) TableName() string {
	return "kv_records"
}
