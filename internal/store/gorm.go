package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the persisted row for one key.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormStore is a KeyValue backed by a relational database through GORM.
// Writes upsert the row, so concurrent writers resolve last-write-wins.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore returns a GormStore on the given DB handle. The schema is
// migrated by database.Connect.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get implements KeyValue.
func (s *GormStore) Get(ctx context.Context, key string, dest any) error {
	var entry KVEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(entry.Value, dest)
}

// Set implements KeyValue.
func (s *GormStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := KVEntry{Key: key, Value: raw}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// Delete implements KeyValue.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
}
