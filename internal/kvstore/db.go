package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVBlob is the GORM model backing DBStore. One row per (app_id, key).
type KVBlob struct {
	ID        uint           `gorm:"primaryKey"`
	AppID     string         `gorm:"size:50;not null;uniqueIndex:idx_kv_app_key"`
	Key       string         `gorm:"size:100;not null;uniqueIndex:idx_kv_app_key"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
	CreatedAt time.Time
}

func (KVBlob) TableName() string {
	return "kv_blobs"
}

// DBStore persists blobs in PostgreSQL.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Get(appID, key string, dest interface{}) (bool, error) {
	var blob KVBlob
	err := s.db.Where("app_id = ? AND key = ?", appID, key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load blob %s/%s: %w", appID, key, err)
	}

	if err := json.Unmarshal(blob.Value, dest); err != nil {
		// Corrupt payloads are treated as absent so callers fall back to
		// their zero state instead of failing the request.
		slog.Warn("discarding unreadable blob", "app_id", appID, "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *DBStore) Set(appID, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal blob %s/%s: %w", appID, key, err)
	}

	blob := KVBlob{
		AppID: appID,
		Key:   key,
		Value: datatypes.JSON(payload),
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

func (s *DBStore) Delete(appID, key string) error {
	return s.db.Where("app_id = ? AND key = ?", appID, key).Delete(&KVBlob{}).Error
}
