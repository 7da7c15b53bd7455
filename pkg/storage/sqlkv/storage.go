// Package sqlkv stores local-storage values in the storage_entries table.
package sqlkv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/organics-storefront/pkg/db/models"
	"github.com/angelmondragon/organics-storefront/pkg/storage"
)

// Storage is a storage.Storage backed by a GORM connection.
type Storage struct {
	db *gorm.DB
}

// New binds the backend to the provided DB handle.
func New(db *gorm.DB) (*Storage, error) {
	if db == nil {
		return nil, errors.New("db handle required")
	}
	return &Storage{db: db}, nil
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("load %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	entry := models.StorageEntry{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.StorageEntry{}).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
