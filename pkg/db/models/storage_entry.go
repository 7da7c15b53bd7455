package models

import "time"

// StorageEntry is one durable key/value pair, the SQL rendition of a
// local-storage slot.
type StorageEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table created by the storage migration.
func (StorageEntry) TableName() string {
	return "storage_entries"
}
