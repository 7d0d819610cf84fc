// File: internal/storage/gorm_kv.go
package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one persisted key/value pair.
type Record struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

// TableName keeps the table name stable regardless of gorm pluralization.
func (Record) TableName() string { return "kv_records" }

type gormKV struct {
	db *gorm.DB
}

// NewGormKV returns a KV backed by the given gorm database. The caller is
// responsible for migrating the Record model.
func NewGormKV(db *gorm.DB) KV {
	return &gormKV{db: db}
}

func (s *gormKV) Read(key string) (string, bool, error) {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (s *gormKV) Write(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Record{Key: key, Value: value}).Error
}
