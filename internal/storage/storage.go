// Package storage implements the local persistence boundary: a key-value
// store holding serialized state snapshots, backed by a SQLite database.
package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Snapshot is one persisted key-value entry.
type Snapshot struct {
	Key       string    `gorm:"primaryKey"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Snapshots is a SQLite-backed snapshot store.
type Snapshots struct {
	db *gorm.DB
}

// Open opens (or creates) the snapshot database at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Snapshots, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot database: %w", err)
	}

	return &Snapshots{db: db}, nil
}

// Load returns the snapshot stored under key. The second return value is
// false when no snapshot exists yet.
func (s *Snapshots) Load(key string) ([]byte, bool, error) {
	var snap Snapshot
	if err := s.db.First(&snap, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return snap.Data, true, nil
}

// Save upserts the snapshot stored under key.
func (s *Snapshots) Save(key string, data []byte) error {
	snap := Snapshot{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Snapshots) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
