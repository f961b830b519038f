package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hopeplates/internal/domain"
	"hopeplates/internal/store"
)

const documentID = 1

// stateDocument is the single row holding the serialized state.
type stateDocument struct {
	ID        uint `gorm:"primaryKey"`
	Document  datatypes.JSON
	UpdatedAt time.Time
}

func (stateDocument) TableName() string { return "hopeplates_state" }

// DocumentStore is an embedded SQLite implementation of store.Store.
type DocumentStore struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates it.
func Open(path string) (*DocumentStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm handle and migrates the state table.
func New(db *gorm.DB) (*DocumentStore, error) {
	if err := db.AutoMigrate(&stateDocument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state table: %w", err)
	}
	return &DocumentStore{db: db}, nil
}

// Load reads the state row. A missing row yields an empty state.
func (s *DocumentStore) Load(ctx context.Context) (*domain.State, error) {
	var doc stateDocument
	err := s.db.WithContext(ctx).First(&doc, documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewState(), nil
		}
		return nil, err
	}

	state := domain.NewState()
	if err := json.Unmarshal(doc.Document, state); err != nil {
		return nil, fmt.Errorf("failed to decode state document: %w", err)
	}
	state.Normalize()
	return state, nil
}

// Save replaces the state row.
func (s *DocumentStore) Save(ctx context.Context, state *domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	doc := stateDocument{ID: documentID, Document: datatypes.JSON(raw)}
	return s.db.WithContext(ctx).Save(&doc).Error
}

// Close releases the underlying connection pool.
func (s *DocumentStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ store.Store = (*DocumentStore)(nil)
