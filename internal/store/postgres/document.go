package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hopeplates/internal/domain"
	"hopeplates/internal/store"
)

// documentID is the primary key of the single state row.
const documentID = 1

const createDocumentTable = `
	CREATE TABLE IF NOT EXISTS hopeplates_state (
		id         INTEGER PRIMARY KEY,
		document   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// DocumentStore is a PostgreSQL implementation of store.Store that keeps the
// whole state as one JSONB row.
type DocumentStore struct {
	q Querier
}

// NewDocumentStore creates a new PostgreSQL document store.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{q: db}
}

// Migrate creates the state table if it does not exist.
func (s *DocumentStore) Migrate(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, createDocumentTable); err != nil {
		return fmt.Errorf("failed to create state table: %w", err)
	}
	return nil
}

// Load reads the state row. A missing row yields an empty state.
func (s *DocumentStore) Load(ctx context.Context) (*domain.State, error) {
	query := `SELECT document FROM hopeplates_state WHERE id = $1`

	var raw []byte
	err := s.q.QueryRowContext(ctx, query, documentID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewState(), nil
		}
		return nil, err
	}

	state := domain.NewState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("failed to decode state document: %w", err)
	}
	state.Normalize()
	return state, nil
}

// Save upserts the state row.
func (s *DocumentStore) Save(ctx context.Context, state *domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	query := `
		INSERT INTO hopeplates_state (id, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`
	_, err = s.q.ExecContext(ctx, query, documentID, raw)
	return err
}

// Ensure DocumentStore implements store.Store.
var _ store.Store = (*DocumentStore)(nil)
