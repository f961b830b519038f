package store

import (
	"context"
	"errors"

	"hopeplates/internal/domain"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
)

// Store persists the whole HopePlates document.
// Load and Save always operate on the full state; there are no partial writes.
type Store interface {
	// Load returns the current document, or an empty one if nothing was saved yet.
	Load(ctx context.Context) (*domain.State, error)

	// Save replaces the stored document with state.
	Save(ctx context.Context, state *domain.State) error
}
