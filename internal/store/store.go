// Package store provides durable SQLite-backed persistence for notes.
package store

import (
	"context"

	"github.com/starford/quicknote/internal/models"
)

// Store is the persistence contract for notes.
// Every operation is atomic at single-row granularity.
type Store interface {
	// Insert persists n and returns it with its assigned id.
	Insert(ctx context.Context, n models.Note) (models.Note, error)
	// Update overwrites the row matching n.ID; apperr.ErrNotFound if absent.
	Update(ctx context.Context, n models.Note) error
	// Delete removes the given ids. Unknown ids are ignored.
	Delete(ctx context.Context, ids ...int64) error
	// GetAll returns every note in insertion order.
	GetAll(ctx context.Context) ([]models.Note, error)
	// GetByID returns the note with id; apperr.ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (models.Note, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
