package repository

import (
	"context"

	"github.com/journalkeeper/api/internal/domain/entity"
)

// EntryRepository defines the persistence operations for Entry resources.
// Reads and deletes are owner-scoped: an entry that exists but belongs to a
// different user behaves exactly like one that doesn't exist.
type EntryRepository interface {
	Create(ctx context.Context, e *entity.Entry) error
	GetByIDAndOwner(ctx context.Context, id, userID int64) (*entity.Entry, error)
	ListByOwner(ctx context.Context, userID int64) ([]*entity.Entry, error)
	Update(ctx context.Context, e *entity.Entry) error
	DeleteByIDAndOwner(ctx context.Context, id, userID int64) error
}
