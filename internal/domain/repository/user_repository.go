package repository

import (
	"context"

	"github.com/journalkeeper/api/internal/domain/entity"
)

// UserRepository defines the persistence operations for User resources.
// Create assigns the sequential id. Implementations must map
// unique-constraint violations to ErrDuplicateUsername / ErrDuplicateEmail so
// check-then-insert races still surface as duplicates.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
