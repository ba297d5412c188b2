package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a referenced id or email resolves to nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by Create when the store's unique index on
	// email rejects the row. The index, not a lookup pre-check, is what makes
	// registration races safe.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// Upsert writes the profile fields of u, creating the row when id is absent.
	// Create-on-absence is deliberate: profile updates never fail on a missing row.
	Upsert(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	ListExcluding(ctx context.Context, ids []string) ([]*entity.User, error)
	// SaveFollowEdge persists caller.Following and target.Followers together.
	// Both writes are attempted as one unit; on failure neither side is kept and
	// the whole toggle is expected to be retried.
	SaveFollowEdge(ctx context.Context, caller, target *entity.User) error
}
