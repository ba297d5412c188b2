package repository

import (
	"context"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
)

// PostRepository is the read-only view into the content subsystem used to
// resolve post ids on profiles.
type PostRepository interface {
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Post, error)
}
