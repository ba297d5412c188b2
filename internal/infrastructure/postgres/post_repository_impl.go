package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
	"github.com/oksasatya/go-social-api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Post, error) {
	posts := make([]*entity.Post, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, author_id, caption, image_url, created_at
		FROM posts
		WHERE id::text = ANY($1)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p := &entity.Post{}
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Caption, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
