package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
	"github.com/oksasatya/go-social-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, email, password_hash, username, full_name, avatar_url,
	followers, following, post_ids, created_at, updated_at
`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Username, &u.FullName,
		&u.AvatarURL, &u.Followers, &u.Following, &u.PostIDs,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// notNull keeps empty sets as '{}' instead of NULL in the array columns.
func notNull(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, username, full_name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Username, u.FullName, u.AvatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, username = $3, full_name = $4,
		    avatar_url = $5, updated_at = $6
		WHERE id = $7
	`, u.Email, u.Password, u.Username, u.FullName, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Upsert(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, username, full_name, avatar_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username, full_name = EXCLUDED.full_name,
		    avatar_url = EXCLUDED.avatar_url, updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`, u.ID, u.Email, u.Password, u.Username, u.FullName, u.AvatarURL, u.UpdatedAt)

	return row.Scan(&u.CreatedAt)
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) ListExcluding(ctx context.Context, ids []string) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE NOT (id::text = ANY($1))
		ORDER BY created_at DESC
	`, notNull(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// SaveFollowEdge writes caller.Following and target.Followers in one
// transaction, so a half-applied toggle never becomes visible.
func (r *UserRepository) SaveFollowEdge(ctx context.Context, caller, target *entity.User) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	if err := saveFollowSets(ctx, tx, caller.ID, caller.Followers, caller.Following, now); err != nil {
		return err
	}
	if err := saveFollowSets(ctx, tx, target.ID, target.Followers, target.Following, now); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	caller.UpdatedAt = now
	target.UpdatedAt = now
	return nil
}

func saveFollowSets(ctx context.Context, tx pgx.Tx, id string, followers, following []string, now time.Time) error {
	res, err := tx.Exec(ctx, `
		UPDATE users
		SET followers = $1, following = $2, updated_at = $3
		WHERE id = $4
	`, notNull(followers), notNull(following), now, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
