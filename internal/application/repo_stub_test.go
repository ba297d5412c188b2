package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
	"github.com/oksasatya/go-social-api/internal/domain/repository"
)

// memRepo is an in-memory UserRepository for service tests. It hands out
// copies, like a real store would, so services never share state through
// aliased slices.
type memRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*entity.User{}}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Followers = append([]string(nil), u.Followers...)
	c.Following = append([]string(nil), u.Following...)
	c.PostIDs = append([]string(nil), u.PostIDs...)
	return &c
}

func (r *memRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memRepo) Upsert(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *memRepo) ListExcluding(_ context.Context, ids []string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := map[string]bool{}
	for _, id := range ids {
		excluded[id] = true
	}
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		if !excluded[u.ID] {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *memRepo) SaveFollowEdge(_ context.Context, caller, target *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range []*entity.User{caller, target} {
		stored, ok := r.users[u.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.Followers = append([]string(nil), u.Followers...)
		stored.Following = append([]string(nil), u.Following...)
		stored.UpdatedAt = time.Now()
	}
	return nil
}

var _ repository.UserRepository = (*memRepo)(nil)

// memPosts is an in-memory PostRepository.
type memPosts struct {
	posts map[string]*entity.Post
}

func newMemPosts(posts ...*entity.Post) *memPosts {
	m := &memPosts{posts: map[string]*entity.Post{}}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (r *memPosts) ListByIDs(_ context.Context, ids []string) ([]*entity.Post, error) {
	out := make([]*entity.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ repository.PostRepository = (*memPosts)(nil)

// seedUser inserts a user directly, bypassing registration.
func seedUser(r *memRepo, email, username string) *entity.User {
	u := &entity.User{Email: email, Username: username, Password: "x"}
	_ = r.Create(context.Background(), u)
	return u
}
