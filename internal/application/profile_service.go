package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
	repo "github.com/oksasatya/go-social-api/internal/domain/repository"
	"github.com/oksasatya/go-social-api/pkg/helpers"
)

// ProfileService reads and updates profile data. It never touches the
// follower/following sets; those belong to FollowService alone.
type ProfileService struct {
	Repo      repo.UserRepository
	Posts     repo.PostRepository
	GCS       *storage.Client
	GCSBucket string
	Redis     *redis.Client
	Logger    *logrus.Logger
	Indexer   *UserIndexer
}

func NewProfileService(r repo.UserRepository, posts repo.PostRepository, gcs *storage.Client, gcsBucket string, rdb *redis.Client, logger *logrus.Logger, ix *UserIndexer) *ProfileService {
	return &ProfileService{
		Repo:      r,
		Posts:     posts,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Redis:     rdb,
		Logger:    logger,
		Indexer:   ix,
	}
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, callerID string) (*Profile, error) {
	u, err := s.getUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return newProfile(u), nil
}

// GetProfileByID returns one profile with its posts resolved to content summaries.
func (s *ProfileService) GetProfileByID(ctx context.Context, id string) (*ProfileDetail, error) {
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.resolvePosts(ctx, u.PostIDs)
	if err != nil {
		return nil, err
	}
	return &ProfileDetail{Profile: *newProfile(u), Posts: posts}, nil
}

// ListAllProfiles returns every profile with followers, following and posts
// resolved. Directory/browse view; pagination is out of scope.
func (s *ProfileService) ListAllProfiles(ctx context.Context) ([]DirectoryEntry, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]DirectoryEntry, 0, len(users))
	for _, u := range users {
		posts, err := s.resolvePosts(ctx, u.PostIDs)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DirectoryEntry{
			ID:        u.ID,
			Email:     u.Email,
			Username:  u.Username,
			FullName:  u.FullName,
			AvatarURL: u.AvatarURL,
			Followers: summarize(u.Followers, byID),
			Following: summarize(u.Following, byID),
			Posts:     posts,
			CreatedAt: u.CreatedAt,
		})
	}
	return entries, nil
}

// ListUnfollowedProfiles returns everyone the caller does not follow yet,
// excluding the caller, in the minimal suggestion shape.
func (s *ProfileService) ListUnfollowedProfiles(ctx context.Context, callerID string) ([]Suggestion, error) {
	caller, err := s.getUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// The caller is excluded explicitly; its own id is never in its Following.
	exclude := append(append([]string{}, caller.Following...), caller.ID)
	users, err := s.Repo.ListExcluding(ctx, exclude)
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(users))
	for _, u := range users {
		out = append(out, Suggestion{
			ID:        u.ID,
			Username:  u.Username,
			FullName:  u.FullName,
			AvatarURL: u.AvatarURL,
			Followers: idsOrEmpty(u.Followers),
		})
	}
	return out, nil
}

// UpdateProfileInput carries the patch. Nil means "not supplied"; a non-nil
// pointer is written verbatim, so an empty string overwrites a prior value.
type UpdateProfileInput struct {
	Username  *string
	FullName  *string
	AvatarURL *string
}

// UpdateProfile merges the supplied fields into the caller's record. A missing
// row is created with the supplied fields; create-on-absence is a deliberate
// upsert policy, not an error path.
func (s *ProfileService) UpdateProfile(ctx context.Context, callerID string, in UpdateProfileInput) (*Profile, error) {
	u, err := s.Repo.GetByID(ctx, callerID)
	if errors.Is(err, repo.ErrNotFound) {
		u = &entity.User{ID: callerID}
	} else if err != nil {
		return nil, err
	}

	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.AvatarURL != nil {
		u.AvatarURL = *in.AvatarURL
	}

	if err := s.Repo.Upsert(ctx, u); err != nil {
		return nil, err
	}

	s.refreshSession(ctx, u)
	_ = s.Indexer.IndexUser(ctx, u)
	return newProfile(u), nil
}

// UploadAvatar stores the image in GCS and writes its public URL to the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, callerID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.getUser(ctx, callerID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}

	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", callerID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}

	s.refreshSession(ctx, u)
	_ = s.Indexer.IndexUser(ctx, u)
	return url, nil
}

// SearchUsers queries the Elasticsearch mirror of profiles.
func (s *ProfileService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return s.Indexer.Search(ctx, q, size)
}

func (s *ProfileService) getUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *ProfileService) resolvePosts(ctx context.Context, postIDs []string) ([]PostSummary, error) {
	if s.Posts == nil || len(postIDs) == 0 {
		return []PostSummary{}, nil
	}
	posts, err := s.Posts.ListByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostSummary(p))
	}
	return out, nil
}

func (s *ProfileService) refreshSession(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := sessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"username":   u.Username,
		"avatar_url": u.AvatarURL,
		"updated_at": nowRFC3339(),
	})
	if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
		s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
	}
}

func summarize(ids []string, byID map[string]*entity.User) []ProfileSummary {
	out := make([]ProfileSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, newProfileSummary(u))
		}
	}
	return out
}
