package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
)

func setupProfileService(t *testing.T, posts *memPosts) (*ProfileService, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	if posts == nil {
		posts = newMemPosts()
	}
	svc := NewProfileService(repo, posts, nil, "", nil, nil, NewUserIndexer(nil, "", nil))
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestGetOwnProfileMissingUser(t *testing.T) {
	svc, _ := setupProfileService(t, nil)

	_, err := svc.GetOwnProfile(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProfileByIDResolvesPosts(t *testing.T) {
	post := &entity.Post{ID: "post-1", Caption: "hello", CreatedAt: time.Now()}
	svc, repo := setupProfileService(t, newMemPosts(post))
	ctx := context.Background()

	alice := seedUser(repo, "alice@example.com", "alice")
	alice.PostIDs = []string{"post-1"}
	require.NoError(t, repo.Update(ctx, alice))

	detail, err := svc.GetProfileByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, detail.Posts, 1)
	assert.Equal(t, "hello", detail.Posts[0].Caption)
	assert.Equal(t, []string{"post-1"}, detail.PostIDs)
}

func TestUpdateProfileWritesSuppliedFieldsVerbatim(t *testing.T) {
	svc, repo := setupProfileService(t, nil)
	ctx := context.Background()

	alice := seedUser(repo, "alice@example.com", "alice")
	alice.FullName = "Alice Cooper"
	alice.AvatarURL = "https://img.example.com/a.png"
	require.NoError(t, repo.Update(ctx, alice))

	// supplied empty value overwrites, omitted field is untouched
	profile, err := svc.UpdateProfile(ctx, alice.ID, UpdateProfileInput{
		Username:  strPtr("alice2"),
		AvatarURL: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", profile.Username)
	assert.Equal(t, "", profile.AvatarURL)
	assert.Equal(t, "Alice Cooper", profile.FullName)
}

func TestUpdateProfileCreatesMissingRow(t *testing.T) {
	svc, repo := setupProfileService(t, nil)
	ctx := context.Background()

	profile, err := svc.UpdateProfile(ctx, "brand-new", UpdateProfileInput{Username: strPtr("newbie")})
	require.NoError(t, err)
	assert.Equal(t, "brand-new", profile.ID)
	assert.Equal(t, "newbie", profile.Username)

	stored, err := repo.GetByID(ctx, "brand-new")
	require.NoError(t, err)
	assert.Equal(t, "newbie", stored.Username)
}

func TestListUnfollowedExcludesCallerAndFollowed(t *testing.T) {
	svc, repo := setupProfileService(t, nil)
	ctx := context.Background()

	alice := seedUser(repo, "alice@example.com", "alice")
	bob := seedUser(repo, "bob@example.com", "bob")
	carol := seedUser(repo, "carol@example.com", "carol")

	follows := NewFollowService(repo, nil, nil, false)
	_, err := follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	suggestions, err := svc.ListUnfollowedProfiles(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, carol.ID, suggestions[0].ID)
}

func TestListAllProfilesResolvesRelations(t *testing.T) {
	svc, repo := setupProfileService(t, nil)
	ctx := context.Background()

	alice := seedUser(repo, "alice@example.com", "alice")
	bob := seedUser(repo, "bob@example.com", "bob")

	follows := NewFollowService(repo, nil, nil, false)
	_, err := follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	entries, err := svc.ListAllProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := map[string]DirectoryEntry{}
	for _, e := range entries {
		byID[e.ID] = e
	}
	require.Len(t, byID[bob.ID].Followers, 1)
	assert.Equal(t, "alice", byID[bob.ID].Followers[0].Username)
	require.Len(t, byID[alice.ID].Following, 1)
	assert.Equal(t, "bob", byID[alice.ID].Following[0].Username)

	// no serialization path exposes the stored hash
	b, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
}

func TestSuggestionSerializationHasNoPassword(t *testing.T) {
	svc, repo := setupProfileService(t, nil)
	ctx := context.Background()

	seedUser(repo, "alice@example.com", "alice")
	bob := seedUser(repo, "bob@example.com", "bob")

	suggestions, err := svc.ListUnfollowedProfiles(ctx, bob.ID)
	require.NoError(t, err)

	b, err := json.Marshal(suggestions)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
}
