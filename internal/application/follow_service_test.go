package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFollowService(t *testing.T) (*FollowService, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return NewFollowService(repo, nil, nil, false), repo
}

func TestToggleFollowCreatesSymmetricEdge(t *testing.T) {
	svc, repo := setupFollowService(t)
	ctx := context.Background()
	alice := seedUser(repo, "alice@example.com", "alice")
	bob := seedUser(repo, "bob@example.com", "bob")

	followers, err := svc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, followers)

	storedBob, err := repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	storedAlice, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)

	assert.Contains(t, storedBob.Followers, alice.ID)
	assert.Contains(t, storedAlice.Following, bob.ID)
	assert.Empty(t, storedBob.Following)
	assert.Empty(t, storedAlice.Followers)
}

func TestToggleFollowRoundTrip(t *testing.T) {
	svc, repo := setupFollowService(t)
	ctx := context.Background()
	alice := seedUser(repo, "alice@example.com", "alice")
	bob := seedUser(repo, "bob@example.com", "bob")

	_, err := svc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	followers, err := svc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.Empty(t, followers)
	storedBob, _ := repo.GetByID(ctx, bob.ID)
	storedAlice, _ := repo.GetByID(ctx, alice.ID)
	assert.Empty(t, storedBob.Followers)
	assert.Empty(t, storedAlice.Following)
}

func TestToggleFollowSelfRejected(t *testing.T) {
	svc, repo := setupFollowService(t)
	ctx := context.Background()
	alice := seedUser(repo, "alice@example.com", "alice")

	_, err := svc.Toggle(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)

	stored, _ := repo.GetByID(ctx, alice.ID)
	assert.Empty(t, stored.Followers)
	assert.Empty(t, stored.Following)
}

func TestToggleFollowMissingUsers(t *testing.T) {
	svc, repo := setupFollowService(t)
	ctx := context.Background()
	alice := seedUser(repo, "alice@example.com", "alice")

	_, err := svc.Toggle(ctx, alice.ID, "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Toggle(ctx, "nope", alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleFollowMostRecentFirst(t *testing.T) {
	svc, repo := setupFollowService(t)
	ctx := context.Background()
	alice := seedUser(repo, "alice@example.com", "alice")
	bob := seedUser(repo, "bob@example.com", "bob")
	carol := seedUser(repo, "carol@example.com", "carol")

	_, err := svc.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	followers, err := svc.Toggle(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{carol.ID, bob.ID}, followers)
}

func TestSetHelpersAreDuplicateSafe(t *testing.T) {
	ids := addToSet(nil, "a")
	ids = addToSet(ids, "a")
	assert.Equal(t, []string{"a"}, ids)

	ids = addToSet(ids, "b")
	assert.Equal(t, []string{"b", "a"}, ids)

	ids = removeFromSet(ids, "a")
	assert.Equal(t, []string{"b"}, ids)
	ids = removeFromSet(ids, "a")
	assert.Equal(t, []string{"b"}, ids)
}

// The full user journey: register two users, follow, inspect both profiles,
// unfollow, and verify both sets drained.
func TestFollowScenarioAcrossServices(t *testing.T) {
	repo := newMemRepo()
	indexer := NewUserIndexer(nil, "", nil)
	auth := NewAuthService(repo, testJWT(), nil, nil, indexer, nil, "test", false)
	profiles := NewProfileService(repo, newMemPosts(), nil, "", nil, nil, indexer)
	follows := NewFollowService(repo, nil, nil, false)
	ctx := context.Background()

	u1, _, err := auth.Register(ctx, RegisterInput{Email: "u1@x.com", Password: "password1", Username: "u1"})
	require.NoError(t, err)
	u2, _, err := auth.Register(ctx, RegisterInput{Email: "u2@x.com", Password: "password2", Username: "u2"})
	require.NoError(t, err)

	_, err = follows.Toggle(ctx, u1.ID, u2.ID)
	require.NoError(t, err)

	detail, err := profiles.GetProfileByID(ctx, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{u1.ID}, detail.Followers)

	own, err := profiles.GetOwnProfile(ctx, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{u2.ID}, own.Following)

	_, err = follows.Toggle(ctx, u1.ID, u2.ID)
	require.NoError(t, err)

	detail, err = profiles.GetProfileByID(ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Followers)
	own, err = profiles.GetOwnProfile(ctx, u1.ID)
	require.NoError(t, err)
	assert.Empty(t, own.Following)
}
