package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-social-api/pkg/helpers"
)

func testJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("test-secret", time.Hour)
}

func setupAuthService(t *testing.T) (*AuthService, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	svc := NewAuthService(repo, testJWT(), nil, nil, NewUserIndexer(nil, "", nil), nil, "test", false)
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	profile, tok, err := svc.Register(ctx, RegisterInput{
		Email:    "a@x.com",
		Password: "password123",
		Username: "ana",
		FullName: "Ana Torres",
	})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Empty(t, profile.Followers)
	assert.Empty(t, profile.Following)
	assert.NotEmpty(t, tok.Token)
	assert.True(t, tok.ExpiresAt.After(time.Now()))

	// token subject resolves back to the user id
	subject, err := svc.JWT.Parse(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, subject)

	logged, tok2, err := svc.Login(ctx, "a@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, logged.ID)
	assert.NotEmpty(t, tok2.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo := setupAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "password123", Username: "first"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "password456", Username: "second"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.Login(context.Background(), "missing@x.com", "whatever1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "password123", Username: "ana"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordNeverLeaks(t *testing.T) {
	svc, repo := setupAuthService(t)
	ctx := context.Background()

	profile, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "password123", Username: "ana"})
	require.NoError(t, err)

	// stored hash is salted, not the plaintext
	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NotEmpty(t, stored.Password)

	b, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), stored.Password)
}
