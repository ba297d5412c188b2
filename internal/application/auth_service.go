package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
	repo "github.com/oksasatya/go-social-api/internal/domain/repository"
	"github.com/oksasatya/go-social-api/pkg/helpers"
	"github.com/oksasatya/go-social-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-social-api/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService owns credential verification and token issuance.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	Indexer     *UserIndexer
	Pub         *helpers.RabbitPublisher
	AppName     string
	MailEnabled bool
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, ix *UserIndexer, pub *helpers.RabbitPublisher, appName string, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:        r,
		JWT:         jwt,
		Redis:       rdb,
		Logger:      logger,
		Indexer:     ix,
		Pub:         pub,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

// AuthToken is the issued session token with its expiry.
type AuthToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	FullName string
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Login verifies email/password and issues a token whose subject is the user id.
// A missing email and a wrong password are distinct failures.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Profile, AuthToken, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, AuthToken{}, ErrUserNotFound
		}
		return nil, AuthToken{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, AuthToken{}, ErrInvalidCredentials
	}
	tok, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, AuthToken{}, err
	}
	return newProfile(u), tok, nil
}

// Register creates a user with empty follower/following sets and issues a token
// identical in shape to login. The unique index on email is the real uniqueness
// guarantee; the lookup below only rejects the common case early.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Profile, AuthToken, error) {
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, AuthToken{}, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, AuthToken{}, err
	}
	u := &entity.User{
		Email:    in.Email,
		Password: hash,
		Username: in.Username,
		FullName: in.FullName,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, AuthToken{}, ErrEmailTaken
		}
		return nil, AuthToken{}, err
	}

	_ = s.Indexer.IndexUser(ctx, u)
	s.sendWelcome(ctx, u)

	tok, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, AuthToken{}, err
	}
	return newProfile(u), tok, nil
}

// issueToken generates the session token and records a session hash in Redis.
// The Redis record is a cache for observability; authorization never reads it.
func (s *AuthService) issueToken(ctx context.Context, u *entity.User) (AuthToken, error) {
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return AuthToken{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"username":   u.Username,
			"avatar_url": u.AvatarURL,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.JWT.TTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return AuthToken{Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"AppName": s.AppName,
			"Name":    displayName(u),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to publish welcome email")
	}
}

func displayName(u *entity.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
