package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
	repo "github.com/oksasatya/go-social-api/internal/domain/repository"
	"github.com/oksasatya/go-social-api/pkg/helpers"
	"github.com/oksasatya/go-social-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-social-api/pkg/mailer/templates"
)

// ErrSelfFollow rejects a user toggling a follow on themselves. Rejecting (over
// a silent no-op) keeps the response honest: a toggle that returns followers
// implies it did something.
var ErrSelfFollow = errors.New("cannot follow yourself")

// FollowService owns the two-sided follow toggle. A directed edge A→B is stored
// redundantly as B in A's Following and A in B's Followers, and every toggle
// must leave both sides agreeing.
type FollowService struct {
	Repo        repo.UserRepository
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewFollowService(r repo.UserRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *FollowService {
	return &FollowService{Repo: r, Logger: logger, Pub: pub, MailEnabled: mailEnabled}
}

// Toggle flips the caller→target follow edge and returns the target's updated
// follower set. The current state is read from the target's Followers only;
// deciding from one side and mutating from the other is how the two sets drift
// apart, so Followers is the single source of truth throughout.
//
// Both mutations are set operations, not positional edits: a retry after a
// failed persist re-applies the whole toggle without duplicating or losing an
// edge. Persistence itself writes both rows in one transaction.
func (s *FollowService) Toggle(ctx context.Context, callerID, targetID string) ([]string, error) {
	if callerID == targetID {
		return nil, ErrSelfFollow
	}

	caller, err := s.loadUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	target, err := s.loadUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	followed := false
	if target.Follows(callerID) {
		target.Followers = removeFromSet(target.Followers, callerID)
		caller.Following = removeFromSet(caller.Following, target.ID)
	} else {
		target.Followers = addToSet(target.Followers, callerID)
		caller.Following = addToSet(caller.Following, target.ID)
		followed = true
	}

	if err := s.Repo.SaveFollowEdge(ctx, caller, target); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"caller_id": callerID,
			"target_id": targetID,
			"followed":  followed,
		}).Debug("follow toggled")
	}
	if followed {
		s.notifyNewFollower(ctx, caller, target)
	}

	return idsOrEmpty(target.Followers), nil
}

func (s *FollowService) loadUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *FollowService) notifyNewFollower(ctx context.Context, follower, target *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       target.Email,
		Template: mailtpl.NewFollower,
		Data: map[string]any{
			"Name":             displayName(target),
			"FollowerName":     displayName(follower),
			"FollowerUsername": follower.Username,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", target.ID).Warn("failed to publish follower email")
	}
}

// addToSet prepends id when absent. Most-recent-first ordering matches what
// listings display; membership, not position, is what correctness relies on.
func addToSet(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append([]string{id}, ids...)
}

// removeFromSet drops every occurrence of id.
func removeFromSet(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
