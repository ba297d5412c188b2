package entity

import (
	"time"
)

// User is the aggregate root for the identity and follow-graph domain.
// Passwords are stored as bcrypt hashes in Password field and never serialized.
//
// Followers and Following are sets of user ids kept most-recent-first. For any
// pair of users A and B, B being in A's Following implies A is in B's Followers;
// the follow service is the only writer allowed to touch either set.
type User struct {
	ID        string
	Email     string
	Password  string
	Username  string
	FullName  string
	AvatarURL string
	Followers []string
	Following []string
	PostIDs   []string // owned content ids, written by the content subsystem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Follows reports whether other already follows u, read from u's follower set.
// This is the canonical side for deciding a toggle; Following is never consulted.
func (u *User) Follows(otherID string) bool {
	for _, id := range u.Followers {
		if id == otherID {
			return true
		}
	}
	return false
}
