package application

import (
	"time"

	"github.com/oksasatya/go-social-api/internal/domain/entity"
)

// Profile is the outward projection of a user. It has no password field at all,
// so no serialization path can leak the hash.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Followers []string  `json:"followers"`
	Following []string  `json:"following"`
	PostIDs   []string  `json:"post_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileDetail adds resolved post content to a profile.
type ProfileDetail struct {
	Profile
	Posts []PostSummary `json:"posts"`
}

// DirectoryEntry is a listing row with followers/following/posts resolved.
type DirectoryEntry struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Username  string           `json:"username"`
	FullName  string           `json:"full_name"`
	AvatarURL string           `json:"avatar_url"`
	Followers []ProfileSummary `json:"followers"`
	Following []ProfileSummary `json:"following"`
	Posts     []PostSummary    `json:"posts"`
	CreatedAt time.Time        `json:"created_at"`
}

// ProfileSummary is the minimal display shape for another user.
type ProfileSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// Suggestion is a "people you may know" row.
type Suggestion struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	FullName  string   `json:"full_name"`
	AvatarURL string   `json:"avatar_url"`
	Followers []string `json:"followers"`
}

type PostSummary struct {
	ID        string    `json:"id"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func newProfile(u *entity.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Followers: idsOrEmpty(u.Followers),
		Following: idsOrEmpty(u.Following),
		PostIDs:   idsOrEmpty(u.PostIDs),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newProfileSummary(u *entity.User) ProfileSummary {
	return ProfileSummary{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

func newPostSummary(p *entity.Post) PostSummary {
	return PostSummary{
		ID:        p.ID,
		Caption:   p.Caption,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

// idsOrEmpty keeps empty sets rendering as [] instead of null.
func idsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
