package entity

import "time"

// Post is a read-only content record owned by the content subsystem.
// Profile views resolve a user's PostIDs against these.
type Post struct {
	ID        string
	AuthorID  string
	Caption   string
	ImageURL  string
	CreatedAt time.Time
}
