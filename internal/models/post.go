// Package models contains data structures for the application's domain models.
package models

import "time"

// MediaKind identifies the type of media attached to a post.
type MediaKind string

const (
	// MediaImage marks an attached still image.
	MediaImage MediaKind = "image"
	// MediaVideo marks an attached video clip.
	MediaVideo MediaKind = "video"
)

// Valid reports whether k is a known media kind.
func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaVideo
}

// Post represents a public-space post.
//
// CreatedAt is always stored in UTC; quota accounting matches posts to a
// UTC calendar day. Likes is a genuine set (each user at most once) and
// Comments is append-only.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	MediaURL  string    `json:"media_url,omitempty"`
	MediaKind MediaKind `json:"media_kind,omitempty"`
	Likes     LikeSet   `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// Comment is an immutable comment on a post. Comments are only ever
// appended; display ordering is resolved at read time.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
