package models

import "time"

// Comment is a user comment attached to an article. The author is resolved
// lazily from UserID when the comment is serialized; User stays nil when the
// account no longer exists.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      *User     `json:"user,omitempty"`
}
