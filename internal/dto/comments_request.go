package dto

import "time"

type CreateCommentDto struct {
	Username   string    `json:"username"`
	Body       string    `json:"body"`
	DatePosted time.Time `json:"date_posted"`
}

// CommentFilter selects comments by parent post or by the owner of the parent posts. Exactly one must be set.
type CommentFilter struct {
	PostID string
	UserID string
}
