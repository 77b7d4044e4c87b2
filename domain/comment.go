package domain

import (
	"time"
)

// Comment is append-only feedback on a post. CreatedBy is a caller-supplied
// display label, never an identity.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
