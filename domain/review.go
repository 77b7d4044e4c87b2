package domain

import (
	"time"
)

const (
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review records one approve/reject decision. Reviews accumulate; there is no
// single current review per post.
type Review struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	Status      string    `json:"status"`
	ReviewNotes string    `json:"review_notes"`
	ReviewedBy  string    `json:"reviewed_by"`
	CreatedAt   time.Time `json:"created_at"`
}
