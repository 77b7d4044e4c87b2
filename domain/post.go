package domain

import (
	"time"
)

// Post lifecycle statuses. "process" is the stored form of in-process.
const (
	PostStatusProcess   = "process"
	PostStatusScheduled = "scheduled"
	PostStatusPosted    = "posted"
)

type Post struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Content        string    `json:"content"`
	MediaURL       string    `json:"media_url"`
	Status         string    `json:"status"`
	Date           string    `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ValidPostStatus(s string) bool {
	return s == PostStatusProcess || s == PostStatusScheduled || s == PostStatusPosted
}
