package domain

import (
	"time"
)

const (
	AccessView = "view"
	AccessEdit = "edit"
)

// ShareGrant binds a bearer token to one organization and an access ceiling.
// Possession of the token is the only credential; there is no identity behind it.
type ShareGrant struct {
	ID             string     `json:"id"`
	Token          string     `json:"token"`
	OrganizationID string     `json:"organization_id"`
	AccessLevel    string     `json:"access_level"`
	Active         bool       `json:"active"`
	IssuedAt       time.Time  `json:"issued_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// Live reports whether the grant still authorizes anything: not revoked and
// not past its expiry. Expiry is evaluated lazily at call time; nothing sweeps
// expired rows.
func (g ShareGrant) Live(now time.Time) bool {
	if !g.Active {
		return false
	}
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}

func ValidAccessLevel(s string) bool {
	return s == AccessView || s == AccessEdit
}
