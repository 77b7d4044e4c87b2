package share

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"planboard/domain"
	"planboard/store"
)

// DefaultTTL applies when the issuer does not pick an expiry.
const DefaultTTL = 30 * 24 * time.Hour

const maxTokenAttempts = 5

// Manager issues and revokes share grants. All operations require the caller
// to own the target organization; anonymous token holders never reach this
// path.
type Manager struct {
	DB *sql.DB
}

// Issue creates a live grant for the organization and returns it, token
// included. This response is the only place the token value appears; after
// issuance only the owner's own listing can echo it back.
// ttl == 0 means DefaultTTL; ttl < 0 means the grant never expires.
func (m *Manager) Issue(ctx context.Context, ownerID, orgID, accessLevel string, ttl time.Duration) (domain.ShareGrant, error) {
	if !domain.ValidAccessLevel(accessLevel) {
		return domain.ShareGrant{}, fmt.Errorf("%w: access level %q", domain.ErrInvalidPayload, accessLevel)
	}
	if err := m.requireOwner(ctx, orgID, ownerID); err != nil {
		return domain.ShareGrant{}, err
	}

	now := time.Now().UTC()
	var expires *time.Time
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl > 0 {
		t := now.Add(ttl)
		expires = &t
	}

	g := domain.ShareGrant{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		AccessLevel:    accessLevel,
		Active:         true,
		IssuedAt:       now,
		ExpiresAt:      expires,
	}

	// A 256-bit collision is vanishingly unlikely, but the UNIQUE index is
	// authoritative: on a clash, generate a fresh token instead of touching
	// the existing row. Issued tokens are never reassigned.
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := NewToken()
		if err != nil {
			return domain.ShareGrant{}, err
		}
		g.Token = token
		err = store.CreateGrant(ctx, m.DB, g)
		if err == nil {
			return g, nil
		}
		if err != domain.ErrDuplicateToken {
			return domain.ShareGrant{}, err
		}
	}
	return domain.ShareGrant{}, fmt.Errorf("could not generate a unique token after %d attempts", maxTokenAttempts)
}

// Revoke deactivates a grant. Idempotent: revoking an already-revoked grant
// succeeds and leaves the same end state.
func (m *Manager) Revoke(ctx context.Context, ownerID, grantID string) error {
	g, err := store.GetGrant(ctx, m.DB, grantID)
	if err != nil {
		return err
	}
	if err := m.requireOwner(ctx, g.OrganizationID, ownerID); err != nil {
		return err
	}
	return store.DeactivateGrant(ctx, m.DB, grantID)
}

// ListActive returns the organization's unrevoked grants, newest first.
// Expired-but-unrevoked grants are included so the owner can clean them up.
func (m *Manager) ListActive(ctx context.Context, ownerID, orgID string) ([]domain.ShareGrant, error) {
	if err := m.requireOwner(ctx, orgID, ownerID); err != nil {
		return nil, err
	}
	return store.ListActiveGrants(ctx, m.DB, orgID)
}

func (m *Manager) requireOwner(ctx context.Context, orgID, ownerID string) error {
	owner, err := store.IsOrganizationOwner(ctx, m.DB, orgID, ownerID)
	if err != nil {
		return err
	}
	if !owner {
		return domain.ErrNotOwner
	}
	return nil
}
