package share

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"planboard/domain"
	"planboard/store"
)

// Validator resolves bearer tokens to live grants. It is a pure read and safe
// to call with untrusted input.
type Validator struct {
	DB *sql.DB
}

// Resolve looks up the grant for a token. Absent, revoked, and expired tokens
// all fail with errors matching domain.ErrInvalidToken so a caller probing the
// endpoint cannot tell real-but-dead tokens from fabricated ones; expiry keeps
// its own sentinel for server-side logs only. Expiry is evaluated here, at
// request time. Nothing sweeps expired rows.
func (v *Validator) Resolve(ctx context.Context, token string) (domain.ShareGrant, error) {
	if token == "" {
		return domain.ShareGrant{}, domain.ErrMissingToken
	}

	g, err := store.GetGrantByToken(ctx, v.DB, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ShareGrant{}, domain.ErrInvalidToken
		}
		return domain.ShareGrant{}, err
	}
	if !g.Active {
		return domain.ShareGrant{}, domain.ErrInvalidToken
	}
	if g.ExpiresAt != nil && !g.ExpiresAt.After(time.Now().UTC()) {
		return domain.ShareGrant{}, domain.ErrTokenExpired
	}
	return g, nil
}
