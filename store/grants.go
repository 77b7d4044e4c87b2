package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"planboard/domain"
)

// CreateGrant persists a new share grant. A collision on the token's UNIQUE
// index surfaces as ErrDuplicateToken so the issuer can regenerate; the
// existing row is never overwritten, keeping tokens single-use forever.
func CreateGrant(ctx context.Context, db *sql.DB, g domain.ShareGrant) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO share_links (id, token, organization_id, access_level, is_active, issued_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.Token, g.OrganizationID, g.AccessLevel, g.Active, g.IssuedAt, g.ExpiresAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: share_links.token") ||
			strings.Contains(err.Error(), "share_links_token_key") {
			return domain.ErrDuplicateToken
		}
		return err
	}
	return nil
}

func GetGrantByToken(ctx context.Context, db *sql.DB, token string) (domain.ShareGrant, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, token, organization_id, access_level, is_active, issued_at, expires_at
		 FROM share_links WHERE token = $1`, token)
	return scanGrant(row)
}

func GetGrant(ctx context.Context, db *sql.DB, id string) (domain.ShareGrant, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, token, organization_id, access_level, is_active, issued_at, expires_at
		 FROM share_links WHERE id = $1`, id)
	return scanGrant(row)
}

// DeactivateGrant revokes a grant. Revoking an already-revoked grant is a
// no-op; the end state is the same either way.
func DeactivateGrant(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `UPDATE share_links SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveGrants returns unrevoked grants newest first. Expired grants are
// included: the owner sees them so they can be cleaned up.
func ListActiveGrants(ctx context.Context, db *sql.DB, orgID string) ([]domain.ShareGrant, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, token, organization_id, access_level, is_active, issued_at, expires_at
		 FROM share_links WHERE organization_id = $1 AND is_active = true ORDER BY issued_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grants := []domain.ShareGrant{}
	for rows.Next() {
		var g domain.ShareGrant
		var expires sql.NullTime
		if err := rows.Scan(&g.ID, &g.Token, &g.OrganizationID, &g.AccessLevel, &g.Active, &g.IssuedAt, &expires); err != nil {
			return nil, err
		}
		if expires.Valid {
			g.ExpiresAt = &expires.Time
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func scanGrant(row *sql.Row) (domain.ShareGrant, error) {
	var g domain.ShareGrant
	var expires sql.NullTime
	err := row.Scan(&g.ID, &g.Token, &g.OrganizationID, &g.AccessLevel, &g.Active, &g.IssuedAt, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ShareGrant{}, domain.ErrNotFound
		}
		return domain.ShareGrant{}, err
	}
	if expires.Valid {
		g.ExpiresAt = &expires.Time
	}
	return g, nil
}
