package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"planboard/domain"
)

func CreateOrganization(ctx context.Context, db *sql.DB, id, name, createdBy string) (domain.Organization, error) {
	now := time.Now().UTC()
	_, err := db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, created_by, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, name, createdBy, now, now)
	if err != nil {
		return domain.Organization{}, err
	}
	return domain.Organization{ID: id, Name: name, CreatedBy: createdBy, CreatedAt: now, UpdatedAt: now}, nil
}

func GetOrganization(ctx context.Context, db *sql.DB, id string) (domain.Organization, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, name, created_by, created_at, updated_at FROM organizations WHERE id = $1`, id)

	var o domain.Organization
	err := row.Scan(&o.ID, &o.Name, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Organization{}, domain.ErrNotFound
		}
		return domain.Organization{}, err
	}
	return o, nil
}

func ListOrganizationsByOwner(ctx context.Context, db *sql.DB, ownerID string) ([]domain.Organization, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_by, created_at, updated_at FROM organizations WHERE created_by = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// IsOrganizationOwner reports whether ownerID created the organization.
// ErrNotFound when the organization does not exist.
func IsOrganizationOwner(ctx context.Context, db *sql.DB, orgID, ownerID string) (bool, error) {
	row := db.QueryRowContext(ctx, `SELECT created_by FROM organizations WHERE id = $1`, orgID)
	var createdBy string
	if err := row.Scan(&createdBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return createdBy == ownerID, nil
}

// DeleteOrganization removes an organization owned by ownerID. Only the
// creating account may delete it.
func DeleteOrganization(ctx context.Context, db *sql.DB, id, ownerID string) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM organizations WHERE id = $1 AND created_by = $2`, id, ownerID)
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
