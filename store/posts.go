package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"planboard/domain"
)

func CreatePost(ctx context.Context, db *sql.DB, p domain.Post) (domain.Post, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := db.ExecContext(ctx,
		`INSERT INTO posts (id, organization_id, content, media_url, status, date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.OrganizationID, p.Content, p.MediaURL, p.Status, p.Date, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

// PostUpdate carries the fields an update may change; nil means keep.
type PostUpdate struct {
	Content  *string
	MediaURL *string
	Status   *string
	Date     *string
}

// UpdatePost applies the update to the post, scoped to orgID. The WHERE
// clause on organization_id is the second enforcement line after the
// permission gate: a post id from another tenant never matches.
func UpdatePost(ctx context.Context, db *sql.DB, orgID, id string, u PostUpdate) (domain.Post, error) {
	set := "updated_at = $1"
	args := []any{time.Now().UTC()}
	n := 2
	cols := []struct {
		name string
		val  *string
	}{
		{"content", u.Content},
		{"media_url", u.MediaURL},
		{"status", u.Status},
		{"date", u.Date},
	}
	for _, c := range cols {
		if c.val != nil {
			set += fmt.Sprintf(", %s = $%d", c.name, n)
			args = append(args, *c.val)
			n++
		}
	}
	args = append(args, id, orgID)
	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d AND organization_id = $%d`, set, n, n+1)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Post{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Post{}, err
	}
	if affected == 0 {
		return domain.Post{}, domain.ErrNotFound
	}
	return GetPost(ctx, db, orgID, id)
}

func DeletePost(ctx context.Context, db *sql.DB, orgID, id string) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND organization_id = $2`, id, orgID)
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

func GetPost(ctx context.Context, db *sql.DB, orgID, id string) (domain.Post, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, organization_id, content, media_url, status, date, created_at, updated_at
		 FROM posts WHERE id = $1 AND organization_id = $2`, id, orgID)

	var p domain.Post
	err := row.Scan(&p.ID, &p.OrganizationID, &p.Content, &p.MediaURL, &p.Status, &p.Date, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, domain.ErrNotFound
		}
		return domain.Post{}, err
	}
	return p, nil
}

func ListPostsByOrganization(ctx context.Context, db *sql.DB, orgID string) ([]domain.Post, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, organization_id, content, media_url, status, date, created_at, updated_at
		 FROM posts WHERE organization_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Content, &p.MediaURL, &p.Status, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
