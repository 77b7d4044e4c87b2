package store

import (
	"context"
	"database/sql"
	"time"

	"planboard/domain"
)

// Comments are append-only; there is no update or delete.

func CreateComment(ctx context.Context, db *sql.DB, c domain.Comment) (domain.Comment, error) {
	c.CreatedAt = time.Now().UTC()
	_, err := db.ExecContext(ctx,
		`INSERT INTO post_comments (id, post_id, content, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.PostID, c.Content, c.CreatedBy, c.CreatedAt)
	if err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

func ListCommentsByPost(ctx context.Context, db *sql.DB, postID string) ([]domain.Comment, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, post_id, content, created_by, created_at FROM post_comments WHERE post_id = $1 ORDER BY created_at`,
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Content, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
