package store

import (
	"context"
	"database/sql"
	"time"

	"planboard/domain"
)

// Reviews are append-only: every approve/reject decision is kept, so a post
// carries its full review history rather than one current verdict.

func CreateReview(ctx context.Context, db *sql.DB, r domain.Review) (domain.Review, error) {
	r.CreatedAt = time.Now().UTC()
	_, err := db.ExecContext(ctx,
		`INSERT INTO post_reviews (id, post_id, status, review_notes, reviewed_by, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.PostID, r.Status, r.ReviewNotes, r.ReviewedBy, r.CreatedAt)
	if err != nil {
		return domain.Review{}, err
	}
	return r, nil
}

func ListReviewsByPost(ctx context.Context, db *sql.DB, postID string) ([]domain.Review, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, post_id, status, review_notes, reviewed_by, created_at FROM post_reviews WHERE post_id = $1 ORDER BY created_at`,
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.PostID, &r.Status, &r.ReviewNotes, &r.ReviewedBy, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
