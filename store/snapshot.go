package store

import (
	"context"
	"database/sql"
	"errors"

	"planboard/domain"
)

// PostData is a post together with its feedback threads.
type PostData struct {
	domain.Post
	Comments []domain.Comment `json:"comments"`
	Reviews  []domain.Review  `json:"reviews"`
}

// OrganizationData is the full shared view of one tenant.
type OrganizationData struct {
	Organization domain.Organization `json:"organization"`
	Posts        []PostData          `json:"posts"`
}

// GetOrganizationData reads the organization, its posts, and every post's
// comments and reviews inside a single transaction, so a reader never sees a
// post detached from its feedback by a concurrent write.
func GetOrganizationData(ctx context.Context, db *sql.DB, orgID string) (OrganizationData, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return OrganizationData{}, err
	}
	defer tx.Rollback()

	var data OrganizationData

	row := tx.QueryRowContext(ctx,
		`SELECT id, name, created_by, created_at, updated_at FROM organizations WHERE id = $1`, orgID)
	o := &data.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrganizationData{}, domain.ErrNotFound
		}
		return OrganizationData{}, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, organization_id, content, media_url, status, date, created_at, updated_at
		 FROM posts WHERE organization_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return OrganizationData{}, err
	}
	posts, err := scanPosts(rows)
	rows.Close()
	if err != nil {
		return OrganizationData{}, err
	}

	data.Posts = []PostData{}
	for _, p := range posts {
		pd := PostData{Post: p, Comments: []domain.Comment{}, Reviews: []domain.Review{}}

		crows, err := tx.QueryContext(ctx,
			`SELECT id, post_id, content, created_by, created_at FROM post_comments WHERE post_id = $1 ORDER BY created_at`,
			p.ID)
		if err != nil {
			return OrganizationData{}, err
		}
		for crows.Next() {
			var c domain.Comment
			if err := crows.Scan(&c.ID, &c.PostID, &c.Content, &c.CreatedBy, &c.CreatedAt); err != nil {
				crows.Close()
				return OrganizationData{}, err
			}
			pd.Comments = append(pd.Comments, c)
		}
		if err := crows.Err(); err != nil {
			crows.Close()
			return OrganizationData{}, err
		}
		crows.Close()

		rrows, err := tx.QueryContext(ctx,
			`SELECT id, post_id, status, review_notes, reviewed_by, created_at FROM post_reviews WHERE post_id = $1 ORDER BY created_at`,
			p.ID)
		if err != nil {
			return OrganizationData{}, err
		}
		for rrows.Next() {
			var r domain.Review
			if err := rrows.Scan(&r.ID, &r.PostID, &r.Status, &r.ReviewNotes, &r.ReviewedBy, &r.CreatedAt); err != nil {
				rrows.Close()
				return OrganizationData{}, err
			}
			pd.Reviews = append(pd.Reviews, r)
		}
		if err := rrows.Err(); err != nil {
			rrows.Close()
			return OrganizationData{}, err
		}
		rrows.Close()

		data.Posts = append(data.Posts, pd)
	}

	if err := tx.Commit(); err != nil {
		return OrganizationData{}, err
	}
	return data, nil
}
