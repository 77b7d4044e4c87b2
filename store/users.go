package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"planboard/domain"
)

func CreateUser(ctx context.Context, db *sql.DB, id, username, passwordHash string) (domain.User, error) {
	now := time.Now().UTC()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, username, passwordHash, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") ||
			strings.Contains(err.Error(), "users_username_key") {
			return domain.User{}, domain.ErrDuplicateUsername
		}
		return domain.User{}, err
	}
	return domain.User{ID: id, Username: username, CreatedAt: now, UpdatedAt: now}, nil
}

// GetUserByUsername returns the user together with the stored bcrypt hash.
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (domain.User, string, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, username, password, created_at, updated_at FROM users WHERE username = $1`, username)

	var u domain.User
	var hash string
	err := row.Scan(&u.ID, &u.Username, &hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, "", domain.ErrNotFound
		}
		return domain.User{}, "", err
	}
	return u, hash, nil
}
