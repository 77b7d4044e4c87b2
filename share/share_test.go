package share

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"planboard/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open("sqlite", filepath.Join(dir, "test.db"), "file://../db/migrations")
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedOrg(t *testing.T, db *sql.DB, name string) (ownerID, orgID string) {
	t.Helper()
	ctx := context.Background()
	user, err := store.CreateUser(ctx, db, uuid.NewString(), name+"-owner", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	org, err := store.CreateOrganization(ctx, db, uuid.NewString(), name, user.ID)
	if err != nil {
		t.Fatalf("create organization: %v", err)
	}
	return user.ID, org.ID
}
