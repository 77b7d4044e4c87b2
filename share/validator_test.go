package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"planboard/domain"
	"planboard/store"
)

func TestResolveMissingToken(t *testing.T) {
	v := &Validator{DB: testDB(t)}
	if _, err := v.Resolve(context.Background(), ""); err != domain.ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestResolveFabricatedToken(t *testing.T) {
	v := &Validator{DB: testDB(t)}
	_, err := v.Resolve(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResolveLiveGrant(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")

	grant, err := (&Manager{DB: db}).Issue(ctx, ownerID, orgID, domain.AccessEdit, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := (&Validator{DB: db}).Resolve(ctx, grant.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.OrganizationID != orgID || got.AccessLevel != domain.AccessEdit {
		t.Fatalf("resolved grant mismatch: %+v", got)
	}
}

// An expired-but-unrevoked grant must fail exactly like a fabricated token:
// same sentinel match, nothing for an enumerating caller to tell apart.
func TestResolveExpiredGrant(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, orgID := seedOrg(t, db, "acme")

	past := time.Now().UTC().Add(-time.Minute)
	g := domain.ShareGrant{
		ID: uuid.NewString(), Token: "expired-token", OrganizationID: orgID,
		AccessLevel: domain.AccessEdit, Active: true,
		IssuedAt: past.Add(-time.Hour), ExpiresAt: &past,
	}
	if err := store.CreateGrant(ctx, db, g); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := (&Validator{DB: db}).Resolve(ctx, "expired-token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken match, got %v", err)
	}
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired for server-side logs, got %v", err)
	}
}

func TestResolveNullExpiryNeverExpires(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")

	grant, err := (&Manager{DB: db}).Issue(ctx, ownerID, orgID, domain.AccessView, -1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := (&Validator{DB: db}).Resolve(ctx, grant.Token); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}
