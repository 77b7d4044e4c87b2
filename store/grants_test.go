package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"planboard/domain"
)

func TestCreateGrantRejectsDuplicateToken(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, orgID := seedOrg(t, db, "acme")

	first := domain.ShareGrant{
		ID: uuid.NewString(), Token: "fixed-token", OrganizationID: orgID,
		AccessLevel: domain.AccessView, Active: true, IssuedAt: time.Now().UTC(),
	}
	if err := CreateGrant(ctx, db, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := first
	second.ID = uuid.NewString()
	second.AccessLevel = domain.AccessEdit
	if err := CreateGrant(ctx, db, second); err != domain.ErrDuplicateToken {
		t.Fatalf("expected ErrDuplicateToken, got %v", err)
	}

	// The original binding survives untouched.
	got, err := GetGrantByToken(ctx, db, "fixed-token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != first.ID || got.AccessLevel != domain.AccessView {
		t.Fatalf("token rebound: %+v", got)
	}
}

func TestDeactivateGrantIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, orgID := seedOrg(t, db, "acme")

	g := domain.ShareGrant{
		ID: uuid.NewString(), Token: "tok", OrganizationID: orgID,
		AccessLevel: domain.AccessView, Active: true, IssuedAt: time.Now().UTC(),
	}
	if err := CreateGrant(ctx, db, g); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := DeactivateGrant(ctx, db, g.ID); err != nil {
		t.Fatalf("first revoke: %v", err)
	}
	if err := DeactivateGrant(ctx, db, g.ID); err != nil {
		t.Fatalf("second revoke should succeed silently: %v", err)
	}
	got, err := GetGrant(ctx, db, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active {
		t.Fatal("grant still active after revoke")
	}

	if err := DeactivateGrant(ctx, db, "no-such-grant"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListActiveGrants(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, orgID := seedOrg(t, db, "acme")

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	mk := func(token string, issued time.Time, active bool, expires *time.Time) domain.ShareGrant {
		g := domain.ShareGrant{
			ID: uuid.NewString(), Token: token, OrganizationID: orgID,
			AccessLevel: domain.AccessView, Active: active, IssuedAt: issued, ExpiresAt: expires,
		}
		if err := CreateGrant(ctx, db, g); err != nil {
			t.Fatalf("create %s: %v", token, err)
		}
		return g
	}

	mk("old", now.Add(-3*time.Hour), true, nil)
	mk("revoked", now.Add(-2*time.Hour), false, nil)
	mk("expired", now.Add(-time.Hour), true, &past) // expired but unrevoked: listed
	mk("fresh", now, true, nil)

	grants, err := ListActiveGrants(ctx, db, orgID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	tokens := []string{}
	for _, g := range grants {
		tokens = append(tokens, g.Token)
	}
	want := []string{"fresh", "expired", "old"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("tokens = %v, want %v", tokens, want)
		}
	}
}
