package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"planboard/domain"
)

func TestIssueDefaults(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")
	m := &Manager{DB: db}

	before := time.Now().UTC()
	grant, err := m.Issue(ctx, ownerID, orgID, domain.AccessView, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if len(grant.Token) != tokenBytes*2 {
		t.Fatalf("token length = %d", len(grant.Token))
	}
	if !grant.Active {
		t.Fatal("new grant not active")
	}
	if grant.OrganizationID != orgID || grant.AccessLevel != domain.AccessView {
		t.Fatalf("grant mismatch: %+v", grant)
	}
	if grant.ExpiresAt == nil {
		t.Fatal("default issue should set expiry")
	}
	want := before.Add(DefaultTTL)
	if grant.ExpiresAt.Before(want.Add(-time.Minute)) || grant.ExpiresAt.After(want.Add(time.Minute)) {
		t.Fatalf("expiry %v not near %v", grant.ExpiresAt, want)
	}

	// Freshly issued tokens resolve immediately.
	v := &Validator{DB: db}
	resolved, err := v.Resolve(ctx, grant.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != grant.ID {
		t.Fatalf("resolved %q, want %q", resolved.ID, grant.ID)
	}
}

func TestIssueTTLVariants(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")
	m := &Manager{DB: db}

	short, err := m.Issue(ctx, ownerID, orgID, domain.AccessEdit, time.Hour)
	if err != nil {
		t.Fatalf("issue short: %v", err)
	}
	if short.ExpiresAt == nil || time.Until(*short.ExpiresAt) > 2*time.Hour {
		t.Fatalf("short ttl not applied: %v", short.ExpiresAt)
	}

	forever, err := m.Issue(ctx, ownerID, orgID, domain.AccessEdit, -1)
	if err != nil {
		t.Fatalf("issue forever: %v", err)
	}
	if forever.ExpiresAt != nil {
		t.Fatalf("negative ttl should mean no expiry, got %v", forever.ExpiresAt)
	}
}

func TestIssueChecks(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")
	stranger, _ := seedOrg(t, db, "other")
	m := &Manager{DB: db}

	if _, err := m.Issue(ctx, stranger, orgID, domain.AccessView, 0); err != domain.ErrNotOwner {
		t.Fatalf("non-owner issue: expected ErrNotOwner, got %v", err)
	}
	if _, err := m.Issue(ctx, ownerID, orgID, "admin", 0); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("bad access level: expected ErrInvalidPayload, got %v", err)
	}
	if _, err := m.Issue(ctx, ownerID, "no-such-org", domain.AccessView, 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown org: expected ErrNotFound, got %v", err)
	}
}

func TestRevokeIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")
	m := &Manager{DB: db}
	v := &Validator{DB: db}

	grant, err := m.Issue(ctx, ownerID, orgID, domain.AccessEdit, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := m.Revoke(ctx, ownerID, grant.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := m.Revoke(ctx, ownerID, grant.ID); err != nil {
		t.Fatalf("second revoke should succeed: %v", err)
	}
	if _, err := v.Resolve(ctx, grant.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("revoked token resolve: expected ErrInvalidToken, got %v", err)
	}
}

func TestRevokeRequiresOwner(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")
	stranger, _ := seedOrg(t, db, "other")
	m := &Manager{DB: db}

	grant, err := m.Issue(ctx, ownerID, orgID, domain.AccessEdit, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := m.Revoke(ctx, stranger, grant.ID); err != domain.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestListActiveOwnerView(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ownerID, orgID := seedOrg(t, db, "acme")
	stranger, _ := seedOrg(t, db, "other")
	m := &Manager{DB: db}

	first, err := m.Issue(ctx, ownerID, orgID, domain.AccessView, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := m.Issue(ctx, ownerID, orgID, domain.AccessEdit, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := m.Revoke(ctx, ownerID, first.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	grants, err := m.ListActive(ctx, ownerID, orgID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(grants) != 1 || grants[0].ID != second.ID {
		t.Fatalf("grants = %+v, want only the unrevoked one", grants)
	}

	if _, err := m.ListActive(ctx, stranger, orgID); err != domain.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
