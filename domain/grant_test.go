package domain

import (
	"testing"
	"time"
)

func TestGrantLive(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name  string
		grant ShareGrant
		want  bool
	}{
		{"active no expiry", ShareGrant{Active: true}, true},
		{"active future expiry", ShareGrant{Active: true, ExpiresAt: &future}, true},
		{"active past expiry", ShareGrant{Active: true, ExpiresAt: &past}, false},
		{"revoked", ShareGrant{Active: false}, false},
		{"revoked future expiry", ShareGrant{Active: false, ExpiresAt: &future}, false},
	}
	for _, tc := range cases {
		if got := tc.grant.Live(now); got != tc.want {
			t.Errorf("%s: Live = %v, want %v", tc.name, got, tc.want)
		}
	}
}
