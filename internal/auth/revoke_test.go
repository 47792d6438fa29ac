package auth

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	r := NewMemoryRevoker()
	r.now = func() time.Time { return now }

	if err := r.Revoke(ctx, "tok-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, err := r.IsRevoked(ctx, "tok-1")
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if !revoked {
		t.Error("expected tok-1 to be revoked")
	}

	if revoked, _ := r.IsRevoked(ctx, "tok-2"); revoked {
		t.Error("tok-2 was never revoked")
	}

	// Once the token would have expired anyway the entry stops mattering.
	now = now.Add(2 * time.Hour)
	if revoked, _ := r.IsRevoked(ctx, "tok-1"); revoked {
		t.Error("expected expired revocation to lapse")
	}

	// A later revoke sweeps expired entries.
	if err := r.Revoke(ctx, "tok-3", now.Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, ok := r.revoked["tok-1"]; ok {
		t.Error("expected tok-1 to be swept")
	}
}

func TestMemoryRevokerIgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()

	if err := r.Revoke(ctx, "old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if len(r.revoked) != 0 {
		t.Errorf("expected no entries, got %d", len(r.revoked))
	}
}
