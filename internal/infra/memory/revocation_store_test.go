package memory

import (
	"context"
	"testing"
	"time"
)

func TestRevocationStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewRevocationStore()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return now }

	if revoked, _ := store.IsRevoked(ctx, "t1"); revoked {
		t.Fatalf("expected token not revoked")
	}
	if err := store.Revoke(ctx, "t1", now.Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := store.IsRevoked(ctx, "t1"); !revoked {
		t.Fatalf("expected token revoked")
	}

	now = now.Add(2 * time.Minute)
	if revoked, _ := store.IsRevoked(ctx, "t1"); revoked {
		t.Fatalf("expected revocation to lapse with the token")
	}
}
