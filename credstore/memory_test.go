package credstore

import (
	"context"
	"testing"
)

func TestMemorySetTokensPreservesRefreshByOmission(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.SetTokens(ctx, "access-1", "refresh-1")
	m.SetTokens(ctx, "access-2", "")

	if access, ok := m.GetAccessToken(ctx); !ok || access != "access-2" {
		t.Fatalf("access = %q", access)
	}
	if refresh, ok := m.GetRefreshToken(ctx); !ok || refresh != "refresh-1" {
		t.Fatalf("refresh = %q, want preserved refresh-1", refresh)
	}

	// An explicit refresh value overwrites.
	m.SetTokens(ctx, "access-3", "refresh-2")
	if refresh, _ := m.GetRefreshToken(ctx); refresh != "refresh-2" {
		t.Fatalf("refresh = %q, want refresh-2", refresh)
	}
}

func TestMemoryClearTokensRemovesBundle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.SetTokens(ctx, "access", "refresh")
	m.SetProfile(ctx, Profile{ID: 1, Username: "ana"})
	m.ClearTokens(ctx)

	if _, ok := m.GetAccessToken(ctx); ok {
		t.Fatal("access token should be absent")
	}
	if _, ok := m.GetRefreshToken(ctx); ok {
		t.Fatal("refresh token should be absent")
	}
	if _, ok := m.GetProfile(ctx); ok {
		t.Fatal("profile should be absent")
	}
}

func TestMemoryEmptyReads(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := m.GetAccessToken(ctx); ok {
		t.Fatal("fresh store should hold no access token")
	}
	if _, ok := m.GetProfile(ctx); ok {
		t.Fatal("fresh store should hold no profile")
	}
}
