package chalito

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// refreshBackend is a fake API whose protected route accepts only the current
// token. Rotating the token out from under the client forces the 401 path.
type refreshBackend struct {
	mux *http.ServeMux

	mu      sync.Mutex
	current string
	serial  int

	refreshCalls atomic.Int64
	// refreshGate, when non-nil, blocks the refresh handler until closed so a
	// test can hold the refresh open while concurrent requests pile up.
	refreshGate chan struct{}
	// refreshStatus lets a test force the refresh call to fail.
	refreshStatus int
}

func newRefreshBackend() *refreshBackend {
	b := &refreshBackend{mux: http.NewServeMux(), refreshStatus: http.StatusOK}
	b.rotate()

	b.mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		b.refreshCalls.Add(1)
		if b.refreshGate != nil {
			<-b.refreshGate
		}
		if b.refreshStatus != http.StatusOK {
			w.WriteHeader(b.refreshStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "refresh token inválido"})
			return
		}
		b.rotate()
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": b.token()})
	})
	b.mux.HandleFunc("GET /api/articulos", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token() {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "token inválido"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []Articulo{}})
	})

	return b
}

func (b *refreshBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mux.ServeHTTP(w, r)
}

func (b *refreshBackend) token() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *refreshBackend) rotate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.serial++
	b.current = fmt.Sprintf("access-%d", b.serial)
}

// waitCoalesced blocks until n requests have joined the in-flight refresh.
func waitCoalesced(t *testing.T, client *Client, n uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if counter(client, MetricRefreshCoalesced) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d coalesced requests, got %d",
		n, counter(client, MetricRefreshCoalesced))
}

func TestSingleFlightRefresh(t *testing.T) {
	backend := newRefreshBackend()
	backend.refreshGate = make(chan struct{})

	client, store, _, cleanup := newTestClient(t, backend)
	defer cleanup()

	ctx := context.Background()
	store.SetTokens(ctx, "stale-token", "refresh-1")

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Articulos(ctx, ArticuloFiltros{})
			results <- err
		}()
	}

	// Hold the refresh open until every other request has 401ed and joined
	// the queue, then let it complete.
	waitCoalesced(t, client, n-1)
	close(backend.refreshGate)
	wg.Wait()
	close(results)

	for err := range results {
		if err != nil {
			t.Fatalf("request failed after refresh: %v", err)
		}
	}

	if calls := backend.refreshCalls.Load(); calls != 1 {
		t.Fatalf("expected exactly one refresh call, got %d", calls)
	}
	if got, ok := store.GetAccessToken(ctx); !ok || got != backend.token() {
		t.Fatalf("store holds %q, backend expects %q", got, backend.token())
	}
	if retried := counter(client, MetricRequestRetried); retried != n {
		t.Fatalf("expected %d replayed requests, got %d", n, retried)
	}
}

func TestRefreshFailureRejectsAllQueued(t *testing.T) {
	backend := newRefreshBackend()
	backend.refreshGate = make(chan struct{})
	backend.refreshStatus = http.StatusUnauthorized

	client, store, _, cleanup := newTestClient(t, backend)
	defer cleanup()

	ctx := context.Background()
	store.SetTokens(ctx, "stale-token", "refresh-1")

	const n = 6
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Articulos(ctx, ArticuloFiltros{})
			results <- err
		}()
	}

	waitCoalesced(t, client, n-1)
	close(backend.refreshGate)
	wg.Wait()
	close(results)

	for err := range results {
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected session-expired, got %v", err)
		}
	}

	if calls := backend.refreshCalls.Load(); calls != 1 {
		t.Fatalf("expected exactly one refresh call, got %d", calls)
	}
	if _, ok := store.GetAccessToken(ctx); ok {
		t.Fatal("access token should be cleared after refresh failure")
	}
	if _, ok := store.GetRefreshToken(ctx); ok {
		t.Fatal("refresh token should be cleared after refresh failure")
	}
	if client.State() != StateUnauthenticated {
		t.Fatalf("coordinator state = %s, want unauthenticated", client.State())
	}

	select {
	case ev := <-client.SessionEvents():
		if ev.Reason != SessionExpired {
			t.Fatalf("event reason = %q, want %q", ev.Reason, SessionExpired)
		}
		if ev.NoticeDelay != 1500*time.Millisecond {
			t.Fatalf("event notice delay = %v, want 1.5s", ev.NoticeDelay)
		}
	default:
		t.Fatal("expected a session-terminated event")
	}
}

func TestRetriedRequestFailsFinal(t *testing.T) {
	// The protected route 401s unconditionally: even after a successful
	// refresh the replay fails, and it must fail terminally, not loop.
	mux := http.NewServeMux()
	var refreshCalls atomic.Int64
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh-token"})
	})
	var protectedCalls atomic.Int64
	mux.HandleFunc("GET /api/articulos", func(w http.ResponseWriter, r *http.Request) {
		protectedCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": "sin permiso"})
	})

	client, store, _, cleanup := newTestClient(t, mux)
	defer cleanup()

	ctx := context.Background()
	store.SetTokens(ctx, "stale-token", "refresh-1")

	_, err := client.Articulos(ctx, ArticuloFiltros{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if errors.Is(err, ErrSessionExpired) {
		t.Fatalf("second 401 must not be reported as session-expired: %v", err)
	}
	if calls := refreshCalls.Load(); calls != 1 {
		t.Fatalf("expected one refresh call, got %d", calls)
	}
	if calls := protectedCalls.Load(); calls != 2 {
		t.Fatalf("expected original + one replay, got %d calls", calls)
	}
}

func TestMissingRefreshTokenExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	var refreshCalls atomic.Int64
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	mux.HandleFunc("GET /api/articulos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, store, _, cleanup := newTestClient(t, mux)
	defer cleanup()

	ctx := context.Background()
	store.SetTokens(ctx, "stale-token", "")

	_, err := client.Articulos(ctx, ArticuloFiltros{})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected session-expired, got %v", err)
	}
	if !errors.Is(err, ErrNoRefreshToken) {
		t.Fatalf("expected no-refresh-token cause, got %v", err)
	}
	if calls := refreshCalls.Load(); calls != 0 {
		t.Fatalf("refresh endpoint must not be called without a refresh token, got %d calls", calls)
	}
	if _, ok := store.GetAccessToken(ctx); ok {
		t.Fatal("access token should be cleared")
	}
}

func TestServerErrorPassesThroughWithNotice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/articulos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, store, notifier, cleanup := newTestClient(t, mux)
	defer cleanup()

	ctx := context.Background()
	store.SetTokens(ctx, "tok", "refresh-1")

	_, err := client.Articulos(ctx, ArticuloFiltros{})
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	// 5xx never touches credentials.
	if _, ok := store.GetAccessToken(ctx); !ok {
		t.Fatal("access token should survive a 5xx")
	}

	notice := waitNotice(t, notifier)
	if notice.Level != NoticeError || notice.Message != msgServerError {
		t.Fatalf("unexpected notice %+v", notice)
	}
	if notice.Duration != 7*time.Second {
		t.Fatalf("error notice duration = %v, want 7s", notice.Duration)
	}
}

func TestConnectionErrorDoesNotClearCredentials(t *testing.T) {
	backend := newRefreshBackend()
	client, store, _, cleanup := newTestClient(t, backend)
	// Close the server up front so every call fails at the transport.
	cleanup()

	ctx := context.Background()
	store.SetTokens(ctx, "tok", "refresh-1")

	_, err := client.Articulos(ctx, ArticuloFiltros{})
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if errors.Is(err, ErrSessionExpired) {
		t.Fatalf("transport failure must not expire the session: %v", err)
	}
	if _, ok := store.GetAccessToken(ctx); !ok {
		t.Fatal("access token should survive a connection failure")
	}
	if calls := backend.refreshCalls.Load(); calls != 0 {
		t.Fatalf("transport failure must not trigger the refresh path, got %d calls", calls)
	}
}
