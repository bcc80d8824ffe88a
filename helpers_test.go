package chalito

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elchalito/chalito-go/credstore"
)

// newTestClient wires a client against the given fake backend with an
// in-memory store and a channel notifier large enough that no notice is
// dropped.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *credstore.Memory, *ChannelNotifier, func()) {
	t.Helper()

	server := httptest.NewServer(handler)
	store := credstore.NewMemory()
	notifier := NewChannelNotifier(64)

	client, err := New().
		WithBaseURL(server.URL).
		WithCredentialStore(store).
		WithNotifier(notifier).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		server.Close()
		t.Fatalf("build client: %v", err)
	}

	cleanup := func() {
		client.Close()
		server.Close()
	}
	return client, store, notifier, cleanup
}

// waitNotice receives the next notice or fails the test.
func waitNotice(t *testing.T, notifier *ChannelNotifier) Notice {
	t.Helper()
	select {
	case n := <-notifier.Notices():
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a notice")
		return Notice{}
	}
}

// counter reads a metric from a fresh snapshot.
func counter(c *Client, id MetricID) uint64 {
	return c.MetricsSnapshot().Counters[id]
}
