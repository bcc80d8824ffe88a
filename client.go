package chalito

import (
	"context"
	"sync"

	"github.com/elchalito/chalito-go/credstore"
)

// Client is the SDK entry point. Instances are configured through [Builder]
// and safe for concurrent use after [Builder.Build].
type Client struct {
	config  Config
	store   credstore.Store
	gateway *gateway
	notify  *notifyDispatcher
	metrics *Metrics

	mu            sync.Mutex
	state         AuthState
	profile       *Profile
	lastError     string
	loginAttempts int
}

// Close stops the notification dispatcher, draining buffered notices.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.notify != nil {
		c.notify.Close()
	}
}

// State returns the current authentication state.
func (c *Client) State() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentProfile returns the cached user profile of the active session.
func (c *Client) CurrentProfile() (Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return Profile{}, false
	}
	return *c.profile, true
}

// LastError returns the last login error message, empty when none is set.
// Startup verification failures never set it.
func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// ClearError resets the exposed login error message.
func (c *Client) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = ""
}

// LoginAttempts returns the consecutive failed-login counter. It resets to
// zero on a successful login.
func (c *Client) LoginAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginAttempts
}

// IsAuthenticated reports whether a verified session is active.
func (c *Client) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// SessionEvents returns the channel on which session-terminated events are
// delivered. The host reacts (typically by navigating to its login entry
// point after the event's NoticeDelay); the SDK itself never navigates.
func (c *Client) SessionEvents() <-chan SessionEvent {
	return c.gateway.events
}

// MetricsSnapshot returns a point-in-time copy of the client's counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

// NotificationsDropped reports notices discarded due to sink backpressure.
func (c *Client) NotificationsDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.notify.Dropped()
}

// forceUnauthenticated is the gateway's hook for the refresh-failure path: it
// moves the coordinator to unauthenticated from any state. The session-expired
// message travels through the notifier, not through lastError.
func (c *Client) forceUnauthenticated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateUnauthenticated
	c.profile = nil
}

func (c *Client) setAuthenticated(p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAuthenticated
	c.profile = &p
	c.lastError = ""
	c.loginAttempts = 0
}

// updateProfile refreshes the cached profile without touching the state
// machine. It is a no-op outside an authenticated session.
func (c *Client) updateProfile(ctx context.Context, p Profile) {
	c.store.SetProfile(ctx, p)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateAuthenticated {
		c.profile = &p
	}
}
