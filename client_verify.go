package chalito

import (
	"context"
	"net/http"
)

type verifyResponse struct {
	Valid   bool     `json:"valid"`
	Usuario *Profile `json:"usuario"`
}

// Verify restores a stored session on startup. With no stored access token it
// moves straight to unauthenticated without any network call. With one, it
// asks the server; a rejected or unreachable verification clears storage and
// lands on unauthenticated silently — a fresh visitor must not see a spurious
// failure message, so this path never sets [Client.LastError] and never
// notifies.
//
// It returns true when a session was restored.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	if c == nil || c.gateway == nil {
		return false, ErrClientNotReady
	}

	if _, ok := c.store.GetAccessToken(ctx); !ok {
		c.mu.Lock()
		c.state = StateUnauthenticated
		c.profile = nil
		c.lastError = ""
		c.mu.Unlock()
		return false, nil
	}

	c.mu.Lock()
	c.state = StateVerifying
	c.mu.Unlock()

	// The verify call rides the gateway like any authenticated request, so a
	// merely expired access token is recovered by the refresh path rather
	// than ending the session.
	var resp verifyResponse
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.VerifyPath,
	}, &resp)

	if err != nil || !resp.Valid || resp.Usuario == nil {
		c.store.ClearTokens(ctx)
		c.mu.Lock()
		c.state = StateUnauthenticated
		c.profile = nil
		c.lastError = ""
		c.mu.Unlock()
		c.metrics.Inc(MetricVerifyFailure)
		return false, nil
	}

	c.store.SetProfile(ctx, *resp.Usuario)
	c.setAuthenticated(*resp.Usuario)
	c.metrics.Inc(MetricVerifySuccess)
	return true, nil
}
