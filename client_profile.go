package chalito

import (
	"context"
	"net/http"
)

type profileResponse struct {
	Usuario *Profile `json:"usuario"`
}

// FetchProfile retrieves the current user record from the backend and refreshes
// the cached copy. The cached profile keeps serving reads if the call fails.
func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	if c == nil || c.gateway == nil {
		return Profile{}, ErrClientNotReady
	}

	var resp profileResponse
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   c.config.API.ProfilePath,
	}, &resp)
	if err != nil {
		return Profile{}, err
	}
	if resp.Usuario == nil {
		return Profile{}, ErrInvalidResponse
	}

	c.updateProfile(ctx, *resp.Usuario)
	return *resp.Usuario, nil
}

// ChangePassword updates the account password. The session stays valid; the
// backend does not rotate tokens on a password change.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if c == nil || c.gateway == nil {
		return ErrClientNotReady
	}

	return c.gateway.do(ctx, apiRequest{
		method: http.MethodPut,
		path:   c.config.API.ChangePasswordPath,
		body: map[string]string{
			"currentPassword": currentPassword,
			"newPassword":     newPassword,
		},
	}, nil)
}
