package chalito

import (
	"context"
	"errors"
	"log"
	"net/http"
)

type loginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	Usuario      *Profile `json:"usuario"`
	ExpiresIn    int      `json:"expiresIn"`
}

// Login authenticates the given credentials. On success the tokens and
// profile are stored, the state becomes authenticated, and the failed-login
// counter resets. On failure the state returns to unauthenticated, the
// counter increments, and the error message stays exposed through
// [Client.LastError] until cleared.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	if c == nil || c.gateway == nil {
		return LoginResult{}, ErrClientNotReady
	}

	c.mu.Lock()
	c.state = StateLoginInProgress
	c.lastError = ""
	c.mu.Unlock()

	var resp loginResponse
	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   c.config.API.LoginPath,
		body: map[string]any{
			"username": req.Username,
			"password": req.Password,
			"remember": req.Remember,
		},
		noAuth: true,
	}, &resp)
	if err != nil {
		return LoginResult{}, c.failLogin(ctx, err)
	}
	if resp.Token == "" || resp.Usuario == nil {
		return LoginResult{}, c.failLogin(ctx, ErrInvalidResponse)
	}

	c.store.SetTokens(ctx, resp.Token, resp.RefreshToken)
	c.store.SetProfile(ctx, *resp.Usuario)
	c.setAuthenticated(*resp.Usuario)

	c.metrics.Inc(MetricLoginSuccess)
	c.notify.showSuccess(ctx, msgWelcomePrefix+resp.Usuario.Nombre+"!", NotifyOptions{Duration: welcomeNoticeDuration})

	return LoginResult{User: *resp.Usuario, ExpiresIn: resp.ExpiresIn}, nil
}

func (c *Client) failLogin(ctx context.Context, cause error) error {
	message := loginErrorMessage(cause)

	c.mu.Lock()
	c.state = StateUnauthenticated
	c.profile = nil
	c.lastError = message
	c.loginAttempts++
	c.mu.Unlock()

	c.metrics.Inc(MetricLoginFailure)
	c.notify.showError(ctx, message, NotifyOptions{Duration: errorNoticeDuration})

	var apiErr *APIError
	if errors.As(cause, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest) {
		return errors.Join(ErrInvalidCredentials, cause)
	}
	return cause
}

// loginErrorMessage prefers the backend's mensaje over the generic
// connection-failure copy.
func loginErrorMessage(cause error) string {
	var apiErr *APIError
	if errors.As(cause, &apiErr) && apiErr.Mensaje != "" {
		return apiErr.Mensaje
	}
	if errors.Is(cause, ErrInvalidResponse) {
		return msgInvalidResponse
	}
	return msgConnectionError
}

// Logout ends the session. The backend call is best-effort: local state is
// cleared regardless of its outcome.
func (c *Client) Logout(ctx context.Context) {
	if c == nil || c.gateway == nil {
		return
	}

	err := c.gateway.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   c.config.API.LogoutPath,
	}, nil)
	if err != nil {
		log.Print("chalito: logout call failed, clearing local session anyway")
	}

	c.store.ClearTokens(ctx)

	c.mu.Lock()
	c.state = StateUnauthenticated
	c.profile = nil
	c.lastError = ""
	c.loginAttempts = 0
	c.mu.Unlock()

	c.metrics.Inc(MetricLogout)
	c.notify.showInfo(ctx, msgLogoutOK, NotifyOptions{Duration: logoutNoticeDuration})
}
