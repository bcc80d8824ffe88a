package chalito

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/elchalito/chalito-go/credstore"
	"github.com/elchalito/chalito-go/token"
)

// gateway is the single choke point for outbound calls. It owns the only
// piece of writer-contended state in the client: the "refresh in flight"
// flag and its FIFO queue of suspended callers.
type gateway struct {
	cfg     APIConfig
	session SessionConfig
	httpc   *http.Client
	store   credstore.Store
	notify  *notifyDispatcher
	metrics *Metrics

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error

	events    chan SessionEvent
	onExpired func()
}

type apiRequest struct {
	method string
	path   string
	query  url.Values
	body   any

	// noAuth marks login and refresh calls: no token injection and no
	// participation in the 401 recovery path.
	noAuth  bool
	retried bool
}

func newGateway(cfg APIConfig, session SessionConfig, httpc *http.Client, store credstore.Store, notify *notifyDispatcher, metrics *Metrics) *gateway {
	return &gateway{
		cfg:     cfg,
		session: session,
		httpc:   httpc,
		store:   store,
		notify:  notify,
		metrics: metrics,
		events:  make(chan SessionEvent, 4),
	}
}

// do executes req and decodes a 2xx body into out (when out is non-nil).
// A 401 on an eligible request is recovered through the single-flight
// refresh; all other failures propagate to the caller.
func (g *gateway) do(ctx context.Context, req apiRequest, out any) error {
	if !req.noAuth && g.session.EarlyRefreshWindow > 0 {
		if access, ok := g.store.GetAccessToken(ctx); ok && token.ExpiresWithin(access, g.session.EarlyRefreshWindow) {
			if err := g.awaitRefresh(ctx); err != nil {
				return err
			}
		}
	}

	status, body, err := g.send(ctx, req)
	if err != nil {
		g.metrics.Inc(MetricConnectionError)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if status == http.StatusUnauthorized && !req.noAuth {
		if req.retried {
			// Second 401 on the same request: final, no loop.
			return &APIError{Status: status, Mensaje: decodeMensaje(body)}
		}
		if err := g.awaitRefresh(ctx); err != nil {
			return err
		}
		req.retried = true
		g.metrics.Inc(MetricRequestRetried)
		return g.do(ctx, req, out)
	}

	if status >= 500 {
		g.metrics.Inc(MetricServerError)
		g.notify.showError(ctx, msgServerError, NotifyOptions{Duration: errorNoticeDuration})
		return &APIError{Status: status, Mensaje: decodeMensaje(body)}
	}

	if status < 200 || status > 299 {
		return &APIError{Status: status, Mensaje: decodeMensaje(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (g *gateway) send(ctx context.Context, req apiRequest) (int, []byte, error) {
	endpoint := strings.TrimSuffix(g.cfg.BaseURL, "/") + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var reader io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, reader)
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if !req.noAuth {
		if access, ok := g.store.GetAccessToken(ctx); ok {
			httpReq.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := g.httpc.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// awaitRefresh guarantees at most one refresh call per expiry event. The
// first caller becomes the refresher; everyone else suspends on a queue that
// is drained strictly in join order after the new token is durably stored.
func (g *gateway) awaitRefresh(ctx context.Context) error {
	g.mu.Lock()
	if g.refreshing {
		ch := make(chan error, 1)
		g.waiters = append(g.waiters, ch)
		g.mu.Unlock()
		g.metrics.Inc(MetricRefreshCoalesced)
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrConnection, ctx.Err())
		}
	}
	g.refreshing = true
	g.mu.Unlock()

	err := g.refresh(ctx)

	g.mu.Lock()
	waiters := g.waiters
	g.waiters = nil
	g.refreshing = false
	g.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}

type refreshResponse struct {
	AccessToken string             `json:"accessToken"`
	Usuario     *credstore.Profile `json:"usuario"`
}

func (g *gateway) refresh(ctx context.Context) error {
	refreshTok, ok := g.store.GetRefreshToken(ctx)
	if !ok {
		return g.expireSession(ctx, ErrNoRefreshToken)
	}

	// The refresh call goes through send directly: it must not re-enter the
	// 401 recovery path or raise the generic server-error notice.
	status, body, err := g.send(ctx, apiRequest{
		method: http.MethodPost,
		path:   g.cfg.RefreshPath,
		body:   map[string]string{"refreshToken": refreshTok},
		noAuth: true,
	})
	if err != nil {
		g.metrics.Inc(MetricConnectionError)
		return g.expireSession(ctx, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	if status < 200 || status > 299 {
		return g.expireSession(ctx, &APIError{Status: status, Mensaje: decodeMensaje(body)})
	}

	var resp refreshResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		return g.expireSession(ctx, ErrInvalidResponse)
	}

	// Store before releasing anyone: a replay must never observe the stale
	// token.
	g.store.SetTokens(ctx, resp.AccessToken, "")
	if resp.Usuario != nil {
		g.store.SetProfile(ctx, *resp.Usuario)
	}
	g.metrics.Inc(MetricRefreshSuccess)
	return nil
}

// expireSession is the terminal path: credentials cleared, user notified,
// session-terminated event emitted for the host to act on.
func (g *gateway) expireSession(ctx context.Context, cause error) error {
	g.store.ClearTokens(ctx)
	g.metrics.Inc(MetricRefreshFailure)
	g.metrics.Inc(MetricSessionExpired)
	g.notify.showError(ctx, msgSessionExpired, NotifyOptions{Duration: errorNoticeDuration})

	select {
	case g.events <- SessionEvent{Reason: SessionExpired, NoticeDelay: g.session.ExpiredNoticeDelay}:
	default:
	}
	if g.onExpired != nil {
		g.onExpired()
	}
	return errors.Join(ErrSessionExpired, cause)
}

func decodeMensaje(body []byte) string {
	var payload struct {
		Mensaje string `json:"mensaje"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Mensaje != "" {
		return payload.Mensaje
	}
	return payload.Message
}
