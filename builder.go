package chalito

import (
	"errors"
	"net/http"

	"github.com/elchalito/chalito-go/credstore"
)

// Builder assembles a [Client]. Zero or more WithX calls, then Build exactly
// once.
type Builder struct {
	config Config

	httpc    *http.Client
	store    credstore.Store
	notifier Notifier

	built bool
}

// New creates a Builder with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL overrides the backend address without replacing the rest of the
// configuration.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithHTTPClient supplies the HTTP client used for every call. When omitted,
// Build creates one bounded by the configured timeout.
func (b *Builder) WithHTTPClient(httpc *http.Client) *Builder {
	b.httpc = httpc
	return b
}

// WithCredentialStore supplies the credential store, overriding the backend
// selected by [StorageConfig].
func (b *Builder) WithCredentialStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithNotifier supplies the notification sink. When omitted, notices are
// dropped.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires the client. The initial state
// is unauthenticated; call [Client.Verify] to restore a stored session.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		switch cfg.Storage.Backend {
		case StorageMemory:
			store = credstore.NewMemory()
		default:
			store = credstore.Open(cfg.Storage.Path)
		}
	}

	httpc := b.httpc
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.API.Timeout}
	}

	metrics := NewMetrics(cfg.Metrics)
	notify := newNotifyDispatcher(cfg.Notify, b.notifier)

	client := &Client{
		config:  cfg,
		store:   store,
		notify:  notify,
		metrics: metrics,
		state:   StateUnauthenticated,
	}
	client.gateway = newGateway(cfg.API, cfg.Session, httpc, store, notify, metrics)
	client.gateway.onExpired = client.forceUnauthenticated

	b.built = true

	return client, nil
}
