package chalito

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines the full client configuration. Instances are intended to be
// configured during initialization and then treated as immutable.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Session SessionConfig
	Notify  NotifyConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig holds the backend address, endpoint paths, and the per-request
// timeout. Paths default to the backend's published routes; they are
// configuration, not contract.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration

	LoginPath          string
	LogoutPath         string
	RefreshPath        string
	VerifyPath         string
	ProfilePath        string
	ChangePasswordPath string

	ArticulosPath string
	PedidosPath   string
	VentasPath    string
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageBackend selects the credential store built by default. A store set
// through [Builder.WithCredentialStore] overrides this selection.
type StorageBackend string

const (
	// StorageBolt persists credentials in a local bbolt file (default).
	StorageBolt StorageBackend = "bolt"
	// StorageMemory keeps credentials for the process lifetime only.
	StorageMemory StorageBackend = "memory"
)

// StorageConfig controls credential persistence.
type StorageConfig struct {
	Backend StorageBackend
	// Path is the bbolt file location for StorageBolt.
	Path string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig tunes session lifecycle behavior.
type SessionConfig struct {
	// EarlyRefreshWindow, when > 0, refreshes the access token before a
	// request whenever its expiry claim falls inside the window, avoiding a
	// guaranteed 401 round trip. Zero disables the lookahead; opaque tokens
	// always fall back to the 401 path.
	EarlyRefreshWindow time.Duration
	// ExpiredNoticeDelay is carried on session-terminated events so hosts can
	// keep the expiry notification visible before navigating away.
	ExpiredNoticeDelay time.Duration
}

/*
====================================
NOTIFY CONFIG
====================================
*/

// NotifyConfig controls the asynchronous notification dispatcher.
type NotifyConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:            "http://localhost:3000",
			Timeout:            10 * time.Second,
			LoginPath:          "/auth/login",
			LogoutPath:         "/auth/logout",
			RefreshPath:        "/auth/refresh-token",
			VerifyPath:         "/auth/verify",
			ProfilePath:        "/auth/profile",
			ChangePasswordPath: "/auth/change-password",
			ArticulosPath:      "/api/articulos",
			PedidosPath:        "/api/pedidos",
			VentasPath:         "/api/ventas",
		},
		Storage: StorageConfig{
			Backend: StorageBolt,
			Path:    "chalito.db",
		},
		Session: SessionConfig{
			EarlyRefreshWindow: 0,
			ExpiredNoticeDelay: 1500 * time.Millisecond,
		},
		Notify: NotifyConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration for values the client cannot operate on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("API BaseURL must be an absolute URL")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API Timeout must be > 0")
	}
	for _, p := range []string{
		c.API.LoginPath, c.API.LogoutPath, c.API.RefreshPath,
		c.API.VerifyPath, c.API.ProfilePath, c.API.ChangePasswordPath,
		c.API.ArticulosPath, c.API.PedidosPath, c.API.VentasPath,
	} {
		if p == "" || !strings.HasPrefix(p, "/") {
			return errors.New("API endpoint paths must be non-empty and start with /")
		}
	}

	switch c.Storage.Backend {
	case StorageBolt:
		if c.Storage.Path == "" {
			return errors.New("Storage Path is required for the bolt backend")
		}
	case StorageMemory:
		// valid
	default:
		return errors.New("Storage Backend must be 'bolt' or 'memory'")
	}

	if c.Session.EarlyRefreshWindow < 0 {
		return errors.New("Session EarlyRefreshWindow must be >= 0")
	}
	if c.Session.ExpiredNoticeDelay < 0 {
		return errors.New("Session ExpiredNoticeDelay must be >= 0")
	}

	if c.Notify.Enabled && c.Notify.BufferSize <= 0 {
		return errors.New("Notify BufferSize must be > 0 when notifications are enabled")
	}

	return nil
}
