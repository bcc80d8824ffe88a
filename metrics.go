package chalito

import "sync/atomic"

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID int

const (
	// MetricLoginSuccess counts completed logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected or failed logins.
	MetricLoginFailure
	// MetricLogout counts explicit logouts.
	MetricLogout
	// MetricVerifySuccess counts startup verifications that restored a session.
	MetricVerifySuccess
	// MetricVerifyFailure counts startup verifications that cleared storage.
	MetricVerifyFailure
	// MetricRefreshSuccess counts refresh calls that minted a new access token.
	MetricRefreshSuccess
	// MetricRefreshFailure counts refresh calls that terminated the session.
	MetricRefreshFailure
	// MetricRefreshCoalesced counts requests that joined an in-flight refresh
	// instead of starting their own.
	MetricRefreshCoalesced
	// MetricRequestRetried counts requests replayed after a refresh.
	MetricRequestRetried
	// MetricServerError counts 5xx responses.
	MetricServerError
	// MetricConnectionError counts transport failures and timeouts.
	MetricConnectionError
	// MetricSessionExpired counts terminal session expiries.
	MetricSessionExpired

	metricIDCount
)

// Metrics holds atomic counters. When disabled, all operations are no-ops.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// NewMetrics creates a Metrics instance configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments the given counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id < 0 || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot deep-copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: map[MetricID]uint64{}}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
