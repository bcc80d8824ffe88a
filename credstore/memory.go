package credstore

import (
	"context"
	"sync"
)

// Memory is a process-lifetime Store. It is the degradation target when a
// durable backend is unavailable, and the zero-dependency choice for tests.
type Memory struct {
	mu         sync.RWMutex
	access     string
	refresh    string
	profile    Profile
	hasAccess  bool
	hasRefresh bool
	hasProfile bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// GetAccessToken returns the stored access token, if any.
func (m *Memory) GetAccessToken(context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access, m.hasAccess
}

// GetRefreshToken returns the stored refresh token, if any.
func (m *Memory) GetRefreshToken(context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh, m.hasRefresh
}

// SetTokens overwrites the access token. The refresh token is overwritten
// only when refresh is non-empty.
func (m *Memory) SetTokens(_ context.Context, access, refresh string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.hasAccess = access != ""
	if refresh != "" {
		m.refresh = refresh
		m.hasRefresh = true
	}
}

// ClearTokens removes access token, refresh token, and profile together.
func (m *Memory) ClearTokens(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.profile = Profile{}
	m.hasAccess = false
	m.hasRefresh = false
	m.hasProfile = false
}

// GetProfile returns the cached profile, if any.
func (m *Memory) GetProfile(context.Context) (Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile, m.hasProfile
}

// SetProfile caches the given profile.
func (m *Memory) SetProfile(_ context.Context, p Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
	m.hasProfile = true
}
