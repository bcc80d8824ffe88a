package credstore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// Redis is a Store for deployments where several POS terminals share one
// session, keyed by a terminal ID. Reads are served from a local mirror that
// is refreshed from Redis on every lookup; when Redis is unreachable the
// mirror answers, so the terminal keeps its last-known credentials.
type Redis struct {
	client     *redis.Client
	prefix     string
	terminalID string
	mem        *Memory
}

// NewRedis creates a terminal-scoped Redis store. prefix namespaces all keys
// (e.g. "chalito"), terminalID isolates this terminal's bundle.
func NewRedis(client *redis.Client, prefix, terminalID string) *Redis {
	return &Redis{
		client:     client,
		prefix:     prefix,
		terminalID: terminalID,
		mem:        NewMemory(),
	}
}

func (r *Redis) key(name string) string {
	return r.prefix + ":" + r.terminalID + ":" + name
}

func (r *Redis) get(ctx context.Context, name string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	v, err := r.client.Get(ctx, r.key(name)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		return "", false
	}
	return v, true
}

// GetAccessToken returns the stored access token, if any.
func (r *Redis) GetAccessToken(ctx context.Context) (string, bool) {
	if v, ok := r.get(ctx, DefaultAccessTokenKey); ok {
		return v, true
	}
	return r.mem.GetAccessToken(ctx)
}

// GetRefreshToken returns the stored refresh token, if any.
func (r *Redis) GetRefreshToken(ctx context.Context) (string, bool) {
	if v, ok := r.get(ctx, DefaultRefreshTokenKey); ok {
		return v, true
	}
	return r.mem.GetRefreshToken(ctx)
}

// SetTokens overwrites the access token, and the refresh token only when
// refresh is non-empty.
func (r *Redis) SetTokens(ctx context.Context, access, refresh string) {
	r.mem.SetTokens(ctx, access, refresh)
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	pipe := r.client.TxPipeline()
	pipe.Set(opCtx, r.key(DefaultAccessTokenKey), access, 0)
	if refresh != "" {
		pipe.Set(opCtx, r.key(DefaultRefreshTokenKey), refresh, 0)
	}
	if _, err := pipe.Exec(opCtx); err != nil {
		log.Print("chalito: redis credential write failed, continuing in memory")
	}
}

// ClearTokens removes the whole bundle in one pipeline.
func (r *Redis) ClearTokens(ctx context.Context) {
	r.mem.ClearTokens(ctx)
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	err := r.client.Del(opCtx,
		r.key(DefaultAccessTokenKey),
		r.key(DefaultRefreshTokenKey),
		r.key(DefaultProfileKey),
	).Err()
	if err != nil {
		log.Print("chalito: redis credential clear failed")
	}
}

// GetProfile returns the cached profile, if any.
func (r *Redis) GetProfile(ctx context.Context) (Profile, bool) {
	if v, ok := r.get(ctx, DefaultProfileKey); ok {
		var p Profile
		if err := json.Unmarshal([]byte(v), &p); err == nil {
			return p, true
		}
	}
	return r.mem.GetProfile(ctx)
}

// SetProfile caches and persists the given profile.
func (r *Redis) SetProfile(ctx context.Context, p Profile) {
	r.mem.SetProfile(ctx, p)
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := r.client.Set(opCtx, r.key(DefaultProfileKey), raw, 0).Err(); err != nil {
		log.Print("chalito: redis profile write failed, continuing in memory")
	}
}
