package credstore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	bolt "go.etcd.io/bbolt"
)

var credBucket = []byte("credentials")

// Bolt is a durable single-file Store backed by bbolt. It is the default
// backend: the Go analog of the browser client's origin-scoped localStorage.
//
// Every read is served from an in-memory mirror loaded at open time; writes
// update the mirror first and then persist best-effort. A failing disk write
// therefore degrades to memory semantics instead of surfacing an error to the
// caller, matching the no-throw contract of the storage layer.
type Bolt struct {
	db   *bolt.DB
	mem  *Memory
	keys boltKeys
}

type boltKeys struct {
	access  []byte
	refresh []byte
	profile []byte
}

// NewBolt opens (or creates) the credential file at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	b := &Bolt{
		db:  db,
		mem: NewMemory(),
		keys: boltKeys{
			access:  []byte(DefaultAccessTokenKey),
			refresh: []byte(DefaultRefreshTokenKey),
			profile: []byte(DefaultProfileKey),
		},
	}
	if err := b.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// Open returns a durable store at path, or an in-memory store when the file
// cannot be opened. It never fails: storage trouble must not take the client
// down, only reduce persistence to the current process lifetime.
func Open(path string) Store {
	b, err := NewBolt(path)
	if err != nil {
		log.Print("chalito: credential file unavailable, using in-memory store")
		return NewMemory()
	}
	return b
}

func (b *Bolt) load() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(credBucket)
		if err != nil {
			return err
		}
		ctx := context.Background()
		if v := bkt.Get(b.keys.access); len(v) > 0 {
			b.mem.SetTokens(ctx, string(v), "")
		}
		if v := bkt.Get(b.keys.refresh); len(v) > 0 {
			b.mem.mu.Lock()
			b.mem.refresh = string(v)
			b.mem.hasRefresh = true
			b.mem.mu.Unlock()
		}
		if v := bkt.Get(b.keys.profile); len(v) > 0 {
			var p Profile
			if err := json.Unmarshal(v, &p); err == nil {
				b.mem.SetProfile(ctx, p)
			}
		}
		return nil
	})
}

// Close releases the underlying file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// GetAccessToken returns the stored access token, if any.
func (b *Bolt) GetAccessToken(ctx context.Context) (string, bool) {
	return b.mem.GetAccessToken(ctx)
}

// GetRefreshToken returns the stored refresh token, if any.
func (b *Bolt) GetRefreshToken(ctx context.Context) (string, bool) {
	return b.mem.GetRefreshToken(ctx)
}

// SetTokens overwrites the access token, and the refresh token only when
// refresh is non-empty.
func (b *Bolt) SetTokens(ctx context.Context, access, refresh string) {
	b.mem.SetTokens(ctx, access, refresh)
	b.persist(func(bkt *bolt.Bucket) error {
		if err := bkt.Put(b.keys.access, []byte(access)); err != nil {
			return err
		}
		if refresh != "" {
			return bkt.Put(b.keys.refresh, []byte(refresh))
		}
		return nil
	})
}

// ClearTokens removes the whole bundle in one transaction.
func (b *Bolt) ClearTokens(ctx context.Context) {
	b.mem.ClearTokens(ctx)
	b.persist(func(bkt *bolt.Bucket) error {
		if err := bkt.Delete(b.keys.access); err != nil {
			return err
		}
		if err := bkt.Delete(b.keys.refresh); err != nil {
			return err
		}
		return bkt.Delete(b.keys.profile)
	})
}

// GetProfile returns the cached profile, if any.
func (b *Bolt) GetProfile(ctx context.Context) (Profile, bool) {
	return b.mem.GetProfile(ctx)
}

// SetProfile caches and persists the given profile.
func (b *Bolt) SetProfile(ctx context.Context, p Profile) {
	b.mem.SetProfile(ctx, p)
	b.persist(func(bkt *bolt.Bucket) error {
		raw, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return bkt.Put(b.keys.profile, raw)
	})
}

func (b *Bolt) persist(fn func(*bolt.Bucket) error) {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(credBucket)
		if err != nil {
			return err
		}
		return fn(bkt)
	})
	if err != nil {
		log.Print("chalito: credential persist failed, continuing in memory")
	}
}
