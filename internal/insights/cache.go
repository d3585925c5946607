package insights

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// CacheKey is the key-value entry the serialized cache record lives under.
const CacheKey = "insights"

// DefaultTTL is how long a fetched payload stays fresh.
const DefaultTTL = 7 * 24 * time.Hour

// KV is the slice of the storage collaborator the cache manager needs. The
// record is one serialized value, so a write is atomic by construction.
type KV interface {
	GetValue(ctx context.Context, key string) (string, error)
	PutValue(ctx context.Context, key, value string) error
}

// record is the persisted cache shape: the payload and its fetch time in a
// single value.
type record struct {
	Payload   Payload   `json:"payload"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Result is what the manager hands back to the UI layer. Degraded is set when
// the remote call failed and the payload is a stale-cache or static fallback;
// it never blocks rendering.
type Result struct {
	Payload   Payload   `json:"payload"`
	FetchedAt time.Time `json:"fetchedAt,omitzero"`
	Source    string    `json:"source"` // "cache", "remote" or "fallback"
	Stale     bool      `json:"stale,omitempty"`
	Degraded  bool      `json:"degraded,omitempty"`
}

// Manager coordinates the cache and the remote client. Overlapping loads
// share a single in-flight fetch per cache key; a force-refresh bumps the
// generation counter so a superseded fetch never overwrites a newer write.
type Manager struct {
	client Client
	kv     KV
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu  sync.Mutex
	gen uint64
}

// NewManager wires the cache manager. A zero ttl means DefaultTTL.
func NewManager(client Client, kv KV, ttl time.Duration) *Manager {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		client: client,
		kv:     kv,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Load serves the cached payload when it is younger than the TTL, otherwise
// fetches a fresh one. All failures are recovered into a degraded Result.
func (m *Manager) Load(ctx context.Context, req Request) Result {
	if rec, ok := m.read(ctx); ok && m.now().Sub(rec.FetchedAt) < m.ttl {
		log.Debug().Time("fetchedAt", rec.FetchedAt).Msg("Serving fresh insights from cache")
		return Result{Payload: rec.Payload, FetchedAt: rec.FetchedAt, Source: "cache"}
	}
	return m.refresh(ctx, req, false)
}

// ForceRefresh always invokes the remote service, regardless of cache state.
func (m *Manager) ForceRefresh(ctx context.Context, req Request) Result {
	return m.refresh(ctx, req, true)
}

func (m *Manager) refresh(ctx context.Context, req Request, force bool) Result {
	if force {
		m.mu.Lock()
		m.gen++
		m.mu.Unlock()
		// Drop any coalesced fetch so this refresh really hits the service.
		m.group.Forget(CacheKey)
	}

	v, err, _ := m.group.Do(CacheKey, func() (any, error) {
		m.mu.Lock()
		startGen := m.gen
		m.mu.Unlock()

		payload, err := m.client.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		rec := record{Payload: *payload, FetchedAt: m.now()}

		m.mu.Lock()
		current := m.gen == startGen
		m.mu.Unlock()
		if current {
			m.write(ctx, rec)
		} else {
			log.Debug().Msg("Discarding superseded insights fetch")
		}
		return rec, nil
	})

	if err != nil {
		log.Warn().Err(err).Msg("Insights fetch failed, falling back")
		if rec, ok := m.read(ctx); ok {
			return Result{
				Payload:   rec.Payload,
				FetchedAt: rec.FetchedAt,
				Source:    "cache",
				Stale:     m.now().Sub(rec.FetchedAt) >= m.ttl,
				Degraded:  true,
			}
		}
		return Result{Payload: DefaultPayload(), Source: "fallback", Degraded: true}
	}

	rec := v.(record)
	return Result{Payload: rec.Payload, FetchedAt: rec.FetchedAt, Source: "remote"}
}

func (m *Manager) read(ctx context.Context) (record, bool) {
	value, err := m.kv.GetValue(ctx, CacheKey)
	if err != nil {
		return record{}, false
	}
	var rec record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable insights cache")
		return record{}, false
	}
	return rec, true
}

func (m *Manager) write(ctx context.Context, rec record) {
	value, err := json.Marshal(rec)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode insights cache")
		return
	}
	if err := m.kv.PutValue(ctx, CacheKey, string(value)); err != nil {
		log.Warn().Err(err).Msg("Failed to persist insights cache")
	}
}
