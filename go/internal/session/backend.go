package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrMissing is returned by Backend.Get for an absent key
var ErrMissing = errors.New("session key missing")

// Backend is the key/value surface session state is kept in. Every write
// refreshes the key's TTL.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SIsMember(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
}

type memoryEntry struct {
	value     string
	set       map[string]struct{}
	expiresAt time.Time
}

// MemoryBackend keeps session state in process. Used by tests and the
// single-binary dev setup.
type MemoryBackend struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	ttl     time.Duration
	entries map[string]*memoryEntry
}

// NewMemoryBackend creates a memory backend; ttl <= 0 means keys never expire
func NewMemoryBackend(clock clockwork.Clock, ttl time.Duration) *MemoryBackend {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryBackend{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
	}
}

func (m *MemoryBackend) live(key string) *memoryEntry {
	e, ok := m.entries[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil
	}
	return e
}

func (m *MemoryBackend) touch(e *memoryEntry) {
	if m.ttl > 0 {
		e.expiresAt = m.clock.Now().Add(m.ttl)
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil || e.set != nil {
		return "", ErrMissing
	}
	return e.value, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &memoryEntry{value: value}
	m.touch(e)
	m.entries[key] = e
	return nil
}

func (m *MemoryBackend) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *MemoryBackend) SAdd(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil || e.set == nil {
		e = &memoryEntry{set: make(map[string]struct{})}
		m.entries[key] = e
	}
	for _, member := range members {
		e.set[member] = struct{}{}
	}
	m.touch(e)
	return nil
}

func (m *MemoryBackend) SRem(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil || e.set == nil {
		return nil
	}
	for _, member := range members {
		delete(e.set, member)
	}
	if len(e.set) == 0 {
		delete(m.entries, key)
		return nil
	}
	m.touch(e)
	return nil
}

func (m *MemoryBackend) SIsMember(_ context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil || e.set == nil {
		return false, nil
	}
	_, ok := e.set[member]
	return ok, nil
}

func (m *MemoryBackend) SMembers(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil || e.set == nil {
		return nil, nil
	}
	out := make([]string, 0, len(e.set))
	for member := range e.set {
		out = append(out, member)
	}
	sort.Strings(out)
	return out, nil
}
