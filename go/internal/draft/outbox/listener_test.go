package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu     sync.Mutex
	events []OutboxEvent
	sent   map[uuid.UUID]int
}

func newFakeStore(events ...OutboxEvent) *fakeStore {
	return &fakeStore{events: events, sent: make(map[uuid.UUID]int)}
}

func (s *fakeStore) add(e OutboxEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *fakeStore) sentCount(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[id]
}

func (s *fakeStore) FetchOutboxByID(_ context.Context, id uuid.UUID) (*OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id && s.sent[id] == 0 {
			e := e
			return &e, nil
		}
	}
	return nil, ErrAlreadySent
}

func (s *fakeStore) FetchUnsentOutbox(_ context.Context, limit int32) ([]OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []OutboxEvent
	for _, e := range s.events {
		if s.sent[e.ID] == 0 && int32(len(out)) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) MarkOutboxSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[id]++
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []OutboxEvent
	failures  int // fail this many calls first
}

func (p *fakePublisher) Publish(_ context.Context, e OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("nats unavailable")
	}
	p.published = append(p.published, e)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func newEvent(eventType string) OutboxEvent {
	return OutboxEvent{
		ID:        uuid.New(),
		Season:    2024,
		EventType: eventType,
		Payload:   []byte(`{"season":2024}`),
		CreatedAt: time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC),
	}
}

func testConfig() ListenerConfig {
	cfg := DefaultListenerConfig()
	cfg.RetryDelay = time.Millisecond
	cfg.MaxRetries = 2
	return cfg
}

func TestListenerRelaysBacklogThenNotifications(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backlog := newEvent("PlayerSold")
	store := newFakeStore(backlog)
	pub := &fakePublisher{}
	counters := NewCounters()
	notify := make(chan *pq.Notification, 1)
	clock := clockwork.NewFakeClock()
	l := newListener(store, pub, counters, testConfig(), clock, notify)

	done := make(chan error, 1)
	go func() { done <- l.Start(ctx) }()

	require.Eventually(t, func() bool { return store.sentCount(backlog.ID) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, l.Active())

	live := newEvent("PlayerNominated")
	store.add(live)
	notify <- &pq.Notification{Channel: "draft_outbox_events", Extra: live.ID.String()}
	require.Eventually(t, func() bool { return store.sentCount(live.ID) == 1 }, time.Second, 5*time.Millisecond)

	// a duplicate notification is skipped
	notify <- &pq.Notification{Channel: "draft_outbox_events", Extra: live.ID.String()}
	// missed notification picked up by the sweep
	missed := newEvent("SaleUndone")
	store.add(missed)
	require.NoError(t, clock.BlockUntilContext(ctx, 2))
	clock.Advance(testConfig().FallbackInterval)
	require.Eventually(t, func() bool { return store.sentCount(missed.ID) == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 3, pub.count())
	assert.Equal(t, 1, store.sentCount(live.ID))

	snap := counters.Snapshot()
	assert.Equal(t, uint64(1), snap.Processed["PlayerSold"])
	assert.Equal(t, uint64(1), snap.Processed["PlayerNominated"])
	assert.GreaterOrEqual(t, snap.Sweeps, uint64(2))

	cancel()
	require.NoError(t, <-done)
	assert.False(t, l.Active())
}

func TestListenerReconnectTriggersSweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newFakeStore()
	pub := &fakePublisher{}
	notify := make(chan *pq.Notification)
	l := newListener(store, pub, nil, testConfig(), clockwork.NewFakeClock(), notify)
	go l.Start(ctx)

	e := newEvent("PositionUpdated")
	store.add(e)
	// pq sends nil after re-establishing the connection
	notify <- nil
	require.Eventually(t, func() bool { return store.sentCount(e.ID) == 1 }, time.Second, 5*time.Millisecond)
}

func TestHandleNotificationRejectsBadID(t *testing.T) {
	l := newListener(newFakeStore(), &fakePublisher{}, nil, testConfig(), clockwork.NewRealClock(), nil)
	assert.Error(t, l.handleNotification(context.Background(), "not-a-uuid"))
	assert.NoError(t, l.handleNotification(context.Background(), uuid.NewString()))
}

func TestPublishWithRetry(t *testing.T) {
	e := newEvent("PlayerSold")
	store := newFakeStore(e)
	pub := &fakePublisher{failures: 2}
	counters := NewCounters()
	l := newListener(store, pub, counters, testConfig(), clockwork.NewRealClock(), nil)

	require.NoError(t, l.relay(context.Background(), e))
	assert.Equal(t, 1, pub.count())
	assert.Equal(t, 1, store.sentCount(e.ID))
	assert.Equal(t, uint64(2), counters.Snapshot().Retries)
}

func TestPublishRetriesExhausted(t *testing.T) {
	e := newEvent("PlayerSold")
	store := newFakeStore(e)
	pub := &fakePublisher{failures: 10}
	counters := NewCounters()
	l := newListener(store, pub, counters, testConfig(), clockwork.NewRealClock(), nil)

	err := l.relay(context.Background(), e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 attempts")
	assert.Zero(t, store.sentCount(e.ID))
	assert.Equal(t, uint64(1), counters.Snapshot().Failed["PlayerSold"])

	// the next sweep tries again
	pub.mu.Lock()
	pub.failures = 0
	pub.mu.Unlock()
	require.NoError(t, l.processUnsent(context.Background()))
	assert.Equal(t, 1, store.sentCount(e.ID))
}

func TestPublishWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.RetryDelay = time.Hour
	l := newListener(newFakeStore(), &fakePublisher{failures: 1}, nil, cfg, clockwork.NewRealClock(), nil)
	assert.ErrorIs(t, l.publishWithRetry(ctx, newEvent("PlayerSold")), context.Canceled)
}
