package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ListenerConfig holds the relay settings
type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string        // channel the outbox trigger notifies
	FallbackInterval time.Duration // how often to sweep for missed events
	MaxRetries       int
	RetryDelay       time.Duration
	PingInterval     time.Duration
	BatchSize        int32 // max events per sweep
}

// DefaultListenerConfig returns default relay settings
func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    "draft_outbox_events",
		FallbackInterval: 30 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}

// Store is what the relay needs from the outbox table
type Store interface {
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}

// Listener relays outbox rows as they are notified, sweeping periodically for
// anything a notification missed
type Listener struct {
	store     Store
	publisher Publisher
	metrics   MetricsCollector
	cfg       ListenerConfig
	clock     clockwork.Clock

	pql    *pq.Listener
	notify <-chan *pq.Notification
	active atomic.Bool
}

// NewListener opens a LISTEN connection on cfg.NotifyChannel
func NewListener(store Store, publisher Publisher, metrics MetricsCollector, cfg ListenerConfig) (*Listener, error) {
	pql := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := pql.Listen(cfg.NotifyChannel); err != nil {
		pql.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	l := newListener(store, publisher, metrics, cfg, clockwork.NewRealClock(), pql.Notify)
	l.pql = pql
	return l, nil
}

func newListener(store Store, publisher Publisher, metrics MetricsCollector, cfg ListenerConfig, clock clockwork.Clock, notify <-chan *pq.Notification) *Listener {
	if metrics == nil {
		metrics = NoOpMetricsCollector{}
	}
	return &Listener{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		clock:     clock,
		notify:    notify,
	}
}

// Active reports whether Start is running
func (l *Listener) Active() bool {
	return l.active.Load()
}

// Start relays until ctx is done. Events left over from a previous run are
// swept immediately.
func (l *Listener) Start(ctx context.Context) error {
	l.active.Store(true)
	defer l.active.Store(false)

	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	pingTicker := l.clock.NewTicker(l.cfg.PingInterval)
	fallbackTicker := l.clock.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	if err := l.processUnsent(ctx); err != nil {
		log.Error().Err(err).Msg("failed to process unsent events")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.Stop()
		case note := <-l.notify:
			if note == nil {
				// connection was re-established; notifications may have been lost
				if err := l.processUnsent(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process unsent events")
				}
				continue
			}
			if err := l.handleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.Chan():
			if err := l.processUnsent(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process unsent events")
			}
		case <-pingTicker.Chan():
			if l.pql == nil {
				continue
			}
			if err := l.pql.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

// Stop closes the LISTEN connection
func (l *Listener) Stop() error {
	if l.pql == nil {
		return nil
	}
	return l.pql.Close()
}

// handleNotification relays the row named by a notification payload
func (l *Listener) handleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := l.store.FetchOutboxByID(ctx, id)
	if errors.Is(err, ErrAlreadySent) {
		log.Debug().Str("event_id", id.String()).Msg("event already relayed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch outbox event: %w", err)
	}

	return l.relay(ctx, *event)
}

// processUnsent relays every unsent row, oldest first
func (l *Listener) processUnsent(ctx context.Context) error {
	start := l.clock.Now()
	unsent, err := l.store.FetchUnsentOutbox(ctx, l.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	relayed := 0
	for _, event := range unsent {
		if err := l.relay(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to relay event")
			continue
		}
		relayed++
	}

	l.metrics.RecordBatchProcessed(relayed, l.clock.Since(start))
	if len(unsent) > 0 {
		log.Info().Int("unsent", len(unsent)).Int("relayed", relayed).Msg("swept outbox")
	}
	return nil
}

func (l *Listener) relay(ctx context.Context, event OutboxEvent) error {
	start := l.clock.Now()
	if err := l.publishWithRetry(ctx, event); err != nil {
		l.metrics.RecordEventProcessed(event.EventType, false, l.clock.Since(start))
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := l.store.MarkOutboxSent(ctx, event.ID); err != nil {
		l.metrics.RecordEventProcessed(event.EventType, false, l.clock.Since(start))
		return err
	}
	l.metrics.RecordEventProcessed(event.EventType, true, l.clock.Since(start))

	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Msg("published and marked event as sent")
	return nil
}

// publishWithRetry publishes with a linearly growing delay between attempts
func (l *Listener) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	var lastErr error

	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := l.cfg.RetryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.clock.After(delay):
			}
		}

		err := l.publisher.Publish(ctx, event)
		l.metrics.RecordPublishAttempt(event.EventType, attempt+1, err == nil)
		if err != nil {
			lastErr = err
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", l.cfg.MaxRetries+1, lastErr)
}
