package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/apiutil"
)

// HealthStatus is the relay's self-report
type HealthStatus struct {
	Healthy           bool            `json:"healthy"`
	DatabaseConnected bool            `json:"database_connected"`
	NATSConnected     bool            `json:"nats_connected"`
	ListenerActive    bool            `json:"listener_active"`
	PendingEvents     int             `json:"pending_events"`
	Counters          CounterSnapshot `json:"counters"`
	Errors            []string        `json:"errors"`
}

// HealthChecker inspects the relay's dependencies
type HealthChecker struct {
	db        *sql.DB
	listener  *Listener
	counters  *Counters
	connected func() bool // nil when publishing without NATS
	threshold time.Duration
	clock     clockwork.Clock
}

// NewHealthChecker creates a checker. threshold is how long pending events
// may wait before the relay reports unhealthy.
func NewHealthChecker(db *sql.DB, listener *Listener, counters *Counters, connected func() bool, threshold time.Duration) *HealthChecker {
	return &HealthChecker{
		db:        db,
		listener:  listener,
		counters:  counters,
		connected: connected,
		threshold: threshold,
		clock:     clockwork.NewRealClock(),
	}
}

// Check runs every probe
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Healthy:  true,
		Counters: h.counters.Snapshot(),
		Errors:   []string{},
	}

	if err := h.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
	} else {
		status.DatabaseConnected = true
	}

	if h.connected != nil {
		status.NATSConnected = h.connected()
		if !status.NATSConnected {
			status.Healthy = false
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	status.ListenerActive = h.listener != nil && h.listener.Active()
	if !status.ListenerActive {
		status.Healthy = false
		status.Errors = append(status.Errors, "listener not active")
	}

	if status.DatabaseConnected {
		pending, err := h.countPendingEvents(ctx)
		if err != nil {
			status.Errors = append(status.Errors, fmt.Sprintf("failed to count pending events: %v", err))
		} else {
			status.PendingEvents = pending
		}
	}

	last := status.Counters.LastEventAt
	if status.PendingEvents > 0 && !last.IsZero() {
		if since := h.clock.Since(last); since > h.threshold {
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("no events relayed for %s", since.Round(time.Second)))
		}
	}

	return status
}

func (h *HealthChecker) countPendingEvents(ctx context.Context) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM draft_outbox WHERE sent_at IS NULL`).Scan(&count)
	return count, err
}

// ServeHTTP reports the status, 503 when unhealthy
func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	apiutil.WriteJSON(w, code, status)
}
