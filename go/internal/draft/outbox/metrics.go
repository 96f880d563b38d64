package outbox

import (
	"sync"
	"time"
)

// MetricsCollector receives relay measurements
type MetricsCollector interface {
	RecordEventProcessed(eventType string, success bool, duration time.Duration)
	RecordBatchProcessed(count int, duration time.Duration)
	RecordPublishAttempt(eventType string, attempt int, success bool)
}

// NoOpMetricsCollector discards everything
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordEventProcessed(string, bool, time.Duration) {}
func (NoOpMetricsCollector) RecordBatchProcessed(int, time.Duration)          {}
func (NoOpMetricsCollector) RecordPublishAttempt(string, int, bool)           {}

// Counters keeps in-process totals for the relay health endpoint
type Counters struct {
	mu            sync.Mutex
	processed     map[string]uint64
	failed        map[string]uint64
	retries       uint64
	batches       uint64
	lastEventAt   time.Time
	lastBatchSize int
	lastBatchTook time.Duration
}

// NewCounters creates an empty collector
func NewCounters() *Counters {
	return &Counters{
		processed: make(map[string]uint64),
		failed:    make(map[string]uint64),
	}
}

func (c *Counters) RecordEventProcessed(eventType string, success bool, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if success {
		c.processed[eventType]++
		c.lastEventAt = time.Now()
	} else {
		c.failed[eventType]++
	}
}

func (c *Counters) RecordBatchProcessed(count int, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches++
	c.lastBatchSize = count
	c.lastBatchTook = duration
}

func (c *Counters) RecordPublishAttempt(_ string, attempt int, _ bool) {
	if attempt <= 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retries++
}

// CounterSnapshot is a point-in-time copy of Counters
type CounterSnapshot struct {
	Processed     map[string]uint64 `json:"processed"`
	Failed        map[string]uint64 `json:"failed"`
	Retries       uint64            `json:"retries"`
	Sweeps        uint64            `json:"sweeps"`
	LastEventAt   time.Time         `json:"last_event_at"`
	LastSweepSize int               `json:"last_sweep_size"`
	LastSweepTook time.Duration     `json:"last_sweep_took"`
}

// Snapshot copies the current totals
func (c *Counters) Snapshot() CounterSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := CounterSnapshot{
		Processed:     make(map[string]uint64, len(c.processed)),
		Failed:        make(map[string]uint64, len(c.failed)),
		Retries:       c.retries,
		Sweeps:        c.batches,
		LastEventAt:   c.lastEventAt,
		LastSweepSize: c.lastBatchSize,
		LastSweepTook: c.lastBatchTook,
	}
	for k, v := range c.processed {
		s.Processed[k] = v
	}
	for k, v := range c.failed {
		s.Failed[k] = v
	}
	return s
}
