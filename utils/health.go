package utils

import (
	"context"
	"sync"
	"time"
)

// Pinger is anything that can report its own reachability.
type Pinger func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     *bool     `json:"redis,omitempty"` // nil when Redis is not configured
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor periodically pings dependencies and keeps the last result.
type HealthMonitor struct {
	mongo    Pinger
	redis    Pinger
	interval time.Duration

	mu      sync.RWMutex
	current HealthStatus
}

// NewHealthMonitor builds a monitor. redis may be nil.
func NewHealthMonitor(mongo, redis Pinger, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{mongo: mongo, redis: redis, interval: interval}
}

// Status returns latest stored health snapshot.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Check pings every dependency once and stores the result.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if h.mongo != nil {
		status.Mongo = h.mongo(ctx) == nil
	}
	if h.redis != nil {
		ok := h.redis(ctx) == nil
		status.Redis = &ok
	}

	h.mu.Lock()
	h.current = status
	h.mu.Unlock()
	return status
}

// Start checks immediately and then on every tick until ctx is done.
func (h *HealthMonitor) Start(ctx context.Context) {
	h.Check(ctx)
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Check(ctx)
			}
		}
	}()
}
