package utils

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	m.Observe("GET /health", 200, 10*time.Millisecond)
	m.Observe("GET /health", 200, 20*time.Millisecond)
	m.Observe("POST /api/v1/bookings", 500, 30*time.Millisecond)

	snap := m.Snapshot()
	if snap.RequestsTotal != 3 {
		t.Fatalf("requestsTotal = %d, want 3", snap.RequestsTotal)
	}
	if snap.RequestsByRoute["GET /health"] != 2 {
		t.Errorf("GET /health count = %d, want 2", snap.RequestsByRoute["GET /health"])
	}
	if snap.ErrorsTotal != 1 {
		t.Errorf("errorsTotal = %d, want 1", snap.ErrorsTotal)
	}
	if snap.AvgLatencyMs != 20 {
		t.Errorf("avgLatencyMs = %v, want 20", snap.AvgLatencyMs)
	}
	if snap.ErrorRate != 0.3333 {
		t.Errorf("errorRate = %v, want 0.3333", snap.ErrorRate)
	}
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.Observe("GET /a", 200, time.Millisecond)
	snap := m.Snapshot()
	snap.RequestsByRoute["GET /a"] = 99
	if m.Snapshot().RequestsByRoute["GET /a"] != 1 {
		t.Error("snapshot map aliases registry state")
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.Observe("GET /a", 503, time.Millisecond)
	m.Reset()
	snap := m.Snapshot()
	if snap.RequestsTotal != 0 || snap.ErrorsTotal != 0 || len(snap.RequestsByRoute) != 0 || snap.ErrorRate != 0 {
		t.Errorf("unexpected snapshot after reset: %+v", snap)
	}
}

func TestMetricsConcurrentObserve(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Observe("GET /x", 200, time.Millisecond)
		}()
	}
	wg.Wait()
	if got := m.Snapshot().RequestsTotal; got != 50 {
		t.Errorf("requestsTotal = %d, want 50", got)
	}
}
