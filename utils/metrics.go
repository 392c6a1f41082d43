package utils

import (
	"math"
	"sync"
	"time"
)

// MetricsSnapshot is a point-in-time copy of the request counters.
type MetricsSnapshot struct {
	RequestsTotal   int64            `json:"requestsTotal"`
	RequestsByRoute map[string]int64 `json:"requestsByRoute"`
	ErrorsTotal     int64            `json:"errorsTotal"`
	AvgLatencyMs    float64          `json:"avgLatencyMs"`
	ErrorRate       float64          `json:"errorRate"`
}

// Metrics holds in-process request counters. The zero value is not usable;
// call NewMetrics.
type Metrics struct {
	mu      sync.Mutex
	total   int64
	byRoute map[string]int64
	errors  int64
	avgMs   float64
}

func NewMetrics() *Metrics {
	return &Metrics{byRoute: make(map[string]int64)}
}

// Observe records one finished request. route is "METHOD path".
func (m *Metrics) Observe(route string, status int, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	m.byRoute[route]++
	ms := float64(latency) / float64(time.Millisecond)
	m.avgMs = round((m.avgMs*float64(m.total-1)+ms)/float64(m.total), 2)
	if status >= 500 {
		m.errors++
	}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	routes := make(map[string]int64, len(m.byRoute))
	for k, v := range m.byRoute {
		routes[k] = v
	}
	var rate float64
	if m.total > 0 {
		rate = round(float64(m.errors)/float64(m.total), 4)
	}
	return MetricsSnapshot{
		RequestsTotal:   m.total,
		RequestsByRoute: routes,
		ErrorsTotal:     m.errors,
		AvgLatencyMs:    m.avgMs,
		ErrorRate:       rate,
	}
}

func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total, m.errors, m.avgMs = 0, 0, 0
	m.byRoute = make(map[string]int64)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
