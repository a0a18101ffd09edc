package metrics

import (
	"sync"
	"time"
)

// Collector keeps in-process request and error counters, rendered as JSON by
// the /metrics handler.
type Collector struct {
	mu        sync.Mutex
	startedAt time.Time
	requests  map[string]int64
	statuses  map[int]int64
	errors    map[string]int64
}

func NewCollector() *Collector {
	return &Collector{
		startedAt: time.Now().UTC(),
		requests:  make(map[string]int64),
		statuses:  make(map[int]int64),
		errors:    make(map[string]int64),
	}
}

func (c *Collector) ObserveRequest(method, path string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[method+" "+path]++
	c.statuses[status]++
}

func (c *Collector) ObserveError(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[code]++
}

type Snapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	Requests      map[string]int64 `json:"requests"`
	Statuses      map[int]int64    `json:"statuses"`
	Errors        map[string]int64 `json:"errors"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		Requests:      make(map[string]int64, len(c.requests)),
		Statuses:      make(map[int]int64, len(c.statuses)),
		Errors:        make(map[string]int64, len(c.errors)),
	}
	for key, count := range c.requests {
		snap.Requests[key] = count
	}
	for status, count := range c.statuses {
		snap.Statuses[status] = count
	}
	for code, count := range c.errors {
		snap.Errors[code] = count
	}
	return snap
}
