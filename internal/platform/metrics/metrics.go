package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts outbound calls against the record API.
type Collector struct {
	totalCalls      uint64
	failedCalls     uint64
	retriedCalls    uint64
	staleFallbacks  uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) RecordCall(err error, retries int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalCalls, 1)
	if err != nil {
		atomic.AddUint64(&c.failedCalls, 1)
	}
	if retries > 0 {
		atomic.AddUint64(&c.retriedCalls, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordStaleFallback() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.staleFallbacks, 1)
}

func (c *Collector) Snapshot() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	total := atomic.LoadUint64(&c.totalCalls)
	failed := atomic.LoadUint64(&c.failedCalls)
	retried := atomic.LoadUint64(&c.retriedCalls)
	stale := atomic.LoadUint64(&c.staleFallbacks)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"apiCallsTotal":       total,
		"apiCallsFailed":      failed,
		"apiCallsRetried":     retried,
		"staleFallbacksTotal": stale,
		"avgCallDurationMs":   avg,
		"totalCallDurationMs": totalMs,
	}
}
