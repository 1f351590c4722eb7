// Package monitoring gathers dashboard usage counters for /api/stats.
package monitoring

import (
	"sync/atomic"
	"time"
)

// MetricsSnapshot holds a point-in-time view of dashboard activity.
type MetricsSnapshot struct {
	RecordCount    int       `json:"record_count"`
	Queries        int64     `json:"queries"`
	AvgQueryMillis float64   `json:"avg_query_millis"`
	Selections     int64     `json:"selections"`
	Exports        int64     `json:"exports"`
	ConnectedViews int64     `json:"connected_views"`
	CollectedAt    time.Time `json:"collected_at"`
}

// Collector accumulates counters from the HTTP and WebSocket layers.
// All methods are safe for concurrent use.
type Collector struct {
	queries    atomic.Int64
	queryNanos atomic.Int64
	selections atomic.Int64
	exports    atomic.Int64
	views      atomic.Int64
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordQuery notes one engine query and its duration.
func (c *Collector) RecordQuery(d time.Duration) {
	c.queries.Add(1)
	c.queryNanos.Add(int64(d))
}

// RecordSelection notes one selection transition.
func (c *Collector) RecordSelection() { c.selections.Add(1) }

// RecordExport notes one export download.
func (c *Collector) RecordExport() { c.exports.Add(1) }

// ViewConnected notes a view attaching to the sync channel.
func (c *Collector) ViewConnected() { c.views.Add(1) }

// ViewDisconnected notes a view leaving the sync channel.
func (c *Collector) ViewDisconnected() { c.views.Add(-1) }

// Collect returns a snapshot. recordCount is supplied by the caller since the
// store owns the collection.
func (c *Collector) Collect(recordCount int) MetricsSnapshot {
	queries := c.queries.Load()
	var avg float64
	if queries > 0 {
		avg = float64(c.queryNanos.Load()) / float64(queries) / float64(time.Millisecond)
	}
	return MetricsSnapshot{
		RecordCount:    recordCount,
		Queries:        queries,
		AvgQueryMillis: avg,
		Selections:     c.selections.Load(),
		Exports:        c.exports.Load(),
		ConnectedViews: c.views.Load(),
		CollectedAt:    time.Now().UTC(),
	}
}
