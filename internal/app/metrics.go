package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/tasktable/internal/selection"
)

// Metrics counts table activity. Safe for concurrent use.
type Metrics struct {
	// Change counters
	selectChanges atomic.Uint64
	toggleAlls    atomic.Uint64
	sortChanges   atomic.Uint64

	// Failures
	rejected   atomic.Uint64 // operations refused by a controller
	hookErrors atomic.Uint64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64

	// Event processing
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// RecordSelection records a committed selection change.
func (m *Metrics) RecordSelection(kind selection.ActionKind) {
	m.selectChanges.Add(1)
	if kind == selection.ActionAll {
		m.toggleAlls.Add(1)
	}
}

// RecordSort records a committed sort change.
func (m *Metrics) RecordSort() {
	m.sortChanges.Add(1)
}

// RecordRejected records an operation a controller refused.
func (m *Metrics) RecordRejected() {
	m.rejected.Add(1)
}

// RecordHookError records a failed Lua hook call.
func (m *Metrics) RecordHookError() {
	m.hookErrors.Add(1)
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(duration.Nanoseconds())
}

// RecordEvent records event processing timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renderCount := m.renderCount.Load()
	eventCount := m.eventCount.Load()

	var avgRenderNs int64
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}

	var avgEventNs int64
	if eventCount > 0 {
		avgEventNs = m.eventTotalNs.Load() / int64(eventCount)
	}

	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		SelectChanges: m.selectChanges.Load(),
		ToggleAlls:    m.toggleAlls.Load(),
		SortChanges:   m.sortChanges.Load(),
		Rejected:      m.rejected.Load(),
		HookErrors:    m.hookErrors.Load(),
		RenderCount:   renderCount,
		AvgRenderNs:   avgRenderNs,
		EventCount:    eventCount,
		AvgEventNs:    avgEventNs,
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.selectChanges.Store(0)
	m.toggleAlls.Store(0)
	m.sortChanges.Store(0)
	m.rejected.Store(0)
	m.hookErrors.Store(0)
	m.renderCount.Store(0)
	m.renderTotalNs.Store(0)
	m.eventCount.Store(0)
	m.eventTotalNs.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	SelectChanges uint64
	ToggleAlls    uint64
	SortChanges   uint64
	Rejected      uint64
	HookErrors    uint64
	RenderCount   uint64
	AvgRenderNs   int64
	EventCount    uint64
	AvgEventNs    int64
}

// LogValues returns the snapshot as key/value pairs for a log record.
func (s MetricsSnapshot) LogValues() map[string]any {
	return map[string]any{
		"uptime":        s.Uptime.Round(time.Millisecond).String(),
		"selectChanges": s.SelectChanges,
		"toggleAlls":    s.ToggleAlls,
		"sortChanges":   s.SortChanges,
		"rejected":      s.Rejected,
		"hookErrors":    s.HookErrors,
		"renders":       s.RenderCount,
		"avgRenderUs":   s.AvgRenderNs / 1e3,
		"events":        s.EventCount,
	}
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
