// Package metrics collects and exposes rackd runtime observability data.
//
// # Design rationale
//
// Two metric stores coexist in this package:
//
//  1. The in-process Metrics struct (per-command-kind counters + a minute
//     time series) for the lightweight JSON /metrics endpoint.
//  2. A Prometheus registry (prometheus.go) for scraping by external
//     monitoring systems (Grafana, Alertmanager, etc.).
//
// # Concurrency — hot path
//
// RecordCommand is called from the Command Actor's single goroutine after
// every Process call and must be fast. It uses atomic increments for
// global counters and dispatches a lightweight event onto a buffered
// channel (tsChan) for the time-series worker to process asynchronously,
// so the actor never blocks on a metrics lock between commands.
//
// # Invariants
//
//   - TotalCommands == SuccessCommands + FailedCommands.
//   - The time-series ring buffer holds at most timeSeriesBucketCount
//     buckets (24 * 60 = 1440 for the last 24 hours at 1-minute
//     granularity).
//   - tsChan capacity is 8192 events; events dropped when full are
//     counted in tsDroppedEvents for observability.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	timeSeriesBucketDuration = time.Minute
	timeSeriesBucketCount    = 24 * 60
)

// TimeSeriesBucket stores metrics for a single time bucket.
type TimeSeriesBucket struct {
	Timestamp    time.Time
	Commands     int64
	Errors       int64
	TotalLatency int64
	Count        int64 // for calculating avg
}

// Metrics collects and exposes rackd runtime metrics.
type Metrics struct {
	// Command Actor metrics
	TotalCommands   atomic.Int64
	SuccessCommands atomic.Int64
	FailedCommands  atomic.Int64

	// Latency metrics (in milliseconds)
	TotalLatencyMs atomic.Int64
	MinLatencyMs   atomic.Int64
	MaxLatencyMs   atomic.Int64

	// Projector metrics
	ProjectionsApplied atomic.Int64
	ProjectionFailures atomic.Int64

	// Tracker metrics
	LinkUpTransitions      atomic.Int64
	LinkDownTransitions    atomic.Int64
	GatewayObservations    atomic.Int64
	ReachabilityProbesSent atomic.Int64

	// Per-command-kind metrics
	cmdMetrics sync.Map // kind string -> *CommandMetrics

	// Time-series data (minute buckets for last 24 hours)
	timeSeriesMu    sync.RWMutex
	timeSeries      []*TimeSeriesBucket
	tsChan          chan timeSeriesEvent
	tsDroppedEvents atomic.Int64

	startTime time.Time
}

// timeSeriesEvent is sent over a channel to avoid write-lock contention on
// the hot path.
type timeSeriesEvent struct {
	durationMs int64
	isError    bool
}

// CommandMetrics tracks metrics for a single command kind (e.g.
// "CreateWan", "SetIpv4Params").
type CommandMetrics struct {
	Count     atomic.Int64
	Successes atomic.Int64
	Failures  atomic.Int64
	TotalMs   atomic.Int64
	MinMs     atomic.Int64
	MaxMs     atomic.Int64
}

// Global metrics instance.
var global = &Metrics{startTime: time.Now()}

func init() {
	global.MinLatencyMs.Store(int64(^uint64(0) >> 1)) // Max int64
	global.tsChan = make(chan timeSeriesEvent, 8192)
	global.initTimeSeries()
	go global.processTimeSeriesLoop()
}

// initTimeSeries initializes minute-level buckets for the last 24 hours.
func (m *Metrics) initTimeSeries() {
	m.timeSeriesMu.Lock()
	defer m.timeSeriesMu.Unlock()

	now := time.Now().Truncate(timeSeriesBucketDuration)
	m.timeSeries = make([]*TimeSeriesBucket, timeSeriesBucketCount)
	for i := 0; i < timeSeriesBucketCount; i++ {
		m.timeSeries[i] = &TimeSeriesBucket{
			Timestamp: now.Add(time.Duration(i-(timeSeriesBucketCount-1)) * timeSeriesBucketDuration),
		}
	}
}

// Global returns the global metrics instance.
func Global() *Metrics {
	return global
}

// StartTime returns the time when the metrics system was initialized.
func StartTime() time.Time {
	return global.startTime
}

// RecordCommand records one Command Actor Submit/Notify call completing,
// for Prometheus labels by command kind and outcome.
func (m *Metrics) RecordCommand(kind string, durationMs int64, success bool) {
	m.TotalCommands.Add(1)
	if success {
		m.SuccessCommands.Add(1)
	} else {
		m.FailedCommands.Add(1)
	}

	m.TotalLatencyMs.Add(durationMs)
	updateMin(&m.MinLatencyMs, durationMs)
	updateMax(&m.MaxLatencyMs, durationMs)

	cm := m.getCommandMetrics(kind)
	cm.Count.Add(1)
	if success {
		cm.Successes.Add(1)
	} else {
		cm.Failures.Add(1)
	}
	cm.TotalMs.Add(durationMs)
	updateMin(&cm.MinMs, durationMs)
	updateMax(&cm.MaxMs, durationMs)

	m.recordTimeSeries(durationMs, !success)
	RecordPrometheusCommand(kind, durationMs, success)
}

// recordTimeSeries enqueues a time-series event for async processing,
// avoiding a write-lock on the hot command path.
func (m *Metrics) recordTimeSeries(durationMs int64, isError bool) {
	select {
	case m.tsChan <- timeSeriesEvent{durationMs: durationMs, isError: isError}:
	default:
		m.tsDroppedEvents.Add(1)
	}
}

// processTimeSeriesLoop drains tsChan and applies events under a write
// lock.
func (m *Metrics) processTimeSeriesLoop() {
	for evt := range m.tsChan {
		m.applyTimeSeriesEvent(evt.durationMs, evt.isError)
	}
}

// applyTimeSeriesEvent updates the time-series buckets (must be called
// from a single goroutine).
func (m *Metrics) applyTimeSeriesEvent(durationMs int64, isError bool) {
	m.timeSeriesMu.Lock()
	defer m.timeSeriesMu.Unlock()

	now := time.Now().Truncate(timeSeriesBucketDuration)

	if len(m.timeSeries) > 0 {
		lastBucket := m.timeSeries[len(m.timeSeries)-1]
		bucketsDiff := int(now.Sub(lastBucket.Timestamp) / timeSeriesBucketDuration)

		if bucketsDiff > 0 {
			if bucketsDiff >= timeSeriesBucketCount {
				m.timeSeries = make([]*TimeSeriesBucket, timeSeriesBucketCount)
				for i := 0; i < timeSeriesBucketCount; i++ {
					m.timeSeries[i] = &TimeSeriesBucket{
						Timestamp: now.Add(time.Duration(i-(timeSeriesBucketCount-1)) * timeSeriesBucketDuration),
					}
				}
			} else {
				m.timeSeries = m.timeSeries[bucketsDiff:]
				for i := 0; i < bucketsDiff; i++ {
					m.timeSeries = append(m.timeSeries, &TimeSeriesBucket{
						Timestamp: lastBucket.Timestamp.Add(time.Duration(i+1) * timeSeriesBucketDuration),
					})
				}
			}
		}
	}

	if len(m.timeSeries) > 0 {
		bucket := m.timeSeries[len(m.timeSeries)-1]
		bucket.Commands++
		bucket.TotalLatency += durationMs
		bucket.Count++
		if isError {
			bucket.Errors++
		}
	}
}

// RecordProjectionApplied records a projector successfully updating a
// read model for one committed event.
func (m *Metrics) RecordProjectionApplied() {
	m.ProjectionsApplied.Add(1)
	RecordPrometheusProjectionApplied()
}

// RecordProjectionFailure records a projector returning an error (a fatal
// condition — see the daemon's panic-and-exit guard).
func (m *Metrics) RecordProjectionFailure() {
	m.ProjectionFailures.Add(1)
	RecordPrometheusProjectionFailure()
}

// RecordLinkUp records a tracked link transitioning into the Up status.
func (m *Metrics) RecordLinkUp() {
	m.LinkUpTransitions.Add(1)
	RecordPrometheusLinkTransition("up")
}

// RecordLinkDown records a tracked link transitioning into the Down
// status.
func (m *Metrics) RecordLinkDown() {
	m.LinkDownTransitions.Add(1)
	RecordPrometheusLinkTransition("down")
}

// RecordGatewayObservation records the gateway tracker reading a new
// gateway value from the eBPF maps.
func (m *Metrics) RecordGatewayObservation() {
	m.GatewayObservations.Add(1)
	RecordPrometheusGatewayObservation()
}

// RecordReachabilityProbe records one reachability probe round (both
// families) completing.
func (m *Metrics) RecordReachabilityProbe() {
	m.ReachabilityProbesSent.Add(1)
	RecordPrometheusReachabilityProbe()
}

func (m *Metrics) getCommandMetrics(kind string) *CommandMetrics {
	if v, ok := m.cmdMetrics.Load(kind); ok {
		return v.(*CommandMetrics)
	}

	cm := &CommandMetrics{}
	cm.MinMs.Store(int64(^uint64(0) >> 1))
	actual, _ := m.cmdMetrics.LoadOrStore(kind, cm)
	return actual.(*CommandMetrics)
}

// GetCommandMetrics returns the metrics for a specific command kind (or
// nil if none recorded yet).
func (m *Metrics) GetCommandMetrics(kind string) *CommandMetrics {
	if v, ok := m.cmdMetrics.Load(kind); ok {
		return v.(*CommandMetrics)
	}
	return nil
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() map[string]interface{} {
	total := m.TotalCommands.Load()
	avgLatency := float64(0)
	if total > 0 {
		avgLatency = float64(m.TotalLatencyMs.Load()) / float64(total)
	}

	minLatency := m.MinLatencyMs.Load()
	if minLatency == int64(^uint64(0)>>1) {
		minLatency = 0
	}

	return map[string]interface{}{
		"uptime_seconds": int64(time.Since(m.startTime).Seconds()),
		"commands": map[string]interface{}{
			"total":   total,
			"success": m.SuccessCommands.Load(),
			"failed":  m.FailedCommands.Load(),
		},
		"latency_ms": map[string]interface{}{
			"avg": avgLatency,
			"min": minLatency,
			"max": m.MaxLatencyMs.Load(),
		},
		"projections": map[string]interface{}{
			"applied": m.ProjectionsApplied.Load(),
			"failed":  m.ProjectionFailures.Load(),
		},
		"tracker": map[string]interface{}{
			"link_up":              m.LinkUpTransitions.Load(),
			"link_down":            m.LinkDownTransitions.Load(),
			"gateway_observations": m.GatewayObservations.Load(),
			"reachability_probes":  m.ReachabilityProbesSent.Load(),
		},
		"ts_dropped_events": m.tsDroppedEvents.Load(),
	}
}

// CommandStats returns per-command-kind metrics.
func (m *Metrics) CommandStats() map[string]interface{} {
	result := make(map[string]interface{})

	m.cmdMetrics.Range(func(key, value interface{}) bool {
		kind := key.(string)
		cm := value.(*CommandMetrics)

		total := cm.Count.Load()
		avgMs := float64(0)
		if total > 0 {
			avgMs = float64(cm.TotalMs.Load()) / float64(total)
		}

		minMs := cm.MinMs.Load()
		if minMs == int64(^uint64(0)>>1) {
			minMs = 0
		}

		result[kind] = map[string]interface{}{
			"count":     total,
			"successes": cm.Successes.Load(),
			"failures":  cm.Failures.Load(),
			"avg_ms":    avgMs,
			"min_ms":    minMs,
			"max_ms":    cm.MaxMs.Load(),
		}
		return true
	})

	return result
}

// JSONHandler returns an HTTP handler that exposes metrics in JSON
// format.
func (m *Metrics) JSONHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		result := m.Snapshot()
		result["command_kinds"] = m.CommandStats()
		json.NewEncoder(w).Encode(result)
	})
}

// TimeSeries returns minute-level time-series data for the last 24
// hours.
func (m *Metrics) TimeSeries() []map[string]interface{} {
	m.timeSeriesMu.RLock()
	defer m.timeSeriesMu.RUnlock()

	result := make([]map[string]interface{}, len(m.timeSeries))
	for i, bucket := range m.timeSeries {
		avgDuration := float64(0)
		if bucket.Count > 0 {
			avgDuration = float64(bucket.TotalLatency) / float64(bucket.Count)
		}
		result[i] = map[string]interface{}{
			"timestamp":    bucket.Timestamp.Format(time.RFC3339),
			"commands":     bucket.Commands,
			"errors":       bucket.Errors,
			"avg_duration": avgDuration,
		}
	}
	return result
}

// TimeSeriesHandler returns an HTTP handler for time-series metrics.
func (m *Metrics) TimeSeriesHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m.TimeSeries())
	})
}

// Helper functions

func updateMin(target *atomic.Int64, value int64) {
	for {
		old := target.Load()
		if value >= old {
			return
		}
		if target.CompareAndSwap(old, value) {
			return
		}
	}
}

func updateMax(target *atomic.Int64, value int64) {
	for {
		old := target.Load()
		if value <= old {
			return
		}
		if target.CompareAndSwap(old, value) {
			return
		}
	}
}
