package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics wraps prometheus collectors for rackd metrics.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// Counters
	commandsTotal         *prometheus.CounterVec
	projectionsAppliedTot prometheus.Counter
	projectionFailuresTot prometheus.Counter
	linkTransitionsTotal  *prometheus.CounterVec
	gatewayObservedTotal  prometheus.Counter
	reachabilityProbesTot prometheus.Counter

	// Histograms
	commandDuration *prometheus.HistogramVec

	// Gauges
	uptime        prometheus.GaugeFunc
	trackedLinks  prometheus.Gauge
	commandInbox  prometheus.Gauge
}

// Default histogram buckets for command duration (in milliseconds).
var defaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

var promMetrics *PrometheusMetrics

// InitPrometheus initializes the Prometheus metrics subsystem.
func InitPrometheus(namespace string, buckets []float64) {
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	pm := &PrometheusMetrics{
		registry: registry,

		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total commands processed by the Command Actor",
			},
			[]string{"kind", "status"},
		),

		projectionsAppliedTot: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "projections_applied_total",
				Help:      "Total projector updates applied to read models",
			},
		),

		projectionFailuresTot: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "projection_failures_total",
				Help:      "Total projector failures (fatal; triggers daemon exit)",
			},
		),

		linkTransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "link_transitions_total",
				Help:      "Total link status transitions observed by the tracker",
			},
			[]string{"direction"}, // up, down
		),

		gatewayObservedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_observations_total",
				Help:      "Total gateway values read from the eBPF maps",
			},
		),

		reachabilityProbesTot: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reachability_probes_total",
				Help:      "Total reachability probe rounds sent",
			},
		),

		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_milliseconds",
				Help:      "Duration of Command Actor Process calls in milliseconds",
				Buckets:   buckets,
			},
			[]string{"kind"},
		),

		trackedLinks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "tracked_links",
				Help:      "Number of links currently registered in the tracker",
			},
		),

		commandInbox: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "command_inbox_depth",
				Help:      "Number of commands currently queued in the Command Actor's inbox",
			},
		),
	}

	pm.uptime = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Time since the rackd daemon started",
		},
		func() float64 {
			return time.Since(StartTime()).Seconds()
		},
	)

	registry.MustRegister(
		pm.commandsTotal,
		pm.projectionsAppliedTot,
		pm.projectionFailuresTot,
		pm.linkTransitionsTotal,
		pm.gatewayObservedTotal,
		pm.reachabilityProbesTot,
		pm.commandDuration,
		pm.uptime,
		pm.trackedLinks,
		pm.commandInbox,
	)

	promMetrics = pm
}

// RecordPrometheusCommand records one command outcome in Prometheus.
func RecordPrometheusCommand(kind string, durationMs int64, success bool) {
	if promMetrics == nil {
		return
	}
	status := "success"
	if !success {
		status = "failed"
	}
	promMetrics.commandsTotal.WithLabelValues(kind, status).Inc()
	promMetrics.commandDuration.WithLabelValues(kind).Observe(float64(durationMs))
}

// RecordPrometheusProjectionApplied records one projector update.
func RecordPrometheusProjectionApplied() {
	if promMetrics == nil {
		return
	}
	promMetrics.projectionsAppliedTot.Inc()
}

// RecordPrometheusProjectionFailure records one projector failure.
func RecordPrometheusProjectionFailure() {
	if promMetrics == nil {
		return
	}
	promMetrics.projectionFailuresTot.Inc()
}

// RecordPrometheusLinkTransition records a tracker status transition.
// direction is "up" or "down".
func RecordPrometheusLinkTransition(direction string) {
	if promMetrics == nil {
		return
	}
	promMetrics.linkTransitionsTotal.WithLabelValues(direction).Inc()
}

// RecordPrometheusGatewayObservation records one gateway map read.
func RecordPrometheusGatewayObservation() {
	if promMetrics == nil {
		return
	}
	promMetrics.gatewayObservedTotal.Inc()
}

// RecordPrometheusReachabilityProbe records one reachability probe round.
func RecordPrometheusReachabilityProbe() {
	if promMetrics == nil {
		return
	}
	promMetrics.reachabilityProbesTot.Inc()
}

// SetTrackedLinks sets the gauge of currently registered tracker links.
func SetTrackedLinks(count int) {
	if promMetrics == nil {
		return
	}
	promMetrics.trackedLinks.Set(float64(count))
}

// SetCommandInboxDepth sets the Command Actor inbox depth gauge.
func SetCommandInboxDepth(depth int) {
	if promMetrics == nil {
		return
	}
	promMetrics.commandInbox.Set(float64(depth))
}

// PrometheusHandler returns an HTTP handler for Prometheus metrics
// scraping.
func PrometheusHandler() http.Handler {
	if promMetrics == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("prometheus metrics not initialized"))
		})
	}
	return promhttp.HandlerFor(promMetrics.registry, promhttp.HandlerOpts{})
}

// PrometheusRegistry returns the prometheus registry (for custom
// collectors).
func PrometheusRegistry() *prometheus.Registry {
	if promMetrics == nil {
		return nil
	}
	return promMetrics.registry
}
