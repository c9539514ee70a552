package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder on a private registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	tickDuration  prometheus.Histogram
	ticksTotal    prometheus.Counter
	stepFailures  *prometheus.CounterVec
	probeHealthy  *prometheus.GaugeVec
	pageRenders   *prometheus.CounterVec
	shutdowns     *prometheus.CounterVec
	configUpdates *prometheus.CounterVec
}

// NewPrometheusRecorder builds a recorder with all daemon series registered.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	r := &PrometheusRecorder{
		registry: registry,
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "periphd",
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of one scheduler tick.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "periphd",
			Name:      "ticks_total",
			Help:      "Completed scheduler ticks.",
		}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "periphd",
			Name:      "step_failures_total",
			Help:      "Sub-component run failures absorbed by the tick loop.",
		}, []string{"component"}),
		probeHealthy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "periphd",
			Name:      "service_healthy",
			Help:      "Last probe result per tracked service (1 healthy, 0 unhealthy).",
		}, []string{"service"}),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "periphd",
			Name:      "page_renders_total",
			Help:      "Full-frame page redraws by page kind.",
		}, []string{"page"}),
		shutdowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "periphd",
			Name:      "shutdown_triggers_total",
			Help:      "Irreversible shutdown invocations by reason.",
		}, []string{"reason"}),
		configUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "periphd",
			Name:      "config_updates_total",
			Help:      "Live configuration field updates by outcome.",
		}, []string{"field", "outcome"}),
	}
	registry.MustRegister(
		r.tickDuration, r.ticksTotal, r.stepFailures,
		r.probeHealthy, r.pageRenders, r.shutdowns, r.configUpdates,
	)
	return r
}

// Handler serves the registry in Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *PrometheusRecorder) TickCompleted(d time.Duration) {
	r.ticksTotal.Inc()
	r.tickDuration.Observe(d.Seconds())
}

func (r *PrometheusRecorder) StepFailed(component string) {
	r.stepFailures.WithLabelValues(component).Inc()
}

func (r *PrometheusRecorder) ProbeResult(service string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	r.probeHealthy.WithLabelValues(service).Set(value)
}

func (r *PrometheusRecorder) PageRendered(page string) {
	r.pageRenders.WithLabelValues(page).Inc()
}

func (r *PrometheusRecorder) ShutdownTriggered(reason string) {
	r.shutdowns.WithLabelValues(reason).Inc()
}

func (r *PrometheusRecorder) ConfigUpdated(field string, ok bool) {
	outcome := "applied"
	if !ok {
		outcome = "rejected"
	}
	r.configUpdates.WithLabelValues(field, outcome).Inc()
}
