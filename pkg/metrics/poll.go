package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PollMetrics records fetch outcomes for a polling controller.
type PollMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	skipped  *prometheus.CounterVec
}

// NewPollMetrics registers the polling metrics on the provided registerer.
func NewPollMetrics(reg prometheus.Registerer) *PollMetrics {
	if reg == nil {
		return &PollMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poll_fetch_duration_seconds",
		Help:    "Duration of poll fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poll_fetch_success",
		Help: "Successful poll fetches.",
	}, []string{"source"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poll_fetch_failure",
		Help: "Failed poll fetches.",
	}, []string{"source"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poll_tick_skipped",
		Help: "Poll ticks skipped because a fetch was still in flight.",
	}, []string{"source"})
	reg.MustRegister(duration, success, failure, skipped)
	return &PollMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		skipped:  skipped,
	}
}

// ObserveDuration records the duration of a fetch for the named source.
func (p *PollMetrics) ObserveDuration(source string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named source.
func (p *PollMetrics) IncSuccess(source string) {
	if p == nil || p.success == nil {
		return
	}
	p.success.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFailure increments the failure counter for the named source.
func (p *PollMetrics) IncFailure(source string) {
	if p == nil || p.failure == nil {
		return
	}
	p.failure.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncSkipped increments the skipped-tick counter for the named source.
func (p *PollMetrics) IncSkipped(source string) {
	if p == nil || p.skipped == nil {
		return
	}
	p.skipped.WithLabelValues(normalizeLabel(source)).Inc()
}

func normalizeLabel(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
