// ABOUTME: Prometheus metrics for the HTTP API.
// ABOUTME: Request counters and latency plus gauges mirroring tracker state.
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Instrumentation struct {
	// counters
	CounterRequests      *prometheus.CounterVec
	CounterRequestPanics prometheus.Counter
	CounterActivities    *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeActivities prometheus.Gauge
	GaugeOpenGoals  prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

// NewInstrumentationWithRegisterer registers every API metric on reg.
func NewInstrumentationWithRegisterer(namespace, subsystem string, reg prometheus.Registerer) *Instrumentation {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "The total number of incoming requests",
	}, []string{"method", "route", "code"})
	counterRequestPanics := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_panics_total",
		Help:      "The total number of recovered handler panics",
	})
	counterActivities := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "activities_logged_total",
		Help:      "Activities logged through the API, by type",
	}, []string{"type"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeActivities := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "activities",
		Help:      "Number of stored activities",
	})
	gaugeOpenGoals := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "open_goals",
		Help:      "Number of goals not yet completed",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   prometheus.DefBuckets,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests by route",
		},
		[]string{"route"},
	)

	return &Instrumentation{
		CounterRequests:      counterRequests,
		CounterRequestPanics: counterRequestPanics,
		CounterActivities:    counterActivities,
		GaugeRequests:        gaugeRequests,
		GaugeActivities:      gaugeActivities,
		GaugeOpenGoals:       gaugeOpenGoals,
		HistRequestDuration:  histReqDuration,
	}
}
