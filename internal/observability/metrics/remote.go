package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RemoteClientMetrics covers calls to the workflow engine. It satisfies the
// workflowapi.CallObserver contract.
type RemoteClientMetrics struct {
	callTotal    *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
}

func NewRemoteClientMetrics(service string, registry *prometheus.Registry) *RemoteClientMetrics {
	callTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lias",
			Subsystem: "engine",
			Name:      "remote_requests_total",
			Help:      "Total workflow engine calls by operation and outcome.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"operation", "outcome"},
	)
	callDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lias",
			Subsystem: "engine",
			Name:      "remote_request_duration_seconds",
			Help:      "Workflow engine call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"operation"},
	)

	registry.MustRegister(callTotal, callDuration)

	return &RemoteClientMetrics{
		callTotal:    callTotal,
		callDuration: callDuration,
	}
}

func (m *RemoteClientMetrics) ObserveRemoteCall(operation, outcome string, duration time.Duration) {
	m.callTotal.WithLabelValues(operation, outcome).Inc()
	m.callDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
