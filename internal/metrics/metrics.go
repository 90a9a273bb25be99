package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tweetsense"

var (
	analyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Analysis requests by outcome (sentiment name, empty, error).",
	}, []string{"outcome"})

	inferenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Latency of calls to the inference backend.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"backend"})
)

const (
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

func ObserveAnalysis(outcome string) {
	analyses.WithLabelValues(outcome).Inc()
}

func ObserveInference(backend string, d time.Duration) {
	inferenceDuration.WithLabelValues(backend).Observe(d.Seconds())
}
