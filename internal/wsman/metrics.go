package wsman

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	wsmanRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amt_wsman_requests_total",
			Help: "WS-Management transactions by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	wsmanRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amt_wsman_retries_total",
			Help: "Transport calls re-issued after a connection failure (per operation)",
		},
		[]string{"op"},
	)

	wsmanRoundTripSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "amt_wsman_round_trip_seconds",
			Help:    "Time for one transport round trip to the AMT endpoint (per operation)",
			Buckets: []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"op"},
	)

	wsmanEnumeratedItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "amt_wsman_enumerated_items",
			Help:    "Instances returned by a complete enumeration (per resource)",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		},
		[]string{"resource"},
	)
)

const (
	outcomeOK        = "ok"
	outcomeFault     = "fault"
	outcomeSilenced  = "fault_silenced"
	outcomeConnect   = "connect_failure"
	outcomeMalformed = "malformed"
)

func recordRequest(op, outcome string) {
	wsmanRequests.WithLabelValues(op, outcome).Inc()
}

func recordRetry(op string) {
	wsmanRetries.WithLabelValues(op).Inc()
}

func recordRoundTrip(op string, duration time.Duration) {
	wsmanRoundTripSeconds.WithLabelValues(op).Observe(duration.Seconds())
}

func recordEnumeration(resource string, items int) {
	wsmanEnumeratedItems.WithLabelValues(resource).Observe(float64(items))
}
