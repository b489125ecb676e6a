package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for VerificationDispatches.
const (
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

var (
	VerificationDispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "apula_verification_dispatch_total",
		Help: "Total number of verification email requests by outcome",
	}, []string{"outcome"})
	VerificationSendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "apula_verification_send_duration_seconds",
		Help:    "Time spent waiting on the mail transport for one send",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(VerificationDispatches)
	prometheus.MustRegister(VerificationSendDuration)
}

// Handler returns an http.Handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
