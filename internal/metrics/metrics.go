// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/scott198989/securepoint-sub000/internal/domain"
)

var (
	PayTypeResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milpay_pay_type_results_total",
			Help: "Pay type verdicts produced by assessments, by pay type and status",
		},
		[]string{"pay_type", "status"},
	)

	Assessments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "milpay_assessments_total",
			Help: "Total number of eligibility assessments run",
		},
	)

	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milpay_wizard_sessions_started_total",
			Help: "Wizard sessions started, by wizard",
		},
		[]string{"wizard"},
	)

	SessionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milpay_wizard_sessions_completed_total",
			Help: "Wizard sessions completed, by wizard",
		},
		[]string{"wizard"},
	)

	CalculatorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milpay_calculator_calls_total",
			Help: "Calculator invocations, by calculator and outcome",
		},
		[]string{"calculator", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "milpay_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)
)

// ObserveAssessment records one assessment and each pay type verdict in it
func ObserveAssessment(result domain.EligibilityResult) {
	Assessments.Inc()
	for _, r := range result.Results {
		PayTypeResults.WithLabelValues(string(r.PayType), string(r.Status)).Inc()
	}
}

// ObserveCalculator records a calculator call; err decides the outcome label
func ObserveCalculator(name string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CalculatorCalls.WithLabelValues(name, outcome).Inc()
}

// ObserveRequest records one HTTP request
func ObserveRequest(method, route string, code int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, statusClass(code)).Observe(elapsed.Seconds())
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
