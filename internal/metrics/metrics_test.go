package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestObserveAssessment(t *testing.T) {
	before := testutil.ToFloat64(Assessments)
	eligible := testutil.ToFloat64(PayTypeResults.WithLabelValues("metrics_test_fsa", "eligible"))

	ObserveAssessment(domain.EligibilityResult{Results: []domain.PayTypeEligibilityResult{
		{PayType: "metrics_test_fsa", Status: domain.StatusEligible},
		{PayType: "metrics_test_hfp", Status: domain.StatusIncomplete},
	}})

	assert.Equal(t, before+1, testutil.ToFloat64(Assessments))
	assert.Equal(t, eligible+1, testutil.ToFloat64(PayTypeResults.WithLabelValues("metrics_test_fsa", "eligible")))
	assert.Equal(t, float64(1), testutil.ToFloat64(PayTypeResults.WithLabelValues("metrics_test_hfp", "incomplete")))
}

func TestObserveCalculator(t *testing.T) {
	ObserveCalculator("metrics_test_calc", nil)
	ObserveCalculator("metrics_test_calc", nil)
	ObserveCalculator("metrics_test_calc", errors.New("boom"))
	assert.Equal(t, float64(2), testutil.ToFloat64(CalculatorCalls.WithLabelValues("metrics_test_calc", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(CalculatorCalls.WithLabelValues("metrics_test_calc", "error")))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{200: "2xx", 201: "2xx", 302: "3xx", 404: "4xx", 422: "4xx", 500: "5xx"}
	for code, want := range tests {
		assert.Equal(t, want, statusClass(code), "code %d", code)
	}
	ObserveRequest("GET", "/healthz", 200, 5*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration, "milpay_http_request_duration_seconds"))
}
