package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("hotel_rms")

	m.ObserveRequest(http.MethodPost, "/api/v1/occupancy/calculate", 200, 5*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/v1/occupancy/calculate", 200, 7*time.Millisecond)
	m.RecordCalculation("inventory", OutcomeInvalid)
	m.RecordSearch(OutcomeCacheHit)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/occupancy/calculate", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.calculations.WithLabelValues("inventory", OutcomeInvalid)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.searches.WithLabelValues(OutcomeCacheHit)))
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	m := New("hotel_rms")
	m.RecordCalculation("occupancy", OutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `hotel_rms_calculations_total{calculator="occupancy",outcome="success"} 1`))
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", 200, time.Millisecond)
		m.RecordCalculation("occupancy", OutcomeSuccess)
		m.RecordSearch(OutcomeError)
		m.ObserveUpstream(time.Second)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
