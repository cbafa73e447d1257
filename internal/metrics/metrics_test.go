package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "GET /api/people", 200, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "GET /api/people", 200, 7*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "", 404, time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `household_http_requests_total{code="200",method="GET",route="GET /api/people"} 2`)
	assert.Contains(t, out, `household_http_requests_total{code="404",method="POST",route="unmatched"} 1`)
	assert.Contains(t, out, `household_http_request_duration_seconds_count{method="GET",route="GET /api/people"} 2`)
}

func TestRejected(t *testing.T) {
	m := New()
	m.Rejected("validation")
	m.Rejected("validation")
	m.Rejected("conflict")

	out := scrape(t, m)
	assert.Contains(t, out, `household_rejected_operations_total{kind="validation"} 2`)
	assert.Contains(t, out, `household_rejected_operations_total{kind="conflict"} 1`)
}

func TestHandler_IncludesRuntimeCollectors(t *testing.T) {
	out := scrape(t, New())
	assert.Contains(t, out, "go_goroutines")
}

func TestNew_Independent(t *testing.T) {
	a, b := New(), New()
	a.Rejected("conflict")
	assert.NotContains(t, scrape(t, b), `kind="conflict"`)
}
