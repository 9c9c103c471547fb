package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/clients", "/api/clients"},
		{"/api/clients/6f1c0e62-3b9a-4c53-a1c4-2d8f6e0b7a11", "/api/clients/{id}"},
		{"/api/inspections/6F1C0E62-3B9A-4C53-A1C4-2D8F6E0B7A11/report", "/api/inspections/{id}/report"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.path))
	}
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/dashboard", "418"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/dashboard", "418"))

	assert.Equal(t, before+1, after)
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clients/{id}", func(w http.ResponseWriter, r *http.Request) {})
	h := Middleware(mux)

	label := "GET /api/clients/{id}"
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", label, "200"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/clients/abc", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", label, "200"))

	assert.Equal(t, before+1, after)
}

func TestInspectionSubmitted(t *testing.T) {
	before := testutil.ToFloat64(InspectionsSubmitted.WithLabelValues("Action Required"))
	criticalBefore := testutil.ToFloat64(CriticalIssuesTotal)

	InspectionSubmitted("Action Required", 67, 2)

	assert.Equal(t, before+1, testutil.ToFloat64(InspectionsSubmitted.WithLabelValues("Action Required")))
	assert.Equal(t, criticalBefore+2, testutil.ToFloat64(CriticalIssuesTotal))
}

func TestJobLifecycle(t *testing.T) {
	JobStarted("send_reminders")
	assert.Equal(t, 1.0, testutil.ToFloat64(JobsInFlight.WithLabelValues("send_reminders")))

	JobFailed("send_reminders", time.Second, false)
	assert.Equal(t, 0.0, testutil.ToFloat64(JobsInFlight.WithLabelValues("send_reminders")))
	assert.Equal(t, 1.0, testutil.ToFloat64(JobsTotal.WithLabelValues("send_reminders", "retry")))
}
