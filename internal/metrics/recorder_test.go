package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(prom.NewRegistry())

	r.ObserveRequest(http.MethodGet, "/api/employees/", http.StatusOK, 10*time.Millisecond)
	r.IncAssignment("Shift Recorded")
	r.IncAssignment("Shift Recorded")
	r.IncAssignment("Daily hour limit exceeded")
	r.IncEmployeeCreated()

	assert.Equal(t, float64(1), testutil.ToFloat64(r.requests.WithLabelValues(http.MethodGet, "/api/employees/", "200")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.assignments.WithLabelValues("Shift Recorded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.employees))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shift_roster_assignments_total")
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Second)
		r.IncAssignment("Shift Recorded")
		r.IncEmployeeCreated()
	})
}
