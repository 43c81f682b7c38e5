package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder 收集 HTTP 请求和排班结果的指标
type Recorder struct {
	registry        *prom.Registry
	requestDuration *prom.HistogramVec
	requests        *prom.CounterVec
	assignments     *prom.CounterVec
	employees       prom.Counter
}

func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		registry: reg,
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "shift_roster",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "route"}),
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "shift_roster",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
		assignments: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "shift_roster",
			Name:      "assignments_total",
			Help:      "Assignment attempts by outcome message",
		}, []string{"result"}),
		employees: prom.NewCounter(prom.CounterOpts{
			Namespace: "shift_roster",
			Name:      "employees_created_total",
			Help:      "Employees created through the API",
		}),
	}
	reg.MustRegister(r.requestDuration, r.requests, r.assignments, r.employees)

	return r
}

func (r *Recorder) ObserveRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// IncAssignment 按结果消息计数，消息集合是固定的几种
func (r *Recorder) IncAssignment(result string) {
	if r == nil {
		return
	}
	r.assignments.WithLabelValues(result).Inc()
}

func (r *Recorder) IncEmployeeCreated() {
	if r == nil {
		return
	}
	r.employees.Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
