// Package metrics exposes Prometheus collectors for the HTTP surface and the
// domain operations behind it.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for one server instance.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	UsersRegistered prometheus.Counter
	LoginFailures   prometheus.Counter
	ChefsPromoted   prometheus.Counter
	RecipesCreated  prometheus.Counter
	CoursesCreated  prometheus.Counter
}

// New creates a registry with Go/process collectors and the application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chefcourse",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chefcourse",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chefcourse",
			Name:      "users_registered_total",
			Help:      "Users successfully registered.",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chefcourse",
			Name:      "login_failures_total",
			Help:      "Rejected login attempts.",
		}),
		ChefsPromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chefcourse",
			Name:      "chefs_promoted_total",
			Help:      "Users promoted to chef.",
		}),
		RecipesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chefcourse",
			Name:      "recipes_created_total",
			Help:      "Recipes created.",
		}),
		CoursesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chefcourse",
			Name:      "courses_created_total",
			Help:      "Courses created.",
		}),
	}

	reg.MustRegister(
		m.requests,
		m.duration,
		m.UsersRegistered,
		m.LoginFailures,
		m.ChefsPromoted,
		m.RecipesCreated,
		m.CoursesCreated,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request counts and latency. The route label is the gin
// route template so ids do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Inc increments counter. It is safe to call on a nil *Metrics so handlers
// built without metrics need no guards.
func (m *Metrics) Inc(counter func(*Metrics) prometheus.Counter) {
	if m == nil {
		return
	}
	counter(m).Inc()
}

// Counter selectors for Inc.
func UsersRegistered(m *Metrics) prometheus.Counter { return m.UsersRegistered }
func LoginFailures(m *Metrics) prometheus.Counter   { return m.LoginFailures }
func ChefsPromoted(m *Metrics) prometheus.Counter   { return m.ChefsPromoted }
func RecipesCreated(m *Metrics) prometheus.Counter  { return m.RecipesCreated }
func CoursesCreated(m *Metrics) prometheus.Counter  { return m.CoursesCreated }
