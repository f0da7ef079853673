package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/courses/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/courses/"+id, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/courses/:id", "404")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chefcourse_http_requests_total")
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.ChefsPromoted.Inc()
	m.CoursesCreated.Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ChefsPromoted))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CoursesCreated))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.UsersRegistered))
}

func TestIncIsNilSafe(t *testing.T) {
	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.Inc(RecipesCreated) })

	m := New()
	m.Inc(RecipesCreated)
	m.Inc(LoginFailures)
	m.Inc(LoginFailures)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RecipesCreated))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.LoginFailures))
}
