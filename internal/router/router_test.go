package router_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/router"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/testhelpers"
)

func setup(t *testing.T, ping func(context.Context) error, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLite(t)
	log := testhelpers.DiscardLogger()
	tokens, err := service.NewTokenService("router-secret", time.Hour)
	require.NoError(t, err)

	return router.SetupRouter(router.Deps{
		Auth:        service.NewAuthService(db, tokens, nil, log),
		Tokens:      tokens,
		Chefs:       service.NewChefService(db, nil, log),
		Recipes:     service.NewRecipeService(db, nil, log),
		Courses:     service.NewCourseService(db, nil, log),
		Metrics:     metrics.New(),
		DBPing:      ping,
		Logger:      log,
		CORSOrigins: origins,
	})
}

func get(r http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthRoutes(t *testing.T) {
	r := setup(t, func(context.Context) error { return nil }, nil)

	for _, path := range []string{"/health", "/api/health"} {
		w := get(r, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"status":"ok","message":"server is running !"}`, w.Body.String())
	}
}

func TestHealthReportsDatabaseDown(t *testing.T) {
	r := setup(t, func(context.Context) error { return errors.New("connection refused") }, nil)

	w := get(r, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestMetricsRoute(t *testing.T) {
	r := setup(t, nil, nil)
	get(r, "/api/courses")

	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `chefcourse_http_requests_total{method="GET",route="/api/courses",status="200"} 1`)
	assert.Contains(t, w.Body.String(), "chefcourse_courses_created_total 0")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setup(t, nil, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/recipes"},
		{http.MethodPost, "/api/recipes"},
		{http.MethodGet, "/api/recipes/" + "00000000-0000-0000-0000-000000000000"},
		{http.MethodPost, "/api/chefs/register"},
		{http.MethodPost, "/api/courses"},
		{http.MethodPost, "/api/uploads/presign"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestPublicRoutes(t *testing.T) {
	r := setup(t, nil, nil)

	assert.Equal(t, http.StatusOK, get(r, "/api/courses").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/courses/00000000-0000-0000-0000-000000000000").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/chefs/00000000-0000-0000-0000-000000000000").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/nowhere").Code)
}

func TestCORSAllowedOrigin(t *testing.T) {
	r := setup(t, nil, []string{"http://localhost:3000"})

	w := get(r, "/api/courses", "Origin", "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/api/courses", "Origin", "http://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
