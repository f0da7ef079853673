package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/mocks"
	"github.com/pageza/chefcourse/backend/internal/router"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/testhelpers"
	"github.com/pageza/chefcourse/backend/internal/types"
)

type testServer struct {
	t         *testing.T
	db        *gorm.DB
	engine    *gin.Engine
	tokens    *service.TokenService
	metrics   *metrics.Metrics
	publisher *mocks.RecordingPublisher
}

func newTestServer(t *testing.T, images service.IImageService) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	log := testhelpers.DiscardLogger()
	tokens, err := service.NewTokenService("api-test-secret", time.Hour)
	require.NoError(t, err)

	pub := &mocks.RecordingPublisher{}
	auth := service.NewAuthService(db, tokens, pub, log)
	m := metrics.New()
	engine := router.SetupRouter(router.Deps{
		Auth:           auth,
		Tokens:         tokens,
		Chefs:          service.NewChefService(db, nil, log),
		Recipes:        service.NewRecipeService(db, nil, log),
		Courses:        service.NewCourseService(db, nil, log),
		Images:         images,
		Metrics:        m,
		Logger:         log,
		RequestTimeout: 5 * time.Second,
	})
	return &testServer{t: t, db: db, engine: engine, tokens: tokens, metrics: m, publisher: pub}
}

// do sends a request with an optional bearer token. Tokens travel per
// request; nothing is shared between sessions.
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns the token.
func (s *testServer) register(username string) (types.AuthResponse, string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp types.AuthResponse
	decode(s.t, w, &resp)
	return resp, resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, w, &body)
	return body
}

func recipeBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"description":  "Tasty",
		"prepTime":     "5 min",
		"cookTime":     "10 min",
		"servings":     2,
		"difficulty":   "easy",
		"category":     "Lunch",
		"ingredients":  []map[string]string{{"name": "Bread", "amount": "2", "unit": "slices"}},
		"instructions": []string{"Toast the bread"},
	}
}
