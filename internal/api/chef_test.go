package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/types"
)

func TestRegisterChefEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	user, token := s.register("gordon")

	w := s.do(http.MethodPost, "/api/chefs/register", token, types.RegisterChefRequest{
		Bio: "Loud", Specialty: "Beef Wellington",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.RegisterChefResponse
	decode(t, w, &resp)
	assert.Equal(t, "Successfully registered as a chef!", resp.Message)
	require.NotNil(t, resp.Chef)
	assert.Equal(t, user.User.ID, resp.Chef.UserID)
	assert.Equal(t, "Beef Wellington", resp.Chef.Specialty)
	assert.Equal(t, models.RoleChef, resp.User.Role)

	w = s.do(http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile types.ProfileResponse
	decode(t, w, &profile)
	assert.Equal(t, models.RoleChef, profile.Role)

	w = s.do(http.MethodPost, "/api/chefs/register", token, types.RegisterChefRequest{})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User is already registered as a chef", decodeError(t, w).Message)
}

func TestRegisterChefEmptyBody(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := s.register("minimal")

	w := s.do(http.MethodPost, "/api/chefs/register", token, nil)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRegisterChefRequiresAuth(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/chefs/register", "", types.RegisterChefRequest{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetChefEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	user, token := s.register("julia")
	require.Equal(t, http.StatusCreated,
		s.do(http.MethodPost, "/api/chefs/register", token, types.RegisterChefRequest{Bio: "French"}).Code)

	w := s.do(http.MethodGet, "/api/chefs/"+user.User.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var chef types.ChefResponse
	decode(t, w, &chef)
	assert.Equal(t, user.User.ID, chef.UserID)
	assert.Equal(t, "julia", chef.User.Username)
	assert.Equal(t, "French", chef.Bio)

	w = s.do(http.MethodGet, "/api/chefs/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Chef profile not found", decodeError(t, w).Message)
}
