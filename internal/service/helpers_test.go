package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pageza/chefcourse/backend/internal/mocks"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	tokens    *service.TokenService
	publisher *mocks.RecordingPublisher
	auth      *service.AuthService
	chefs     *service.ChefService
	recipes   *service.RecipeService
	courses   *service.CourseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	log := testhelpers.DiscardLogger()

	tokens, err := service.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	pub := &mocks.RecordingPublisher{}
	return &fixture{
		db:        db,
		tokens:    tokens,
		publisher: pub,
		auth:      service.NewAuthService(db, tokens, pub, log),
		chefs:     service.NewChefService(db, pub, log),
		recipes:   service.NewRecipeService(db, pub, log),
		courses:   service.NewCourseService(db, pub, log),
	}
}

// requireKind asserts err is a *service.Error of the given kind and returns it.
func requireKind(t *testing.T, err error, kind service.ErrorKind) *service.Error {
	t.Helper()
	var serr *service.Error
	require.True(t, errors.As(err, &serr), "expected *service.Error, got %v", err)
	require.Equal(t, kind, serr.Kind, "message: %s", serr.Message)
	return serr
}
