package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/types"
)

// Keys under which AuthMiddleware stores the caller on the gin context.
const (
	ContextUserID = "user_id"
	ContextUser   = "user"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	Verify(token string) (*types.TokenClaims, error)
}

// UserFinder resolves the user a token was issued to.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthMiddleware creates a middleware that validates bearer tokens and loads
// the user they belong to. Every failure is a 401.
func AuthMiddleware(validator TokenValidator, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Not authorized, no token")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Not authorized, no token")
			return
		}

		claims, err := validator.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "Not authorized, token failed")
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Not authorized, token failed")
			return
		}
		// Tokens issued before the last password reset are revoked.
		if claims.PasswordVersion != user.PasswordVersion {
			abortUnauthorized(c, "Not authorized, token failed")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentUserID returns the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: msg})
}
