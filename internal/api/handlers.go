// Package api holds the HTTP handlers. Handlers translate requests into
// service calls and push failures onto the gin context for
// middleware.ErrorHandler to render.
package api

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/chefcourse/backend/internal/middleware"
	"github.com/pageza/chefcourse/backend/internal/service"
)

var errMalformedBody = &service.Error{Kind: service.KindValidation, Message: "Invalid request body"}

// bindJSON decodes the body into dst. Field rules are checked by the
// services; only unreadable JSON fails here.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty body decodes as an empty object.
			return true
		}
		_ = c.Error(errMalformedBody)
		return false
	}
	return true
}

// paramUUID parses a path id. A malformed id cannot name anything, so it is
// reported the same way as a missing record.
func paramUUID(c *gin.Context, name, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(&service.Error{Kind: service.KindNotFound, Message: notFound})
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated caller or records an unauthorized
// error when the route was mounted without AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		_ = c.Error(service.ErrUnauthorized)
	}
	return id, ok
}
