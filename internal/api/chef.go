package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/types"
)

type ChefHandler struct {
	chefs   service.IChefService
	metrics *metrics.Metrics
}

func NewChefHandler(chefs service.IChefService, m *metrics.Metrics) *ChefHandler {
	return &ChefHandler{chefs: chefs, metrics: m}
}

// RegisterChef promotes the caller to chef.
func (h *ChefHandler) RegisterChef(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.RegisterChefRequest
	if !bindJSON(c, &req) {
		return
	}

	chef, user, err := h.chefs.Promote(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.metrics.Inc(metrics.ChefsPromoted)

	c.JSON(http.StatusCreated, types.RegisterChefResponse{
		Message: "Successfully registered as a chef!",
		Chef:    chef,
		User:    types.NewPublicUser(user),
	})
}

func (h *ChefHandler) GetChef(c *gin.Context) {
	userID, ok := paramUUID(c, "userId", "Chef profile not found")
	if !ok {
		return
	}

	chef, err := h.chefs.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.NewChefResponse(chef))
}
