package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	metrics *metrics.Metrics
}

func NewRecipeHandler(recipes service.IRecipeService, m *metrics.Metrics) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, metrics: m}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.metrics.Inc(metrics.RecipesCreated)

	c.JSON(http.StatusCreated, types.CreateRecipeResponse{
		Message: "Recipe saved successfully!",
		Recipe:  recipe,
	})
}

// ListRecipes returns the caller's own recipes.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "Recipe not found")
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
