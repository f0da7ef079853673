package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/events"
	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/types"
	"gorm.io/gorm"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db        *gorm.DB
	publisher events.Publisher
	logger    *slog.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, publisher events.Publisher, logger *slog.Logger) *RecipeService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{db: db, publisher: publisher, logger: logger}
}

// CreateRecipe validates and stores a recipe owned by ownerID. Nothing is
// written unless every field passes.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	trimRecipeRequest(req)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:       ownerID,
		Title:        req.Title,
		Description:  req.Description,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if terr := translateStoreError(err, "Recipe not found"); terr != err {
			return nil, terr
		}
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.New(events.TypeRecipeCreated, map[string]string{
		"recipeId": recipe.ID.String(),
		"userId":   ownerID.String(),
	}))
	return recipe, nil
}

// ListRecipes returns the recipes owned by ownerID, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, ownerID uuid.UUID) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe returns a recipe visible to viewerID: the viewer owns it, or it
// has been published as part of a course. Anything else is reported as not
// found so that existence is not leaked.
func (s *RecipeService) GetRecipe(ctx context.Context, id, viewerID uuid.UUID) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translateStoreError(err, "Recipe not found")
	}
	if recipe.UserID == viewerID {
		return &recipe, nil
	}

	var shared int64
	if err := db.Model(&models.CourseRecipe{}).Where("recipe_id = ?", id).Count(&shared).Error; err != nil {
		return nil, fmt.Errorf("failed to check recipe sharing: %w", err)
	}
	if shared == 0 {
		return nil, notFoundError("Recipe not found")
	}
	return &recipe, nil
}

func trimRecipeRequest(req *types.CreateRecipeRequest) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.PrepTime = strings.TrimSpace(req.PrepTime)
	req.CookTime = strings.TrimSpace(req.CookTime)
	req.Difficulty = strings.ToLower(strings.TrimSpace(req.Difficulty))
	req.Category = strings.TrimSpace(req.Category)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	for i := range req.Ingredients {
		ing := &req.Ingredients[i]
		ing.Name = strings.TrimSpace(ing.Name)
		ing.Amount = strings.TrimSpace(ing.Amount)
		ing.Unit = strings.TrimSpace(ing.Unit)
	}
	for i, step := range req.Instructions {
		req.Instructions[i] = strings.TrimSpace(step)
	}
}
