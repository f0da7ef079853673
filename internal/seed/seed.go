// Package seed loads demo users, a chef, recipes and a course through the
// services so the data obeys the same rules as API traffic.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/types"
)

// DefaultPassword is used for every seeded account unless overridden.
const DefaultPassword = "testpassword123"

type Services struct {
	Auth    service.IAuthService
	Chefs   service.IChefService
	Recipes service.IRecipeService
	Courses service.ICourseService
}

// Result lists what was created.
type Result struct {
	Users   []uuid.UUID
	Chef    *models.Chef
	Recipes []uuid.UUID
	Course  *models.Course
}

var demoUsers = []types.RegisterRequest{
	{Username: "johndoe", Email: "john.doe@example.com"},
	{Username: "janesmith", Email: "jane.smith@example.com"},
	{Username: "chefmario", Email: "mario@example.com"},
}

var demoRecipes = []types.CreateRecipeRequest{
	{
		Title:       "Classic Margherita Pizza",
		Description: "Thin crust pizza with tomato, mozzarella and basil.",
		PrepTime:    "20 min",
		CookTime:    "10 min",
		Servings:    2,
		Difficulty:  "medium",
		Category:    "Italian",
		Ingredients: []models.Ingredient{
			{Name: "Pizza dough", Amount: "250", Unit: "g"},
			{Name: "Tomato sauce", Amount: "80", Unit: "ml"},
			{Name: "Mozzarella", Amount: "125", Unit: "g"},
			{Name: "Basil", Amount: "6", Unit: "leaves"},
		},
		Instructions: []string{
			"Stretch the dough into a thin round.",
			"Spread the sauce and tear over the mozzarella.",
			"Bake at the highest oven setting until blistered.",
			"Finish with basil.",
		},
	},
	{
		Title:       "Spaghetti Aglio e Olio",
		Description: "Garlic, chilli and olive oil pasta.",
		PrepTime:    "5 min",
		CookTime:    "12 min",
		Servings:    2,
		Difficulty:  "easy",
		Category:    "Italian",
		Ingredients: []models.Ingredient{
			{Name: "Spaghetti", Amount: "200", Unit: "g"},
			{Name: "Garlic", Amount: "4", Unit: "cloves"},
			{Name: "Olive oil", Amount: "60", Unit: "ml"},
			{Name: "Chilli flakes", Amount: "1", Unit: "tsp"},
		},
		Instructions: []string{
			"Boil the spaghetti in salted water.",
			"Gently fry sliced garlic and chilli in the oil.",
			"Toss the pasta with the oil and a splash of pasta water.",
		},
	},
	{
		Title:       "Tiramisu",
		Description: "Coffee soaked ladyfingers layered with mascarpone cream.",
		PrepTime:    "30 min",
		CookTime:    "0 min",
		Servings:    6,
		Difficulty:  "hard",
		Category:    "Dessert",
		Ingredients: []models.Ingredient{
			{Name: "Ladyfingers", Amount: "200", Unit: "g"},
			{Name: "Mascarpone", Amount: "250", Unit: "g"},
			{Name: "Espresso", Amount: "200", Unit: "ml"},
			{Name: "Eggs", Amount: "3", Unit: "whole"},
			{Name: "Cocoa", Amount: "2", Unit: "tbsp"},
		},
		Instructions: []string{
			"Whisk yolks with sugar, then fold in mascarpone and whipped whites.",
			"Dip ladyfingers in espresso and layer with the cream.",
			"Chill overnight and dust with cocoa.",
		},
	},
}

// Run creates the demo data. The last demo user becomes the chef who owns the
// recipes and the course. Running it against a seeded database fails with a
// conflict on the first user.
func Run(ctx context.Context, svc Services, password string, log *slog.Logger) (*Result, error) {
	if password == "" {
		password = DefaultPassword
	}
	res := &Result{}

	var chefUser *models.User
	for _, u := range demoUsers {
		req := u
		req.Password = password
		user, _, err := svc.Auth.Register(ctx, &req)
		if err != nil {
			return res, fmt.Errorf("register %s: %w", u.Username, err)
		}
		log.Info("seeded user", slog.String("username", user.Username))
		res.Users = append(res.Users, user.ID)
		chefUser = user
	}

	chef, _, err := svc.Chefs.Promote(ctx, chefUser.ID, &types.RegisterChefRequest{
		Bio:       "Neapolitan trained, pasta obsessed.",
		Specialty: "Italian",
	})
	if err != nil {
		return res, fmt.Errorf("promote %s: %w", chefUser.Username, err)
	}
	res.Chef = chef

	for _, r := range demoRecipes {
		req := r
		recipe, err := svc.Recipes.CreateRecipe(ctx, chefUser.ID, &req)
		if err != nil {
			return res, fmt.Errorf("create recipe %q: %w", r.Title, err)
		}
		res.Recipes = append(res.Recipes, recipe.ID)
	}
	log.Info("seeded recipes", slog.Int("count", len(res.Recipes)))

	recipeIDs := make([]string, len(res.Recipes))
	for i, id := range res.Recipes {
		recipeIDs[i] = id.String()
	}
	course, err := svc.Courses.CreateCourse(ctx, chefUser.ID, &types.CreateCourseRequest{
		Title:       "Italian Essentials",
		Description: "From pizza to tiramisu in three recipes.",
		RecipeIDs:   recipeIDs,
	})
	if err != nil {
		return res, fmt.Errorf("create course: %w", err)
	}
	res.Course = course
	log.Info("seeded course", slog.String("course_id", course.ID.String()))
	return res, nil
}

// IsAlreadySeeded reports whether err came from seeding a database that
// already holds the demo users.
func IsAlreadySeeded(err error) bool {
	var serr *service.Error
	return errors.As(err, &serr) && serr.Kind == service.KindConflict
}
