package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every user made by CreateTestUser.
const TestPassword = "password123"

// CreateTestUser inserts an active user with role "user".
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestChef inserts a user already promoted to chef.
func CreateTestChef(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Chef) {
	t.Helper()
	user := CreateTestUser(t, db, username)
	if err := db.Model(user).Update("role", models.RoleChef).Error; err != nil {
		t.Fatalf("failed to promote test user: %v", err)
	}
	user.Role = models.RoleChef

	chef := &models.Chef{UserID: user.ID, Bio: "Cooks things", Specialty: "Pasta"}
	if err := db.Create(chef).Error; err != nil {
		t.Fatalf("failed to create test chef: %v", err)
	}
	return user, chef
}

// CreateTestRecipe inserts a valid recipe owned by userID.
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:       userID,
		Title:        title,
		Description:  "A test recipe",
		PrepTime:     "10 min",
		CookTime:     "20 min",
		Servings:     2,
		Difficulty:   models.DifficultyEasy,
		Category:     "Dinner",
		Ingredients:  []models.Ingredient{{Name: "Salt", Amount: "1", Unit: "tsp"}},
		Instructions: []string{"Season", "Serve"},
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}

// JSONMarshal marshals v or fails the test.
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}

// IDStrings renders ids the way clients send them in recipeIds.
func IDStrings(ids ...uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
