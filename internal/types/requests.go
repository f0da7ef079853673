package types

import (
	"github.com/pageza/chefcourse/backend/internal/models"
)

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string              `json:"title" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	PrepTime     string              `json:"prepTime" validate:"required"`
	CookTime     string              `json:"cookTime" validate:"required"`
	Servings     int                 `json:"servings" validate:"required,min=1"`
	Difficulty   string              `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Category     string              `json:"category" validate:"required"`
	ImageURL     string              `json:"imageUrl" validate:"omitempty,url"`
	Ingredients  []models.Ingredient `json:"ingredients" validate:"required,min=1,dive"`
	Instructions []string            `json:"instructions" validate:"required,min=1,dive,required"`
}

type RegisterChefRequest struct {
	Bio        string `json:"bio" validate:"max=500"`
	Specialty  string `json:"specialty" validate:"max=100"`
	PictureURL string `json:"pictureUrl" validate:"max=512"`
}

type CreateCourseRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	RecipeIDs     []string `json:"recipeIds"`
	CoverImageURL string   `json:"coverImageUrl" validate:"omitempty,url"`
}

// PresignUploadRequest asks for a short-lived URL to upload an image to.
type PresignUploadRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=recipe chef course"`
	ContentType string `json:"contentType" validate:"required,oneof=image/png image/jpeg image/webp"`
}
