package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/models"
)

// UserResponse is the public view of a user; it never carries the password hash.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	LastLogin *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLoginAt,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse is returned by GET /user.
type ProfileResponse struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	IsActive bool        `json:"isActive"`
	Role     models.Role `json:"role"`
}

// PublicUser is the subset of user fields embedded in chef responses.
type PublicUser struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

func NewPublicUser(u *models.User) PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

type ChefResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	User       PublicUser `json:"user"`
	Bio        string     `json:"bio"`
	Specialty  string     `json:"specialty"`
	PictureURL string     `json:"pictureUrl"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type RegisterChefResponse struct {
	Message string       `json:"message"`
	Chef    *models.Chef `json:"chef"`
	User    PublicUser   `json:"user"`
}

type CreateRecipeResponse struct {
	Message string         `json:"message"`
	Recipe  *models.Recipe `json:"recipe"`
}

// CourseResponse is a course as stored, with raw recipe ids.
type CourseResponse struct {
	ID            uuid.UUID   `json:"id"`
	ChefID        uuid.UUID   `json:"chefId"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	RecipeIDs     []uuid.UUID `json:"recipeIds"`
	CoverImageURL string      `json:"coverImageUrl"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type CreateCourseResponse struct {
	Message string          `json:"message"`
	Course  *CourseResponse `json:"course"`
}

// CourseChef is the chef block embedded in course listings and details.
// Email and Bio are only filled in on the detail view.
type CourseChef struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Specialty  string    `json:"specialty"`
	PictureURL string    `json:"pictureUrl"`
}

type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
}

// CourseSummary is a course as it appears in GET /courses. Recipe summaries
// are populated in place of the raw ids.
type CourseSummary struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	CoverImageURL string          `json:"coverImageUrl"`
	Chef          CourseChef      `json:"chef"`
	Recipes       []RecipeSummary `json:"recipeIds"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CourseDetail struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	CoverImageURL string          `json:"coverImageUrl"`
	Chef          CourseChef      `json:"chef"`
	Recipes       []models.Recipe `json:"recipeIds"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type PresignUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewCourseResponse(c *models.Course) *CourseResponse {
	ids := make([]uuid.UUID, len(c.Recipes))
	for i, link := range c.Recipes {
		ids[i] = link.RecipeID
	}
	return &CourseResponse{
		ID:            c.ID,
		ChefID:        c.ChefID,
		Title:         c.Title,
		Description:   c.Description,
		RecipeIDs:     ids,
		CoverImageURL: c.CoverImageURL,
		CreatedAt:     c.CreatedAt,
	}
}

func NewChefResponse(chef *models.Chef) ChefResponse {
	resp := ChefResponse{
		ID:         chef.ID,
		UserID:     chef.UserID,
		Bio:        chef.Bio,
		Specialty:  chef.Specialty,
		PictureURL: chef.PictureURL,
		CreatedAt:  chef.CreatedAt,
	}
	if chef.User != nil {
		resp.User = NewPublicUser(chef.User)
	}
	return resp
}

// MessageResponse is a body with nothing but a message.
type MessageResponse struct {
	Message string `json:"message"`
}
