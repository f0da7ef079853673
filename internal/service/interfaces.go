package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/types"
)

// IAuthService defines the interface for credential operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error
}

// IChefService defines the interface for chef registry operations
type IChefService interface {
	Promote(ctx context.Context, userID uuid.UUID, req *types.RegisterChefRequest) (*models.Chef, *models.User, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Chef, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, ownerID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	ListRecipes(ctx context.Context, ownerID uuid.UUID) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id, viewerID uuid.UUID) (*models.Recipe, error)
}

// ICourseService defines the interface for course catalog operations
type ICourseService interface {
	CreateCourse(ctx context.Context, userID uuid.UUID, req *types.CreateCourseRequest) (*models.Course, error)
	ListCourses(ctx context.Context) ([]types.CourseSummary, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*types.CourseDetail, error)
}

// IImageService defines the interface for image upload operations
type IImageService interface {
	PresignUpload(ctx context.Context, userID uuid.UUID, req *types.PresignUploadRequest) (*types.PresignUploadResponse, error)
}
