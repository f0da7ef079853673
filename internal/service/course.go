package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/events"
	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/types"
	"gorm.io/gorm"
)

const (
	msgNotChef           = "Not authorized: Only registered chefs can create courses."
	msgRecipesNotOwned   = "One or more selected recipes do not exist or do not belong to you."
	msgCourseNotFound    = "Course not found"
	courseRecipePosition = "course_recipes.position ASC"
)

// CourseService is the course catalog. Courses belong to chefs and reference
// recipes owned by the chef's user.
type CourseService struct {
	db        *gorm.DB
	publisher events.Publisher
	logger    *slog.Logger
}

var _ ICourseService = (*CourseService)(nil)

// NewCourseService creates a CourseService backed by db.
func NewCourseService(db *gorm.DB, publisher events.Publisher, logger *slog.Logger) *CourseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseService{db: db, publisher: publisher, logger: logger}
}

// CreateCourse stores a course for the chef profile of userID. The chef check
// runs before any field validation. Recipe ownership is checked inside the
// insert transaction and a single foreign or missing id rejects the request.
func (s *CourseService) CreateCourse(ctx context.Context, userID uuid.UUID, req *types.CreateCourseRequest) (*models.Course, error) {
	db := s.db.WithContext(ctx)

	var chef models.Chef
	if err := db.First(&chef, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forbiddenError(msgNotChef)
		}
		return nil, fmt.Errorf("failed to load chef: %w", err)
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.CoverImageURL = strings.TrimSpace(req.CoverImageURL)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	recipeIDs, ok := parseRecipeIDs(req.RecipeIDs)
	if !ok {
		return nil, validationError(msgRecipesNotOwned)
	}

	course := &models.Course{
		ChefID:        chef.ID,
		Title:         req.Title,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(recipeIDs) > 0 {
			var owned int64
			if err := tx.Model(&models.Recipe{}).
				Where("id IN ? AND user_id = ?", recipeIDs, userID).
				Distinct("id").
				Count(&owned).Error; err != nil {
				return fmt.Errorf("failed to check recipe ownership: %w", err)
			}
			if owned != int64(len(recipeIDs)) {
				return validationError(msgRecipesNotOwned)
			}
		}

		if err := tx.Create(course).Error; err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}

		if len(recipeIDs) == 0 {
			return nil
		}
		links := make([]models.CourseRecipe, len(recipeIDs))
		for i, id := range recipeIDs {
			links[i] = models.CourseRecipe{CourseID: course.ID, RecipeID: id, Position: i}
		}
		if err := tx.Create(&links).Error; err != nil {
			if terr := translateStoreError(err, msgCourseNotFound); terr != err {
				return terr
			}
			return fmt.Errorf("failed to attach recipes: %w", err)
		}
		course.Recipes = links
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.New(events.TypeCourseCreated, map[string]string{
		"courseId": course.ID.String(),
		"chefId":   chef.ID.String(),
	}))
	return course, nil
}

// ListCourses returns every course, newest first, with chef and recipe
// summaries filled in.
func (s *CourseService) ListCourses(ctx context.Context) ([]types.CourseSummary, error) {
	var courses []models.Course
	if err := s.loadCourses(ctx).Order("courses.created_at DESC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	summaries := make([]types.CourseSummary, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		summary := types.CourseSummary{
			ID:            c.ID,
			Title:         c.Title,
			Description:   c.Description,
			CoverImageURL: c.CoverImageURL,
			Chef:          courseChef(c.Chef, false),
			Recipes:       make([]types.RecipeSummary, 0, len(c.Recipes)),
			CreatedAt:     c.CreatedAt,
		}
		for _, link := range c.Recipes {
			if link.Recipe == nil {
				continue
			}
			summary.Recipes = append(summary.Recipes, types.RecipeSummary{
				ID:          link.Recipe.ID,
				Title:       link.Recipe.Title,
				Description: link.Recipe.Description,
				ImageURL:    link.Recipe.ImageURL,
			})
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetCourse returns a course with its chef and full recipes in course order.
func (s *CourseService) GetCourse(ctx context.Context, id uuid.UUID) (*types.CourseDetail, error) {
	var course models.Course
	if err := s.loadCourses(ctx).First(&course, "courses.id = ?", id).Error; err != nil {
		return nil, translateStoreError(err, msgCourseNotFound)
	}

	detail := &types.CourseDetail{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		CoverImageURL: course.CoverImageURL,
		Chef:          courseChef(course.Chef, true),
		Recipes:       make([]models.Recipe, 0, len(course.Recipes)),
		CreatedAt:     course.CreatedAt,
	}
	for _, link := range course.Recipes {
		if link.Recipe != nil {
			detail.Recipes = append(detail.Recipes, *link.Recipe)
		}
	}
	return detail, nil
}

func (s *CourseService) loadCourses(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Chef.User").
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order(courseRecipePosition)
		}).
		Preload("Recipes.Recipe")
}

func courseChef(chef *models.Chef, detailed bool) types.CourseChef {
	if chef == nil {
		return types.CourseChef{}
	}
	out := types.CourseChef{
		ID:         chef.ID,
		UserID:     chef.UserID,
		Specialty:  chef.Specialty,
		PictureURL: chef.PictureURL,
	}
	if chef.User != nil {
		out.Username = chef.User.Username
		if detailed {
			out.Email = chef.User.Email
		}
	}
	if detailed {
		out.Bio = chef.Bio
	}
	return out
}

// parseRecipeIDs parses the requested recipe ids. An id that is not a UUID
// cannot name a recipe the chef owns, so it fails the whole request.
func parseRecipeIDs(raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(raw))
	for i, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}
