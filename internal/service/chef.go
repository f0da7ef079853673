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

// ChefService is the chef registry: it promotes users to chefs and looks up
// chef profiles.
type ChefService struct {
	db        *gorm.DB
	publisher events.Publisher
	logger    *slog.Logger
}

var _ IChefService = (*ChefService)(nil)

// NewChefService creates a ChefService that promotes users and serves chef
// profiles.
func NewChefService(db *gorm.DB, publisher events.Publisher, logger *slog.Logger) *ChefService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChefService{db: db, publisher: publisher, logger: logger}
}

// Promote creates the chef record and flips the user's role in one
// transaction. Either both writes land or neither does.
func (s *ChefService) Promote(ctx context.Context, userID uuid.UUID, req *types.RegisterChefRequest) (*models.Chef, *models.User, error) {
	req.Bio = strings.TrimSpace(req.Bio)
	req.Specialty = strings.TrimSpace(req.Specialty)
	req.PictureURL = strings.TrimSpace(req.PictureURL)
	if err := validateStruct(req); err != nil {
		return nil, nil, err
	}

	var (
		user models.User
		chef models.Chef
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return translateStoreError(err, "User not found")
		}
		if user.IsChef() {
			return conflictError("User is already registered as a chef")
		}

		chef = models.Chef{
			UserID:     user.ID,
			Bio:        req.Bio,
			Specialty:  req.Specialty,
			PictureURL: req.PictureURL,
		}
		if err := tx.Create(&chef).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflictError("User is already registered as a chef")
			}
			return fmt.Errorf("failed to create chef: %w", err)
		}

		// Conditional on the current role so a concurrent promotion loses.
		result := tx.Model(&models.User{}).
			Where("id = ? AND role = ?", user.ID, models.RoleUser).
			Update("role", models.RoleChef)
		if result.Error != nil {
			return fmt.Errorf("failed to update role: %w", result.Error)
		}
		if result.RowsAffected != 1 {
			return conflictError("User is already registered as a chef")
		}
		user.Role = models.RoleChef
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.New(events.TypeChefPromoted, map[string]string{
		"chefId": chef.ID.String(),
		"userId": user.ID.String(),
	}))
	return &chef, &user, nil
}

// GetByUserID returns the chef profile for a user with the user preloaded.
func (s *ChefService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Chef, error) {
	var chef models.Chef
	if err := s.db.WithContext(ctx).Preload("User").First(&chef, "user_id = ?", userID).Error; err != nil {
		return nil, translateStoreError(err, "Chef profile not found")
	}
	return &chef, nil
}
