package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Difficulty values accepted for a recipe.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Ingredient struct {
	Name   string `json:"name" validate:"required"`
	Amount string `json:"amount" validate:"required"`
	Unit   string `json:"unit" validate:"required"`
}

// Recipe is owned by exactly one User; UserID never changes after creation.
type Recipe struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	PrepTime     string       `gorm:"size:50;not null" json:"prepTime"`
	CookTime     string       `gorm:"size:50;not null" json:"cookTime"`
	Servings     int          `gorm:"not null" json:"servings"`
	Difficulty   string       `gorm:"size:10;not null" json:"difficulty"`
	Category     string       `gorm:"size:100;not null" json:"category"`
	ImageURL     string       `gorm:"size:512" json:"imageUrl"`
	Ingredients  []Ingredient `gorm:"type:jsonb;serializer:json;not null" json:"ingredients"`
	Instructions []string     `gorm:"type:jsonb;serializer:json;not null" json:"instructions"`
	CreatedAt    time.Time    `gorm:"index" json:"createdAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
