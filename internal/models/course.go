package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is owned by a Chef, not directly by a User.
type Course struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChefID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"chefId"`
	Chef          *Chef          `gorm:"foreignKey:ChefID" json:"-"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	CoverImageURL string         `gorm:"size:512" json:"coverImageUrl"`
	Recipes       []CourseRecipe `gorm:"foreignKey:CourseID" json:"-"`
	CreatedAt     time.Time      `gorm:"index" json:"createdAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CourseRecipe is a non-owning, ordered reference from a Course to a Recipe.
type CourseRecipe struct {
	CourseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position int       `gorm:"not null"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID"`
}

func (CourseRecipe) TableName() string {
	return "course_recipes"
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Chef{}, &Recipe{}, &Course{}, &CourseRecipe{}}
}
