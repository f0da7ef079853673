package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chef extends exactly one User. Its existence implies User.Role == RoleChef.
type Chef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	Bio        string    `gorm:"size:500" json:"bio"`
	Specialty  string    `gorm:"size:100" json:"specialty"`
	PictureURL string    `gorm:"size:512" json:"pictureUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (c *Chef) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
