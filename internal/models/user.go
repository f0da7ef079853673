package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the account role. The only transition is RoleUser -> RoleChef.
type Role string

const (
	RoleUser Role = "user"
	RoleChef Role = "chef"
)

type User struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
	Username               string     `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Email                  string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash           string     `gorm:"not null" json:"-"`
	Role                   Role       `gorm:"size:10;not null;default:'user'" json:"role"`
	IsActive               bool       `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt            *time.Time `json:"lastLogin,omitempty"`
	ResetPasswordExpiresAt *time.Time `json:"-"`
	// SHA-256 of the emailed reset token; the token itself is never stored.
	ResetPasswordTokenHash string     `gorm:"size:64" json:"-"`
	PasswordChangedAt      *time.Time `json:"-"`
	// Bumped on every password reset; tokens carrying an older value are refused.
	PasswordVersion int `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate assigns the primary key so SQLite and PostgreSQL behave alike.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsChef() bool {
	return u.Role == RoleChef
}
