package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values
const (
	RoleUser   = "USER"
	RoleAuthor = "AUTHOR"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username      string     `gorm:"uniqueIndex;not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	DisplayName   string     `gorm:"not null" json:"display_name"`
	Role          string     `gorm:"default:'USER';not null" json:"role"`
	IsActive      bool       `gorm:"default:true;not null" json:"is_active"` // soft state, never hard-deleted
	EmailVerified bool       `gorm:"default:false;not null" json:"email_verified"`
	Provider      string     `gorm:"default:'local';not null" json:"provider"`
	Avatar        *string    `json:"avatar,omitempty"`
	Bio           *string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
