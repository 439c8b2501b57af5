package dto

import (
	"time"

	"hungyeu/internal/api/models"
)

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Avatar      *string `json:"avatar,omitempty" binding:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=USER AUTHOR ADMIN"`
}

// UserResponse is the public view of an account; no password hash, ever.
type UserResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	Provider      string     `json:"provider"`
	Avatar        *string    `json:"avatar,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

func FromModelToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Role:          u.Role,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		Provider:      u.Provider,
		Avatar:        u.Avatar,
		Bio:           u.Bio,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
	}
}
