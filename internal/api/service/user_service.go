package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/auth"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrInvalidRole   = errors.New("invalid role")
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
	List(ctx context.Context, f repository.UserFilter, page, limit int) ([]dto.UserResponse, int64, error)
	SetActive(ctx context.Context, userID string, active bool) error
	SetRole(ctx context.Context, userID, role string) error
}

type userService struct {
	userRepo repository.UserRepository
	mailer   EmailService
}

func NewUserService(userRepo repository.UserRepository, mailer EmailService) UserService {
	return &userService{userRepo: userRepo, mailer: mailer}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := auth.VerifyPassword(user.Password, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	return s.userRepo.Update(user)
}

func (s *userService) List(ctx context.Context, f repository.UserFilter, page, limit int) ([]dto.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, f, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return responses, total, nil
}

// SetActive toggles the soft active state; accounts are never hard-deleted.
// Deactivated users get a system notice, best-effort.
func (s *userService) SetActive(ctx context.Context, userID string, active bool) error {
	err := s.userRepo.SetActive(ctx, userID, active)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if !active {
		if user, err := s.userRepo.FindByID(userID); err == nil {
			s.mailer.SendSystemNotice(user.Email,
				"Tài khoản của bạn đã bị khóa",
				"Tài khoản của bạn đã bị khóa bởi quản trị viên. Vui lòng liên hệ hỗ trợ nếu bạn cho rằng đây là nhầm lẫn.")
		}
	}
	return nil
}

func (s *userService) SetRole(ctx context.Context, userID, role string) error {
	switch role {
	case models.RoleUser, models.RoleAuthor, models.RoleAdmin:
	default:
		return ErrInvalidRole
	}

	err := s.userRepo.SetRole(ctx, userID, role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
