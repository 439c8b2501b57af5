package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
)

var ErrAdNotFound = errors.New("ad not found")

type AdService interface {
	// Deliver returns the active ads for a placement on reading pages.
	Deliver(ctx context.Context, adType, position string) ([]models.Ad, error)
	List(ctx context.Context) ([]models.Ad, error)
	Create(ctx context.Context, req dto.CreateAdDTO) (*models.Ad, error)
	Update(ctx context.Context, id int64, req dto.UpdateAdDTO) (*models.Ad, error)
	Delete(ctx context.Context, id int64) error
}

type adService struct {
	adRepo repository.AdRepository
}

func NewAdService(adRepo repository.AdRepository) AdService {
	return &adService{adRepo: adRepo}
}

func (s *adService) Deliver(ctx context.Context, adType, position string) ([]models.Ad, error) {
	return s.adRepo.ListActive(ctx, adType, position)
}

func (s *adService) List(ctx context.Context) ([]models.Ad, error) {
	return s.adRepo.List(ctx)
}

func (s *adService) Create(ctx context.Context, req dto.CreateAdDTO) (*models.Ad, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ad := &models.Ad{
		Type:     req.Type,
		Position: req.Position,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Title:    req.Title,
		IsActive: active,
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *adService) Update(ctx context.Context, id int64, req dto.UpdateAdDTO) (*models.Ad, error) {
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}

	if req.Type != nil {
		ad.Type = *req.Type
	}
	if req.Position != nil {
		ad.Position = *req.Position
	}
	if req.ImageURL != nil {
		ad.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		ad.LinkURL = *req.LinkURL
	}
	if req.Title != nil {
		ad.Title = req.Title
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}

	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *adService) Delete(ctx context.Context, id int64) error {
	if _, err := s.adRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdNotFound
		}
		return err
	}
	return s.adRepo.Delete(ctx, id)
}
