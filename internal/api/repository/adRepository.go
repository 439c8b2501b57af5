package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hungyeu/internal/api/models"
)

type AdRepository interface {
	List(ctx context.Context) ([]models.Ad, error)
	// ListActive returns the ads to deliver for a placement; empty type or
	// position matches all.
	ListActive(ctx context.Context, adType, position string) ([]models.Ad, error)
	GetByID(ctx context.Context, id int64) (*models.Ad, error)
	Create(ctx context.Context, a *models.Ad) error
	Update(ctx context.Context, a *models.Ad) error
	Delete(ctx context.Context, id int64) error
}

type adRepository struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) List(ctx context.Context) ([]models.Ad, error) {
	var list []models.Ad
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *adRepository) ListActive(ctx context.Context, adType, position string) ([]models.Ad, error) {
	var list []models.Ad
	q := r.db.WithContext(ctx).Where("is_active = true")
	if adType != "" {
		q = q.Where("type = ?", adType)
	}
	if position != "" {
		q = q.Where("position = ?", position)
	}
	if err := q.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *adRepository) GetByID(ctx context.Context, id int64) (*models.Ad, error) {
	var a models.Ad
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adRepository) Create(ctx context.Context, a *models.Ad) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create ad: %w", err)
	}
	return nil
}

func (r *adRepository) Update(ctx context.Context, a *models.Ad) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("update ad: %w", err)
	}
	return nil
}

func (r *adRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Ad{}, id).Error; err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	return nil
}
