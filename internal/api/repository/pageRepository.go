package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hungyeu/internal/api/models"
)

type PageRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Page, error)
	GetByID(ctx context.Context, id int64) (*models.Page, error)
	GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Page, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, p *models.Page) error
	Update(ctx context.Context, p *models.Page) error
	Delete(ctx context.Context, id int64) error
}

type pageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) List(ctx context.Context, activeOnly bool) ([]models.Page, error) {
	var list []models.Page
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	if err := q.Order("slug asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *pageRepository) GetByID(ctx context.Context, id int64) (*models.Page, error) {
	var p models.Page
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pageRepository) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Page, error) {
	var p models.Page
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	if err := q.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pageRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Page{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pageRepository) Create(ctx context.Context, p *models.Page) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

func (r *pageRepository) Update(ctx context.Context, p *models.Page) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return nil
}

func (r *pageRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Page{}, id).Error; err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}
