package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/slug"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error)
	// Upsert creates or refreshes a category keyed by name; safe to repeat.
	Upsert(ctx context.Context, name string, description *string) (*models.Category, error)
	Update(ctx context.Context, id int64, req dto.UpdateCategoryDTO) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	c, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error) {
	categorySlug, err := slug.MakeUnique(req.Name, func(candidate string) (bool, error) {
		return s.categoryRepo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        categorySlug,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Upsert(ctx context.Context, name string, description *string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	}
	if err := s.categoryRepo.UpsertByName(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req dto.UpdateCategoryDTO) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		category.Name = *req.Name
		newSlug, err := slug.MakeUnique(*req.Name, func(candidate string) (bool, error) {
			if candidate == category.Slug {
				return false, nil
			}
			return s.categoryRepo.SlugExists(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
		category.Slug = newSlug
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
