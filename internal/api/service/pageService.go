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

var ErrPageNotFound = errors.New("page not found")

type PageService interface {
	// GetBySlug serves the public page view; inactive pages are invisible.
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	ListAll(ctx context.Context) ([]models.Page, error)
	ListActive(ctx context.Context) ([]models.Page, error)
	Create(ctx context.Context, req dto.CreatePageDTO) (*models.Page, error)
	Update(ctx context.Context, id int64, req dto.UpdatePageDTO) (*models.Page, error)
	Delete(ctx context.Context, id int64) error
}

type pageService struct {
	pageRepo repository.PageRepository
}

func NewPageService(pageRepo repository.PageRepository) PageService {
	return &pageService{pageRepo: pageRepo}
}

func (s *pageService) GetBySlug(ctx context.Context, pageSlug string) (*models.Page, error) {
	p, err := s.pageRepo.GetBySlug(ctx, pageSlug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *pageService) ListAll(ctx context.Context) ([]models.Page, error) {
	return s.pageRepo.List(ctx, false)
}

func (s *pageService) ListActive(ctx context.Context) ([]models.Page, error) {
	return s.pageRepo.List(ctx, true)
}

func (s *pageService) Create(ctx context.Context, req dto.CreatePageDTO) (*models.Page, error) {
	var pageSlug string
	var err error
	if req.Slug != nil && *req.Slug != "" {
		pageSlug = slug.Make(*req.Slug)
		taken, err := s.pageRepo.SlugExists(ctx, pageSlug)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.New("page slug already in use")
		}
	} else {
		pageSlug, err = slug.MakeUnique(req.Title, func(candidate string) (bool, error) {
			return s.pageRepo.SlugExists(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	page := &models.Page{
		Slug:        pageSlug,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		IsActive:    active,
	}
	if err := s.pageRepo.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *pageService) Update(ctx context.Context, id int64, req dto.UpdatePageDTO) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Description != nil {
		page.Description = req.Description
	}
	if req.Content != nil {
		page.Content = *req.Content
	}
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}

	if err := s.pageRepo.Update(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *pageService) Delete(ctx context.Context, id int64) error {
	if _, err := s.pageRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}
	return s.pageRepo.Delete(ctx, id)
}
