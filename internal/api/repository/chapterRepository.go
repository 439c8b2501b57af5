package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hungyeu/internal/api/models"
)

type ChapterRepository interface {
	ListByStory(ctx context.Context, storyID int64, publishedOnly bool, page, limit int) ([]models.Chapter, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Chapter, error)
	GetBySlug(ctx context.Context, storyID int64, slug string) (*models.Chapter, error)
	SlugExists(ctx context.Context, storyID int64, slug string) (bool, error)
	NextOrder(ctx context.Context, storyID int64) (int, error)
	// Neighbors returns the published chapters immediately before and after
	// the given order; either may be nil at the edges.
	Neighbors(ctx context.Context, storyID int64, order int) (prev, next *models.Chapter, err error)
	Create(ctx context.Context, c *models.Chapter) error
	Update(ctx context.Context, c *models.Chapter) error
	Delete(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published bool) error
	IncrementViews(ctx context.Context, id, by int64) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) ListByStory(ctx context.Context, storyID int64, publishedOnly bool, page, limit int) ([]models.Chapter, int64, error) {
	var list []models.Chapter
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Chapter{}).Where("story_id = ?", storyID)
	if publishedOnly {
		q = q.Where("is_published = true")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.Order(`"order" asc`).Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *chapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	var c models.Chapter
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chapterRepository) GetBySlug(ctx context.Context, storyID int64, slug string) (*models.Chapter, error) {
	var c models.Chapter
	if err := r.db.WithContext(ctx).Where("story_id = ? AND slug = ?", storyID, slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chapterRepository) SlugExists(ctx context.Context, storyID int64, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Chapter{}).
		Where("story_id = ? AND slug = ?", storyID, slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *chapterRepository) NextOrder(ctx context.Context, storyID int64) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&models.Chapter{}).
		Where("story_id = ?", storyID).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("next chapter order: %w", err)
	}
	return max + 1, nil
}

func (r *chapterRepository) Neighbors(ctx context.Context, storyID int64, order int) (*models.Chapter, *models.Chapter, error) {
	var prev, next models.Chapter

	err := r.db.WithContext(ctx).
		Where(`story_id = ? AND is_published = true AND "order" < ?`, storyID, order).
		Order(`"order" desc`).First(&prev).Error
	hasPrev := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	err = r.db.WithContext(ctx).
		Where(`story_id = ? AND is_published = true AND "order" > ?`, storyID, order).
		Order(`"order" asc`).First(&next).Error
	hasNext := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	var p, n *models.Chapter
	if hasPrev {
		p = &prev
	}
	if hasNext {
		n = &next
	}
	return p, n, nil
}

func (r *chapterRepository) Create(ctx context.Context, c *models.Chapter) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}
	return nil
}

func (r *chapterRepository) Update(ctx context.Context, c *models.Chapter) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}
	return nil
}

func (r *chapterRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Chapter{}, id).Error; err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	return nil
}

func (r *chapterRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	res := r.db.WithContext(ctx).Model(&models.Chapter{}).Where("id = ?", id).Update("is_published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *chapterRepository) IncrementViews(ctx context.Context, id, by int64) error {
	return r.db.WithContext(ctx).Model(&models.Chapter{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", by)).Error
}
