package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hungyeu/internal/api/models"
)

// StoryFilter narrows story listings. Zero values mean "no constraint".
type StoryFilter struct {
	Search          string
	Status          string
	CategoryIDs     []int64
	AuthorID        string
	PublishedOnly   bool
	RecommendedOnly bool
	SortBy          string // created_at | view_count | like_count | follow_count | rating | title
	SortOrder       string // asc | desc
}

// allow-list of sortable columns; anything else falls back to created_at
var storySortColumns = map[string]string{
	"created_at":   "created_at",
	"view_count":   "view_count",
	"like_count":   "like_count",
	"follow_count": "follow_count",
	"rating":       "rating",
	"title":        "title",
}

type StoryRepository interface {
	List(ctx context.Context, f StoryFilter, page, limit int) ([]models.Story, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Story, error)
	GetBySlug(ctx context.Context, slug string) (*models.Story, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, s *models.Story) error
	Update(ctx context.Context, s *models.Story) error
	Delete(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published bool) error
	SetRecommended(ctx context.Context, id int64, recommended bool) error
	IncrementViews(ctx context.Context, id, by int64) error
	AdjustCounter(ctx context.Context, id int64, column string, delta int64) error
	RecomputeRating(ctx context.Context, id int64) error
	ReplaceCategories(ctx context.Context, id int64, categoryIDs []int64) error
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) List(ctx context.Context, f StoryFilter, page, limit int) ([]models.Story, int64, error) {
	var list []models.Story
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Story{})

	// Token search: every token must match title, author name or slug.
	// "chi pheo nam" -> AND of per-token ILIKE OR clauses.
	if tokens := strings.Fields(f.Search); len(tokens) > 0 {
		clauses := make([]string, 0, len(tokens))
		args := make([]interface{}, 0, len(tokens)*3)
		for _, t := range tokens {
			p := "%" + t + "%"
			clauses = append(clauses, "(title ILIKE ? OR author_name ILIKE ? OR slug ILIKE ?)")
			args = append(args, p, p, p)
		}
		q = q.Where(strings.Join(clauses, " AND "), args...)
	}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.PublishedOnly {
		q = q.Where("is_published = true")
	}
	if f.RecommendedOnly {
		q = q.Where("is_recommended = true")
	}
	if len(f.CategoryIDs) > 0 {
		q = q.Where("id IN (SELECT story_id FROM story_categories WHERE category_id IN ?)", f.CategoryIDs)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := storySortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "asc"
	}

	offset := (page - 1) * limit
	if err := q.Preload("Categories").
		Order(col + " " + dir).
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *storyRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	var s models.Story
	if err := r.db.WithContext(ctx).Preload("Categories").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storyRepository) GetBySlug(ctx context.Context, slug string) (*models.Story, error) {
	var s models.Story
	if err := r.db.WithContext(ctx).Preload("Categories").Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Story{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *storyRepository) Create(ctx context.Context, s *models.Story) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	return nil
}

func (r *storyRepository) Update(ctx context.Context, s *models.Story) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("update story: %w", err)
	}
	return nil
}

func (r *storyRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Story{}, id).Error; err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

func (r *storyRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	updates := map[string]interface{}{"is_published": published}
	if published {
		updates["status"] = models.StoryPublished
	}
	res := r.db.WithContext(ctx).Model(&models.Story{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *storyRepository) SetRecommended(ctx context.Context, id int64, recommended bool) error {
	res := r.db.WithContext(ctx).Model(&models.Story{}).Where("id = ?", id).Update("is_recommended", recommended)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *storyRepository) IncrementViews(ctx context.Context, id, by int64) error {
	return r.db.WithContext(ctx).Model(&models.Story{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", by)).Error
}

// AdjustCounter bumps like_count/follow_count by delta, clamped at zero.
func (r *storyRepository) AdjustCounter(ctx context.Context, id int64, column string, delta int64) error {
	if column != "like_count" && column != "follow_count" {
		return fmt.Errorf("adjust counter: unsupported column %q", column)
	}
	return r.db.WithContext(ctx).Model(&models.Story{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta)).Error
}

// RecomputeRating refreshes the denormalized rating aggregate from story_ratings.
func (r *storyRepository) RecomputeRating(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE stories SET
			rating = COALESCE((SELECT AVG(score) FROM story_ratings WHERE story_id = ?), 0),
			rating_count = (SELECT COUNT(*) FROM story_ratings WHERE story_id = ?)
		WHERE id = ?`, id, id, id).Error
}

func (r *storyRepository) ReplaceCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	tx := r.db.WithContext(ctx).Begin()
	var s models.Story
	if err := tx.First(&s, id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("story not found: %w", err)
	}
	categories := make([]models.Category, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		categories = append(categories, models.Category{ID: cid})
	}
	if err := tx.Model(&s).Association("Categories").Replace(&categories); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace categories: %w", err)
	}
	return tx.Commit().Error
}
