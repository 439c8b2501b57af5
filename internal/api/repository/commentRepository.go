package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hungyeu/internal/api/models"
)

// CommentTarget selects the entity a comment thread hangs off.
type CommentTarget struct {
	StoryID   *int64
	ChapterID *int64
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// ListTopLevel returns non-reply comments for a story or chapter, newest first.
	ListTopLevel(ctx context.Context, target CommentTarget, page, limit int) ([]models.Comment, int64, error)
	ListReplies(ctx context.Context, parentID int64, page, limit int) ([]models.Comment, int64, error)
	// ListRecent returns comments across all targets, newest first. Used by
	// the admin moderation view and exports.
	ListRecent(ctx context.Context, page, limit int) ([]models.Comment, int64, error)
	// SoftDelete marks the comment deleted; the row stays for thread shape.
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	AdjustReplyCount(ctx context.Context, id int64, delta int) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, target CommentTarget, page, limit int) ([]models.Comment, int64, error) {
	var list []models.Comment
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Comment{}).Where("parent_id IS NULL")
	switch {
	case target.StoryID != nil:
		q = q.Where("story_id = ?", *target.StoryID)
	case target.ChapterID != nil:
		q = q.Where("chapter_id = ?", *target.ChapterID)
	default:
		return nil, 0, fmt.Errorf("list comments: no target given")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.Preload("User").Order("created_at desc").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID int64, page, limit int) ([]models.Comment, int64, error) {
	var list []models.Comment
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Comment{}).Where("parent_id = ?", parentID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	// replies read oldest first, conversation order
	if err := q.Preload("User").Order("created_at asc").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *commentRepository) ListRecent(ctx context.Context, page, limit int) ([]models.Comment, int64, error) {
	var list []models.Comment
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Comment{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.Preload("User").Order("created_at desc").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) Restore(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("is_deleted", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) AdjustReplyCount(ctx context.Context, id int64, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).
		UpdateColumn("reply_count", gorm.Expr("GREATEST(reply_count + ?, 0)", delta)).Error
}
