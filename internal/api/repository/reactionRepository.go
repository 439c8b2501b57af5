package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hungyeu/internal/api/models"
)

type ReactionRepository interface {
	Exists(ctx context.Context, userID string, storyID int64, kind string) (bool, error)
	Create(ctx context.Context, r *models.StoryReaction) error
	Delete(ctx context.Context, userID string, storyID int64, kind string) (bool, error)
	// FollowerEmails returns the addresses of active users following a story,
	// for new-chapter notifications.
	FollowerEmails(ctx context.Context, storyID int64) ([]string, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Exists(ctx context.Context, userID string, storyID int64, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StoryReaction{}).
		Where("user_id = ? AND story_id = ? AND kind = ?", userID, storyID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.StoryReaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return fmt.Errorf("create reaction: %w", err)
	}
	return nil
}

func (r *reactionRepository) Delete(ctx context.Context, userID string, storyID int64, kind string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ? AND kind = ?", userID, storyID, kind).
		Delete(&models.StoryReaction{})
	if res.Error != nil {
		return false, fmt.Errorf("delete reaction: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) FollowerEmails(ctx context.Context, storyID int64) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&models.StoryReaction{}).
		Joins("JOIN users ON users.id = story_reactions.user_id").
		Where("story_reactions.story_id = ? AND story_reactions.kind = ? AND users.is_active = true", storyID, models.ReactionFollow).
		Pluck("users.email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
