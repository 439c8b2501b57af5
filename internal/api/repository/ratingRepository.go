package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hungyeu/internal/api/models"
)

type RatingRepository interface {
	GetByUserAndStory(ctx context.Context, userID string, storyID int64) (*models.StoryRating, error)
	// Upsert writes the user's score for a story, one row per (user, story).
	Upsert(ctx context.Context, rating *models.StoryRating) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetByUserAndStory(ctx context.Context, userID string, storyID int64) (*models.StoryRating, error) {
	var rating models.StoryRating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.StoryRating) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "story_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(rating).Error; err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}
