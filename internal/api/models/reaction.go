package models

import "time"

// Reaction kinds
const (
	ReactionLike   = "like"
	ReactionFollow = "follow"
)

// StoryReaction records a like or follow; one row per (user, story, kind).
type StoryReaction struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_user_story_kind"`
	StoryID   int64     `json:"story_id" gorm:"not null;index;uniqueIndex:idx_reaction_user_story_kind"`
	Kind      string    `json:"kind" gorm:"not null;uniqueIndex:idx_reaction_user_story_kind"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (StoryReaction) TableName() string {
	return "story_reactions"
}
