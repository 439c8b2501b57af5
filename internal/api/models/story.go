package models

import "time"

// Story status values. DRAFT/PUBLISHED/ARCHIVED track moderation,
// ONGOING/COMPLETED track serialization.
const (
	StoryDraft     = "DRAFT"
	StoryPublished = "PUBLISHED"
	StoryArchived  = "ARCHIVED"
	StoryOngoing   = "ONGOING"
	StoryCompleted = "COMPLETED"
)

type Story struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Title         string    `json:"title" gorm:"not null"`
	Description   *string   `json:"description,omitempty" gorm:"type:text"`
	CoverImage    *string   `json:"cover_image,omitempty"`
	AuthorID      string    `json:"author_id" gorm:"type:uuid;not null;index"`
	AuthorName    string    `json:"author_name" gorm:"not null"`
	Status        string    `json:"status" gorm:"default:'DRAFT';not null"`
	IsPublished   bool      `json:"is_published" gorm:"default:false;not null;index"`
	IsRecommended bool      `json:"is_recommended" gorm:"default:false;not null"`
	Tags          *string   `json:"tags,omitempty"` // comma-separated
	Country       *string   `json:"country,omitempty"`
	ViewCount     int64     `json:"view_count" gorm:"default:0;not null"`
	LikeCount     int64     `json:"like_count" gorm:"default:0;not null"`
	FollowCount   int64     `json:"follow_count" gorm:"default:0;not null"`
	Rating        float64   `json:"rating" gorm:"type:decimal(3,2);default:0;not null"`
	RatingCount   int64     `json:"rating_count" gorm:"default:0;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// associations
	Author     User       `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:story_categories;constraint:OnDelete:CASCADE;"`
	Chapters   []Chapter  `json:"chapters,omitempty" gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE;"`
}

func (Story) TableName() string {
	return "stories"
}
