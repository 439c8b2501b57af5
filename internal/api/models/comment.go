package models

import "time"

// Comment attaches to either a story or a chapter (exactly one of the two
// foreign keys is set). Replies reference their parent; deletes are soft.
type Comment struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;index"`
	StoryID    *int64    `json:"story_id,omitempty" gorm:"index"`
	ChapterID  *int64    `json:"chapter_id,omitempty" gorm:"index"`
	ParentID   *int64    `json:"parent_id,omitempty" gorm:"index"`
	Content    string    `json:"content" gorm:"not null;type:text"`
	IsDeleted  bool      `json:"is_deleted" gorm:"default:false;not null"`
	ReplyCount int       `json:"reply_count" gorm:"default:0;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
