package models

import "time"

type Chapter struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StoryID     int64     `json:"story_id" gorm:"not null;index;uniqueIndex:idx_chapter_story_slug"`
	Slug        string    `json:"slug" gorm:"size:200;not null;uniqueIndex:idx_chapter_story_slug"` // unique per story
	Title       string    `json:"title" gorm:"not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Order       int       `json:"order" gorm:"column:order;not null;index"` // reading sequence within the story
	UploaderID  string    `json:"uploader_id" gorm:"type:uuid;not null"`
	WordCount   int       `json:"word_count" gorm:"default:0;not null"`
	ReadingTime int       `json:"reading_time" gorm:"default:0;not null"` // minutes, derived from word count
	ViewCount   int64     `json:"view_count" gorm:"default:0;not null"`
	IsPublished bool      `json:"is_published" gorm:"default:false;not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Chapter) TableName() string {
	return "chapters"
}
