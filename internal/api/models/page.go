package models

import "time"

// Page is static informational content (about, contact, copyright...).
type Page struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Content     string    `json:"content" gorm:"type:text;not null"` // HTML
	IsActive    bool      `json:"is_active" gorm:"default:true;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Page) TableName() string {
	return "pages"
}
