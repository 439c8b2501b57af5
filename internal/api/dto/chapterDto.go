package dto

import (
	"time"

	"hungyeu/internal/api/models"
)

type CreateChapterDTO struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1"`
	// Order 0 means "append after the last chapter"
	Order int `json:"order" binding:"omitempty,min=0"`
}

type UpdateChapterDTO struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content,omitempty" binding:"omitempty,min=1"`
	Order   *int    `json:"order,omitempty" binding:"omitempty,min=1"`
}

// ChapterResponse omits content; used in listings.
type ChapterResponse struct {
	ID          int64     `json:"id"`
	StoryID     int64     `json:"story_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Order       int       `json:"order"`
	WordCount   int       `json:"word_count"`
	ReadingTime int       `json:"reading_time"`
	ViewCount   int64     `json:"view_count"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChapterReadResponse carries the full content plus reading navigation.
type ChapterReadResponse struct {
	ChapterResponse
	Content  string           `json:"content"`
	Previous *ChapterResponse `json:"previous,omitempty"`
	Next     *ChapterResponse `json:"next,omitempty"`
}

func FromModelToChapterResponse(c *models.Chapter) *ChapterResponse {
	return &ChapterResponse{
		ID:          c.ID,
		StoryID:     c.StoryID,
		Slug:        c.Slug,
		Title:       c.Title,
		Order:       c.Order,
		WordCount:   c.WordCount,
		ReadingTime: c.ReadingTime,
		ViewCount:   c.ViewCount,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromModelToChapterReadResponse(c *models.Chapter, prev, next *models.Chapter) *ChapterReadResponse {
	resp := &ChapterReadResponse{
		ChapterResponse: *FromModelToChapterResponse(c),
		Content:         c.Content,
	}
	if prev != nil {
		resp.Previous = FromModelToChapterResponse(prev)
	}
	if next != nil {
		resp.Next = FromModelToChapterResponse(next)
	}
	return resp
}
