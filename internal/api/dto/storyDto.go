package dto

import (
	"time"

	"hungyeu/internal/api/models"
)

// CreateStoryDTO used for POST /api/stories
type CreateStoryDTO struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
	CoverImage  *string `json:"cover_image,omitempty" binding:"omitempty,url"`
	Tags        *string `json:"tags,omitempty"`
	Country     *string `json:"country,omitempty"`
	CategoryIDs []int64 `json:"category_ids,omitempty"`
}

// UpdateStoryDTO used for PUT /api/stories/:id (partial updates allowed)
type UpdateStoryDTO struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
	CoverImage  *string `json:"cover_image,omitempty" binding:"omitempty,url"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED ONGOING COMPLETED"`
	Tags        *string `json:"tags,omitempty"`
	Country     *string `json:"country,omitempty"`
	CategoryIDs []int64 `json:"category_ids,omitempty"`
}

type RejectStoryDTO struct {
	Reason string `json:"reason" binding:"required,min=1,max=1000"`
}

type RateStoryDTO struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

type StoryResponse struct {
	ID            int64             `json:"id"`
	Slug          string            `json:"slug"`
	Title         string            `json:"title"`
	Description   *string           `json:"description,omitempty"`
	CoverImage    *string           `json:"cover_image,omitempty"`
	AuthorID      string            `json:"author_id"`
	AuthorName    string            `json:"author_name"`
	Status        string            `json:"status"`
	IsPublished   bool              `json:"is_published"`
	IsRecommended bool              `json:"is_recommended"`
	Tags          *string           `json:"tags,omitempty"`
	Country       *string           `json:"country,omitempty"`
	ViewCount     int64             `json:"view_count"`
	LikeCount     int64             `json:"like_count"`
	FollowCount   int64             `json:"follow_count"`
	Rating        float64           `json:"rating"`
	RatingCount   int64             `json:"rating_count"`
	Categories    []models.Category `json:"categories,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Viewer        *ViewerState      `json:"viewer,omitempty"`
}

// ViewerState is the requesting user's own relationship to a story, attached
// to detail responses when the request carries a valid token.
type ViewerState struct {
	Liked    bool `json:"liked"`
	Followed bool `json:"followed"`
	Rating   *int `json:"rating,omitempty"`
}

func (d CreateStoryDTO) ToModel() models.Story {
	return models.Story{
		Title:       d.Title,
		Description: d.Description,
		CoverImage:  d.CoverImage,
		Tags:        d.Tags,
		Country:     d.Country,
	}
}

func (d UpdateStoryDTO) ApplyTo(s *models.Story) {
	if d.Title != nil {
		s.Title = *d.Title
	}
	if d.Description != nil {
		s.Description = d.Description
	}
	if d.CoverImage != nil {
		s.CoverImage = d.CoverImage
	}
	if d.Status != nil {
		s.Status = *d.Status
	}
	if d.Tags != nil {
		s.Tags = d.Tags
	}
	if d.Country != nil {
		s.Country = d.Country
	}
}

func FromModelToStoryResponse(s *models.Story) *StoryResponse {
	return &StoryResponse{
		ID:            s.ID,
		Slug:          s.Slug,
		Title:         s.Title,
		Description:   s.Description,
		CoverImage:    s.CoverImage,
		AuthorID:      s.AuthorID,
		AuthorName:    s.AuthorName,
		Status:        s.Status,
		IsPublished:   s.IsPublished,
		IsRecommended: s.IsRecommended,
		Tags:          s.Tags,
		Country:       s.Country,
		ViewCount:     s.ViewCount,
		LikeCount:     s.LikeCount,
		FollowCount:   s.FollowCount,
		Rating:        s.Rating,
		RatingCount:   s.RatingCount,
		Categories:    s.Categories,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
