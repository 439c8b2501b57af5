package dto

import (
	"time"

	"hungyeu/internal/api/models"
)

// CreateCommentDTO for creating a comment or a reply
type CreateCommentDTO struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Content     string    `json:"content"`
	ParentID    *int64    `json:"parent_id,omitempty"`
	IsDeleted   bool      `json:"is_deleted"`
	ReplyCount  int       `json:"reply_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO.
// Deleted comments keep their slot in the thread but lose their content.
func FromModelToCommentResponse(c *models.Comment) *CommentResponse {
	content := c.Content
	if c.IsDeleted {
		content = ""
	}
	return &CommentResponse{
		ID:          c.ID,
		Username:    c.User.Username,
		DisplayName: c.User.DisplayName,
		Content:     content,
		ParentID:    c.ParentID,
		IsDeleted:   c.IsDeleted,
		ReplyCount:  c.ReplyCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
