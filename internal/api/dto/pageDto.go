package dto

type CreatePageDTO struct {
	Slug        *string `json:"slug,omitempty"` // derived from title when absent
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Content     string  `json:"content" binding:"required"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdatePageDTO struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Content     *string `json:"content,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
