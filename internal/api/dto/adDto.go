package dto

type CreateAdDTO struct {
	Type     string  `json:"type" binding:"required,oneof=POPUP BANNER"`
	Position string  `json:"position" binding:"required,min=1,max=100"`
	ImageURL string  `json:"image_url" binding:"required,url"`
	LinkURL  string  `json:"link_url" binding:"required,url"`
	Title    *string `json:"title,omitempty" binding:"omitempty,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UpdateAdDTO struct {
	Type     *string `json:"type,omitempty" binding:"omitempty,oneof=POPUP BANNER"`
	Position *string `json:"position,omitempty" binding:"omitempty,min=1,max=100"`
	ImageURL *string `json:"image_url,omitempty" binding:"omitempty,url"`
	LinkURL  *string `json:"link_url,omitempty" binding:"omitempty,url"`
	Title    *string `json:"title,omitempty" binding:"omitempty,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}
