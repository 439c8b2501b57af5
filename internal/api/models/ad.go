package models

import "time"

// Ad type values
const (
	AdPopup  = "POPUP"
	AdBanner = "BANNER"
)

type Ad struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Type      string    `json:"type" gorm:"not null;index"` // POPUP or BANNER
	Position  string    `json:"position" gorm:"not null;index"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	LinkURL   string    `json:"link_url" gorm:"not null"`
	Title     *string   `json:"title,omitempty"`
	IsActive  bool      `json:"is_active" gorm:"default:true;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Ad) TableName() string {
	return "ads"
}
