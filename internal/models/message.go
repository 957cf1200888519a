package models

import "time"

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

type Message struct {
	ID           int64      `json:"id"`
	Text         string     `json:"text"`
	AudioURL     *string    `json:"audio_url,omitempty"`
	CategoryID   int64      `json:"category_id"`
	CategoryName string     `json:"category_name,omitempty"` // денормализовано сервером
	CreatedBy    int64      `json:"created_by"`
	CreatorName  string     `json:"creator_name,omitempty"`
	IsActive     bool       `json:"is_active"`
	IsFavorite   bool       `json:"is_favorite"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// CreateMessage — тело POST /messages.
type CreateMessage struct {
	Text       string `json:"text"`
	CategoryID int64  `json:"category_id"`
}

// UpdateMessage — тело PUT /messages/:id; nil-поля не меняются.
type UpdateMessage struct {
	Text       *string `json:"text,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}
