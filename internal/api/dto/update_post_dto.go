package dto

import "time"

// UpdatePostDTO 部分更新，nil 字段不参与 $set
type UpdatePostDTO struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Content     *string    `json:"content" validate:"omitempty,min=1"`
	Excerpt     *string    `json:"excerpt"`
	Status      *string    `json:"status" validate:"omitempty,oneof=draft published"`
	Tags        *[]string  `json:"tags"`
	PublishedAt *time.Time `json:"published_at"`
}
