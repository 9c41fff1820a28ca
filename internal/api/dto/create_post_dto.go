package dto

type CreatePostDTO struct {
	Title   string   `json:"title" binding:"required" validate:"min=1,max=255"`
	Content string   `json:"content" binding:"required" validate:"min=1"`
	Excerpt string   `json:"excerpt"`
	Author  string   `json:"author" binding:"required" validate:"min=1,max=255"`
	Status  string   `json:"status" validate:"omitempty,oneof=draft published"`
	Tags    []string `json:"tags"`
}
