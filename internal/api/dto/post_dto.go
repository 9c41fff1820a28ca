package dto

import "time"

type PostDTO struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Excerpt      string          `json:"excerpt,omitempty"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	Author       string          `json:"author"`
	Status       string          `json:"status"`
	Tags         []string        `json:"tags"`
	Attachments  []AttachmentDTO `json:"attachments"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	PublishedAt  *time.Time      `json:"published_at,omitempty"`
	ViewCount    int64           `json:"view_count"`
}

type AttachmentDTO struct {
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	URL              string    `json:"url"`
	Size             int64     `json:"size"`
	MimeType         string    `json:"mime_type"`
	UploadedAt       time.Time `json:"uploaded_at"`
}
