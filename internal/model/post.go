package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 博客文章模型，存储于 blog_posts 集合
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content" json:"content"` // 富文本，原样存储
	Excerpt      string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	Author       string             `bson:"author" json:"author"`
	Status       string             `bson:"status" json:"status"` // draft / published
	Tags         []string           `bson:"tags" json:"tags"`
	Attachments  []Attachment       `bson:"attachments" json:"attachments"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	PublishedAt  *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"` // 首次发布时写入，之后不再自动变更
	ViewCount    int64              `bson:"view_count" json:"view_count"`
}

// Attachment 附件记录，内嵌于 Post，不独立存在
type Attachment struct {
	Filename         string    `bson:"filename" json:"filename"` // 存储生成的唯一文件名
	OriginalFilename string    `bson:"original_filename" json:"original_filename"`
	URL              string    `bson:"url" json:"url"`
	Size             int64     `bson:"size" json:"size"`
	MimeType         string    `bson:"mime_type" json:"mime_type"`
	UploadedAt       time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

func (Post) CollectionName() string {
	return "blog_posts"
}
