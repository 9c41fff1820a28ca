package consts

const (
	// BucketThumbnails 缩略图存储桶目录名
	BucketThumbnails = "thumbnails"
	// BucketAttachments 附件存储桶目录名
	BucketAttachments = "attachments"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

const (
	// MimeOctetStream 无法识别类型时的兜底 MIME
	MimeOctetStream = "application/octet-stream"
)

const (
	DefaultPageSkip  = 0
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)
