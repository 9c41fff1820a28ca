package service

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/pkg/blobstore"
	"Chronicle/internal/pkg/consts"
	"context"
	log "log/slog"
	"mime"
	"mime/multipart"
	"path"
	"strings"
)

type FileService interface {
	// ResolveContentType 声明类型优先，缺失时按扩展名猜测，再兜底为二进制流
	ResolveContentType(declared, filename string) string
	ValidateThumbnailType(contentType string) error
	ValidateAttachmentType(contentType string) error
	ValidateSize(size int64) error

	SaveThumbnail(ctx context.Context, file *multipart.FileHeader) (*blobstore.StoredFile, error)
	SaveAttachment(ctx context.Context, file *multipart.FileHeader) (*blobstore.StoredFile, error)

	BlobPath(bucket, filename string) string
	BlobExists(bucket, filename string) bool
	DeleteBlob(bucket, filename string) bool
}

type fileServiceImpl struct {
	store         *blobstore.Store
	maxSize       int64
	imageTypes    map[string]struct{}
	documentTypes map[string]struct{}
}

func NewFileService(cfg config.UploadConfig, store *blobstore.Store) FileService {
	return &fileServiceImpl{
		store:         store,
		maxSize:       cfg.MaxSizeBytes(),
		imageTypes:    toSet(cfg.ImageTypes),
		documentTypes: toSet(cfg.DocumentTypes),
	}
}

func toSet(types []string) map[string]struct{} {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// ResolveContentType 解析上传文件的 MIME 类型
func (s *fileServiceImpl) ResolveContentType(declared, filename string) string {
	if declared != "" {
		return declared
	}
	if guessed := mime.TypeByExtension(path.Ext(filename)); guessed != "" {
		// 丢弃 "; charset=..." 等参数，白名单为精确匹配
		if base, _, found := strings.Cut(guessed, ";"); found {
			return strings.TrimSpace(base)
		}
		return guessed
	}
	return consts.MimeOctetStream
}

// ValidateThumbnailType 缩略图只允许图片白名单内的类型
func (s *fileServiceImpl) ValidateThumbnailType(contentType string) error {
	if _, ok := s.imageTypes[contentType]; !ok {
		return ErrFileNotSupported
	}
	return nil
}

// ValidateAttachmentType 附件允许图片与文档白名单的并集
func (s *fileServiceImpl) ValidateAttachmentType(contentType string) error {
	if _, ok := s.imageTypes[contentType]; ok {
		return nil
	}
	if _, ok := s.documentTypes[contentType]; ok {
		return nil
	}
	return ErrFileNotSupported
}

// ValidateSize 声明大小的预检。声明值来自客户端并不可靠，
// 未知时 (<=0) 跳过检查
func (s *fileServiceImpl) ValidateSize(size int64) error {
	if size > 0 && size > s.maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// SaveThumbnail 校验并保存缩略图，校验失败时不产生任何写入
func (s *fileServiceImpl) SaveThumbnail(ctx context.Context, file *multipart.FileHeader) (*blobstore.StoredFile, error) {
	contentType := s.ResolveContentType(file.Header.Get("Content-Type"), file.Filename)
	if err := s.ValidateThumbnailType(contentType); err != nil {
		return nil, err
	}
	return s.save(ctx, consts.BucketThumbnails, file, contentType)
}

// SaveAttachment 校验并保存附件，校验失败时不产生任何写入
func (s *fileServiceImpl) SaveAttachment(ctx context.Context, file *multipart.FileHeader) (*blobstore.StoredFile, error) {
	contentType := s.ResolveContentType(file.Header.Get("Content-Type"), file.Filename)
	if err := s.ValidateAttachmentType(contentType); err != nil {
		return nil, err
	}
	return s.save(ctx, consts.BucketAttachments, file, contentType)
}

func (s *fileServiceImpl) save(ctx context.Context, bucket string, file *multipart.FileHeader, contentType string) (*blobstore.StoredFile, error) {
	if err := s.ValidateSize(file.Size); err != nil {
		return nil, err
	}

	reader, err := file.Open()
	if err != nil {
		log.ErrorContext(ctx, "failed to open uploaded file", "filename", file.Filename, "err", err)
		return nil, ErrFileSaveFailed
	}
	defer func() { _ = reader.Close() }()

	stored, err := s.store.Save(bucket, file.Filename, contentType, reader)
	if err != nil {
		// 错误详情只进日志，不回传给客户端
		log.ErrorContext(ctx, "failed to save blob", "bucket", bucket, "filename", file.Filename, "err", err)
		return nil, ErrFileSaveFailed
	}

	log.InfoContext(ctx, "blob saved", "bucket", bucket, "filename", stored.Filename, "size", stored.Size, "mime", stored.MimeType)
	return stored, nil
}

func (s *fileServiceImpl) BlobPath(bucket, filename string) string {
	return s.store.Path(bucket, filename)
}

func (s *fileServiceImpl) BlobExists(bucket, filename string) bool {
	return s.store.Exists(bucket, filename)
}

func (s *fileServiceImpl) DeleteBlob(bucket, filename string) bool {
	return s.store.Delete(bucket, filename)
}
