package blobstore

import (
	"Chronicle/internal/pkg/consts"
	"io"
	log "log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store 本地文件系统 Blob 存储，按桶 (thumbnails/attachments) 划分目录
type Store struct {
	root string
}

// StoredFile 落盘成功后的文件描述
type StoredFile struct {
	Filename         string    `json:"filename"` // 生成的唯一文件名
	OriginalFilename string    `json:"original_filename"`
	URL              string    `json:"url"`
	Size             int64     `json:"size"`
	MimeType         string    `json:"mime_type"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// NewStore 创建存储实例，保证桶目录存在
func NewStore(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("upload root dir is required")
	}

	for _, bucket := range []string{consts.BucketThumbnails, consts.BucketAttachments} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create bucket dir %s", bucket)
		}
	}

	return &Store{root: root}, nil
}

// Save 生成唯一文件名并完整写入字节，返回文件描述
// 扩展名原样取自原始文件名 (可以为空)
func (s *Store) Save(bucket, originalFilename, contentType string, reader io.Reader) (*StoredFile, error) {
	ext := path.Ext(originalFilename)
	filename := uuid.NewString() + ext

	dst, err := os.Create(s.Path(bucket, filename))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create blob file")
	}

	size, err := io.Copy(dst, reader)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(s.Path(bucket, filename))
		return nil, errors.Wrap(err, "failed to write blob file")
	}

	return &StoredFile{
		Filename:         filename,
		OriginalFilename: originalFilename,
		URL:              "/uploads/" + bucket + "/" + filename,
		Size:             size,
		MimeType:         contentType,
		UploadedAt:       time.Now().UTC(),
	}, nil
}

// Path 纯路径拼接，不做任何 I/O
func (s *Store) Path(bucket, filename string) string {
	return filepath.Join(s.root, bucket, filename)
}

// PathFromURL 从访问 URL 还原本地路径，有无 /uploads/ 前缀均可
func (s *Store) PathFromURL(fileURL string) string {
	fileURL = strings.TrimPrefix(fileURL, "/uploads/")
	return filepath.Join(s.root, filepath.FromSlash(fileURL))
}

// Exists 检查文件是否存在 (被删除的文章不会级联清理 blob，缺失不代表损坏)
func (s *Store) Exists(bucket, filename string) bool {
	info, err := os.Stat(s.Path(bucket, filename))
	return err == nil && !info.IsDir()
}

// Delete 幂等删除，失败只记录日志不上抛：附件记录的移除才是权威操作，
// blob 清理是尽力而为
func (s *Store) Delete(bucket, filename string) bool {
	target := s.Path(bucket, filename)
	if _, err := os.Stat(target); err != nil {
		return false
	}
	if err := os.Remove(target); err != nil {
		log.Warn("failed to delete blob file", "bucket", bucket, "filename", filename, "err", err)
		return false
	}
	return true
}
