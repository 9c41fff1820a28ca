package handler

import (
	"Chronicle/internal/model"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/response"
	"Chronicle/internal/service"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	postSvc service.PostService
	fileSvc service.FileService
}

func NewFileHandler(postSvc service.PostService, fileSvc service.FileService) *FileHandler {
	return &FileHandler{
		postSvc: postSvc,
		fileSvc: fileSvc,
	}
}

// UploadPostThumbnail 为指定文章上传缩略图。先确认文章存在再接受上传
func (s *FileHandler) UploadPostThumbnail(c *gin.Context) {
	postID := c.Param("post_id")

	if _, err := s.postSvc.GetPost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stored, err := s.fileSvc.SaveThumbnail(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.postSvc.SetThumbnail(c.Request.Context(), postID, stored.URL); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, map[string]interface{}{
		"thumbnail_url": stored.URL,
		"file_info":     stored,
	})
}

// UploadPostAttachment 为指定文章上传附件。先确认文章存在再接受上传
func (s *FileHandler) UploadPostAttachment(c *gin.Context) {
	postID := c.Param("post_id")

	if _, err := s.postSvc.GetPost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stored, err := s.fileSvc.SaveAttachment(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	attachment := &model.Attachment{
		Filename:         stored.Filename,
		OriginalFilename: stored.OriginalFilename,
		URL:              stored.URL,
		Size:             stored.Size,
		MimeType:         stored.MimeType,
		UploadedAt:       stored.UploadedAt,
	}
	if err = s.postSvc.AddAttachment(c.Request.Context(), postID, attachment); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, attachment)
}

// RemoveAttachment 从文章移除附件记录，文件名重复时全部移除，
// 随后尽力删除底层 blob (删除失败只记日志)
func (s *FileHandler) RemoveAttachment(c *gin.Context) {
	postID := c.Param("post_id")
	filename := c.Param("filename")

	if err := s.postSvc.RemoveAttachment(c.Request.Context(), postID, filename); err != nil {
		response.Error(c, err)
		return
	}

	if !s.fileSvc.DeleteBlob(consts.BucketAttachments, filename) {
		log.InfoContext(c.Request.Context(), "attachment blob not deleted", "filename", filename)
	}

	response.Success(c, nil)
}

// UploadThumbnail 独立上传缩略图，不关联文章
func (s *FileHandler) UploadThumbnail(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stored, err := s.fileSvc.SaveThumbnail(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stored)
}

// UploadAttachment 独立上传附件，不关联文章
func (s *FileHandler) UploadAttachment(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stored, err := s.fileSvc.SaveAttachment(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stored)
}

// ServeThumbnail 返回缩略图原始字节
func (s *FileHandler) ServeThumbnail(c *gin.Context) {
	s.serveBlob(c, consts.BucketThumbnails)
}

// ServeAttachment 返回附件原始字节
func (s *FileHandler) ServeAttachment(c *gin.Context) {
	s.serveBlob(c, consts.BucketAttachments)
}

func (s *FileHandler) serveBlob(c *gin.Context, bucket string) {
	filename := c.Param("filename")

	// 拒绝路径穿越
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		response.Error(c, service.ErrFileNotExist)
		return
	}

	if !s.fileSvc.BlobExists(bucket, filename) {
		response.Error(c, service.ErrFileNotExist)
		return
	}

	c.File(s.fileSvc.BlobPath(bucket, filename))
}
