package handler

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/response"
	"Chronicle/internal/pkg/util"
	"Chronicle/internal/service"
	"errors"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// GetPublishedPosts 公共端文章列表，仅返回已发布文章
func (s *PostHandler) GetPublishedPosts(c *gin.Context) {
	var listDTO dto.PostListDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}
	if listDTO.Limit == 0 {
		listDTO.Limit = consts.DefaultPageLimit
	}

	posts, err := s.postSvc.GetPublishedPosts(c.Request.Context(), listDTO.Skip, listDTO.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost 公共端文章详情。ID 格式错误一律呈现为不存在；
// 仅当文章当前为已发布状态时自增阅读数
func (s *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("post_id")

	post, err := s.postSvc.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostIDInvalid) {
			err = service.ErrPostNotFound
		}
		response.Error(c, err)
		return
	}

	if post.Status == consts.PostStatusPublished {
		if err = s.postSvc.IncrementViewCount(c.Request.Context(), postID); err != nil {
			log.WarnContext(c.Request.Context(), "failed to increment view count", "post_id", postID, "err", err)
		}
	}

	response.Success(c, post)
}

// GetAllPosts 管理端文章列表，不区分状态
func (s *PostHandler) GetAllPosts(c *gin.Context) {
	var listDTO dto.PostListDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}
	if listDTO.Limit == 0 {
		listDTO.Limit = consts.DefaultPageLimit
	}

	posts, err := s.postSvc.GetAllPosts(c.Request.Context(), listDTO.Skip, listDTO.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// CreatePost 创建文章
func (s *PostHandler) CreatePost(c *gin.Context) {
	var createDTO dto.CreatePostDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 部分更新文章
func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("post_id")

	var updateDTO dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), postID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章，关联的 blob 不级联清理
func (s *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")

	if err := s.postSvc.DeletePost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
