package service

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/model"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
)

type PostService interface {
	CreatePost(ctx context.Context, postDTO *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, postID string) (*dto.PostDTO, error)
	GetPublishedPosts(ctx context.Context, skip, limit int64) ([]*dto.PostDTO, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, postID string, updateDTO *dto.UpdatePostDTO) (*dto.PostDTO, error)
	IncrementViewCount(ctx context.Context, postID string) error
	SetThumbnail(ctx context.Context, postID string, thumbnailURL string) error
	AddAttachment(ctx context.Context, postID string, attachment *model.Attachment) error
	RemoveAttachment(ctx context.Context, postID string, filename string) error
	DeletePost(ctx context.Context, postID string) error
}

type postServiceImpl struct {
	postRepo repository.PostRepo
}

func NewPostService(postRepo repository.PostRepo) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
	}
}

// CreatePost 创建文章，填充默认元数据后回读完整文档
func (s *postServiceImpl) CreatePost(ctx context.Context, postDTO *dto.CreatePostDTO) (*dto.PostDTO, error) {
	now := time.Now().UTC()

	post := &model.Post{
		Title:       postDTO.Title,
		Content:     postDTO.Content,
		Excerpt:     postDTO.Excerpt,
		Author:      postDTO.Author,
		Status:      postDTO.Status,
		Tags:        postDTO.Tags,
		Attachments: []model.Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
		ViewCount:   0,
	}
	if post.Status == "" {
		post.Status = consts.PostStatusDraft
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	postID, err := s.postRepo.Insert(ctx, post)
	if err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID)
}

// GetPost 查询单篇文章。ID 格式错误与不存在通过不同错误区分，
// 公共端点与管理端点各自决定如何呈现
func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostDTO, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, s.mapRepoErr(err)
	}
	return toPostDTO(post), nil
}

// GetPublishedPosts 公共端分页列表，按发布时间倒序
func (s *postServiceImpl) GetPublishedPosts(ctx context.Context, skip, limit int64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.FindPublished(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

// GetAllPosts 管理端分页列表，按创建时间倒序
func (s *postServiceImpl) GetAllPosts(ctx context.Context, skip, limit int64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

// UpdatePost 部分字段更新。当补丁将状态置为 published 且未显式携带
// published_at 时，在同一次原子更新内通过 $min 注入当前时间：字段缺失则
// 写入，已有更早的发布时间则保持不变。因此不存在"已发布但无发布时间"的
// 中间状态，且重新发布的文章保留最初的发布时间
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID string, updateDTO *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	now := time.Now().UTC()
	fields := bson.M{"updated_at": now}

	if updateDTO.Title != nil {
		fields["title"] = *updateDTO.Title
	}
	if updateDTO.Content != nil {
		fields["content"] = *updateDTO.Content
	}
	if updateDTO.Excerpt != nil {
		fields["excerpt"] = *updateDTO.Excerpt
	}
	if updateDTO.Status != nil {
		fields["status"] = *updateDTO.Status
	}
	if updateDTO.Tags != nil {
		fields["tags"] = *updateDTO.Tags
	}
	if updateDTO.PublishedAt != nil {
		fields["published_at"] = *updateDTO.PublishedAt
	}

	var err error
	if updateDTO.Status != nil && *updateDTO.Status == consts.PostStatusPublished && updateDTO.PublishedAt == nil {
		err = s.postRepo.UpdateFieldsWithMin(ctx, postID, fields, bson.M{"published_at": now})
	} else {
		err = s.postRepo.UpdateFields(ctx, postID, fields)
	}
	if err != nil {
		return nil, s.mapRepoErr(err)
	}
	return s.GetPost(ctx, postID)
}

// IncrementViewCount 阅读数原子自增。本方法不检查文章状态，
// 是否自增由调用方按当前状态决定
func (s *postServiceImpl) IncrementViewCount(ctx context.Context, postID string) error {
	if err := s.postRepo.IncrementField(ctx, postID, "view_count", 1); err != nil {
		return s.mapRepoErr(err)
	}
	return nil
}

// SetThumbnail 设置缩略图 URL
func (s *postServiceImpl) SetThumbnail(ctx context.Context, postID string, thumbnailURL string) error {
	fields := bson.M{
		"thumbnail_url": thumbnailURL,
		"updated_at":    time.Now().UTC(),
	}
	if err := s.postRepo.UpdateFields(ctx, postID, fields); err != nil {
		return s.mapRepoErr(err)
	}
	return nil
}

// AddAttachment 原子追加附件记录，不按文件名去重
func (s *postServiceImpl) AddAttachment(ctx context.Context, postID string, attachment *model.Attachment) error {
	if err := s.postRepo.PushToArray(ctx, postID, "attachments", attachment); err != nil {
		return s.mapRepoErr(err)
	}
	return nil
}

// RemoveAttachment 按文件名移除附件记录，文件名重复时全部移除
func (s *postServiceImpl) RemoveAttachment(ctx context.Context, postID string, filename string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return s.mapRepoErr(err)
	}

	found := false
	for _, att := range post.Attachments {
		if att.Filename == filename {
			found = true
			break
		}
	}
	if !found {
		return ErrAttachmentNotFound
	}

	match := bson.M{"filename": filename}
	if err = s.postRepo.PullFromArray(ctx, postID, "attachments", match); err != nil {
		return s.mapRepoErr(err)
	}
	return nil
}

// DeletePost 删除文章文档。缩略图与附件的 blob 不做级联清理
func (s *postServiceImpl) DeletePost(ctx context.Context, postID string) error {
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return s.mapRepoErr(err)
	}
	return nil
}

func (s *postServiceImpl) mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidObjectID):
		return ErrPostIDInvalid
	case errors.Is(err, repository.ErrNotFound):
		return ErrPostNotFound
	default:
		return err
	}
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	var postDTO dto.PostDTO
	_ = copier.Copy(&postDTO, post)
	postDTO.ID = post.ID.Hex()
	if postDTO.Attachments == nil {
		postDTO.Attachments = []dto.AttachmentDTO{}
	}
	if postDTO.Tags == nil {
		postDTO.Tags = []string{}
	}
	return &postDTO
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	dtos := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, toPostDTO(post))
	}
	return dtos
}
