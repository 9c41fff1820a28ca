package repository

import (
	"Chronicle/internal/model"
	"Chronicle/internal/pkg/consts"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrInvalidObjectID 传入的 ID 不是合法的 ObjectID，需要与"不存在"区分
	ErrInvalidObjectID = errors.New("invalid object id")
	// ErrNotFound ID 合法但文档不存在
	ErrNotFound = errors.New("document not found")
)

type PostRepo interface {
	Insert(ctx context.Context, post *model.Post) (string, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindPublished(ctx context.Context, skip, limit int64) ([]*model.Post, error)
	FindAll(ctx context.Context, skip, limit int64) ([]*model.Post, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	UpdateFieldsWithMin(ctx context.Context, id string, fields bson.M, min bson.M) error
	IncrementField(ctx context.Context, id string, field string, delta int64) error
	PushToArray(ctx context.Context, id string, field string, value any) error
	PullFromArray(ctx context.Context, id string, field string, match bson.M) error
	Delete(ctx context.Context, id string) error
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection(model.Post{}.CollectionName()),
	}
}

// Insert 插入新文章并返回生成的 ID
func (s *postRepoImpl) Insert(ctx context.Context, post *model.Post) (string, error) {
	result, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return "", err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", ErrInvalidObjectID
	}
	return objectID.Hex(), nil
}

// FindByID 根据 ID 查询单篇文章
func (s *postRepoImpl) FindByID(ctx context.Context, id string) (*model.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidObjectID
	}

	var post model.Post
	err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPublished 分页查询已发布文章 (按发布时间倒序)
func (s *postRepoImpl) FindPublished(ctx context.Context, skip, limit int64) ([]*model.Post, error) {
	filter := bson.M{"status": consts.PostStatusPublished}
	return s.find(ctx, filter, bson.D{{Key: "published_at", Value: -1}}, skip, limit)
}

// FindAll 分页查询全部文章 (按创建时间倒序，管理端视图)
func (s *postRepoImpl) FindAll(ctx context.Context, skip, limit int64) ([]*model.Post, error) {
	return s.find(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, skip, limit)
}

func (s *postRepoImpl) find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*model.Post, error) {
	if skip < 0 {
		skip = consts.DefaultPageSkip
	}
	if limit <= 0 {
		limit = consts.DefaultPageLimit
	}
	if limit > consts.MaxPageLimit {
		limit = consts.MaxPageLimit
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	posts := make([]*model.Post, 0, limit)
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateFields 部分字段 $set 更新，未提供的字段保持原值
func (s *postRepoImpl) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidObjectID
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFieldsWithMin $set 更新的同时对 min 中字段做 $min 写入：
// 字段缺失时写入，已存在更早值时保持原值。与 $set 在同一次原子更新内完成，
// 用于首次发布时间的注入
func (s *postRepoImpl) UpdateFieldsWithMin(ctx context.Context, id string, fields bson.M, min bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidObjectID
	}

	update := bson.M{"$set": fields, "$min": min}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementField 单文档原子自增
func (s *postRepoImpl) IncrementField(ctx context.Context, id string, field string, delta int64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidObjectID
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushToArray 原子追加数组元素
func (s *postRepoImpl) PushToArray(ctx context.Context, id string, field string, value any) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidObjectID
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullFromArray 原子移除所有匹配的数组元素 (非仅首个)
func (s *postRepoImpl) PullFromArray(ctx context.Context, id string, field string, match bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidObjectID
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$pull": bson.M{field: match}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除文章文档
func (s *postRepoImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidObjectID
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
