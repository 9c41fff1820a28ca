package mocks

import (
	"Chronicle/internal/model"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockPostRepo is an in-memory PostRepo emulating single-document
// atomic operations ($set/$min/$inc/$push/$pull).
type MockPostRepo struct {
	mu    sync.Mutex
	Posts map[string]*model.Post

	InsertErr error
	UpdateErr error
	FindErr   error
}

func NewMockPostRepo() *MockPostRepo {
	return &MockPostRepo{
		Posts: make(map[string]*model.Post),
	}
}

func (m *MockPostRepo) Insert(ctx context.Context, post *model.Post) (string, error) {
	if m.InsertErr != nil {
		return "", m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := clonePost(post)
	stored.ID = primitive.NewObjectID()
	m.Posts[stored.ID.Hex()] = stored
	return stored.ID.Hex(), nil
}

func (m *MockPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidObjectID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.Posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(post), nil
}

func (m *MockPostRepo) FindPublished(ctx context.Context, skip, limit int64) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var posts []*model.Post
	for _, post := range m.Posts {
		if post.Status == consts.PostStatusPublished {
			posts = append(posts, clonePost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return timeOrZero(posts[i].PublishedAt).After(timeOrZero(posts[j].PublishedAt))
	})
	return page(posts, skip, limit), nil
}

func (m *MockPostRepo) FindAll(ctx context.Context, skip, limit int64) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var posts []*model.Post
	for _, post := range m.Posts {
		posts = append(posts, clonePost(post))
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID.Hex() > posts[j].ID.Hex()
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return page(posts, skip, limit), nil
}

func (m *MockPostRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	return m.UpdateFieldsWithMin(ctx, id, fields, nil)
}

func (m *MockPostRepo) UpdateFieldsWithMin(ctx context.Context, id string, fields bson.M, min bson.M) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidObjectID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.Posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	applySet(post, fields)

	if min != nil {
		if v, ok := min["published_at"]; ok {
			t := v.(time.Time)
			if post.PublishedAt == nil || t.Before(*post.PublishedAt) {
				post.PublishedAt = &t
			}
		}
	}
	return nil
}

func (m *MockPostRepo) IncrementField(ctx context.Context, id string, field string, delta int64) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidObjectID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.Posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if field == "view_count" {
		post.ViewCount += delta
	}
	return nil
}

func (m *MockPostRepo) PushToArray(ctx context.Context, id string, field string, value any) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidObjectID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.Posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if field == "attachments" {
		if att, ok := value.(*model.Attachment); ok {
			post.Attachments = append(post.Attachments, *att)
		}
	}
	return nil
}

func (m *MockPostRepo) PullFromArray(ctx context.Context, id string, field string, match bson.M) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidObjectID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.Posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if field == "attachments" {
		filename, _ := match["filename"].(string)
		kept := post.Attachments[:0]
		for _, att := range post.Attachments {
			if att.Filename != filename {
				kept = append(kept, att)
			}
		}
		post.Attachments = kept
	}
	return nil
}

func (m *MockPostRepo) Delete(ctx context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidObjectID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Posts, id)
	return nil
}

func applySet(post *model.Post, fields bson.M) {
	for key, value := range fields {
		switch key {
		case "title":
			post.Title = value.(string)
		case "content":
			post.Content = value.(string)
		case "excerpt":
			post.Excerpt = value.(string)
		case "status":
			post.Status = value.(string)
		case "tags":
			post.Tags = value.([]string)
		case "thumbnail_url":
			post.ThumbnailURL = value.(string)
		case "updated_at":
			post.UpdatedAt = value.(time.Time)
		case "published_at":
			t := value.(time.Time)
			post.PublishedAt = &t
		}
	}
}

func page(posts []*model.Post, skip, limit int64) []*model.Post {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = consts.DefaultPageLimit
	}
	if limit > consts.MaxPageLimit {
		limit = consts.MaxPageLimit
	}
	if skip >= int64(len(posts)) {
		return []*model.Post{}
	}
	end := skip + limit
	if end > int64(len(posts)) {
		end = int64(len(posts))
	}
	return posts[skip:end]
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func clonePost(post *model.Post) *model.Post {
	cloned := *post
	cloned.Tags = append([]string(nil), post.Tags...)
	cloned.Attachments = append([]model.Attachment(nil), post.Attachments...)
	if post.PublishedAt != nil {
		t := *post.PublishedAt
		cloned.PublishedAt = &t
	}
	return &cloned
}
