// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"connectsphere/internal/models"
	"connectsphere/internal/store"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	SaveAll(ctx context.Context, posts []*models.Post) error
}

// postRepository implements PostRepository
type postRepository struct {
	kv store.KeyValue
}

// NewPostRepository creates a new post repository
func NewPostRepository(kv store.KeyValue) PostRepository {
	return &postRepository{kv: kv}
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.kv.Get(ctx, store.KeyPosts, &posts)
	if errors.Is(err, store.ErrKeyNotFound) {
		return []*models.Post{}, nil
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.NewNotFoundError("post", id)
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	posts, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, p := range posts {
		if p.ID == post.ID {
			posts[i] = post
			replaced = true
			break
		}
	}
	if !replaced {
		posts = append(posts, post)
	}
	return r.kv.Set(ctx, store.KeyPosts, posts)
}

func (r *postRepository) SaveAll(ctx context.Context, posts []*models.Post) error {
	return r.kv.Set(ctx, store.KeyPosts, posts)
}
