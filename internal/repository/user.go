package repository

import (
	"context"
	"errors"

	"connectsphere/internal/models"
	"connectsphere/internal/store"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	SaveAll(ctx context.Context, users []*models.User) error
	Current(ctx context.Context) (*models.User, error)
	SetCurrent(ctx context.Context, id string) error
}

// userRepository implements UserRepository
type userRepository struct {
	kv store.KeyValue
}

// NewUserRepository creates a new user repository
func NewUserRepository(kv store.KeyValue) UserRepository {
	return &userRepository{kv: kv}
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.kv.Get(ctx, store.KeyUsers, &users)
	if errors.Is(err, store.ErrKeyNotFound) {
		return []*models.User{}, nil
	}
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.NewNotFoundError("user", id)
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}
	return r.kv.Set(ctx, store.KeyUsers, users)
}

func (r *userRepository) SaveAll(ctx context.Context, users []*models.User) error {
	return r.kv.Set(ctx, store.KeyUsers, users)
}

func (r *userRepository) Current(ctx context.Context) (*models.User, error) {
	var id string
	err := r.kv.Get(ctx, store.KeyCurrentUser, &id)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "no active user selected"}
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) SetCurrent(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.kv.Set(ctx, store.KeyCurrentUser, id)
}
