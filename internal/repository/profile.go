package repository

import (
	"context"
	"errors"

	"connectsphere/internal/models"
	"connectsphere/internal/store"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Get(ctx context.Context) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	kv store.KeyValue
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(kv store.KeyValue) ProfileRepository {
	return &profileRepository{kv: kv}
}

func (r *profileRepository) Get(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.kv.Get(ctx, store.KeyProfile, &profile)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "profile not set"}
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return r.kv.Set(ctx, store.KeyProfile, profile)
}
