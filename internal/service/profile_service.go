package service

import (
	"context"
	"strings"

	"connectsphere/internal/avatar"
	"connectsphere/internal/models"
	"connectsphere/internal/repository"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	avatars     *avatar.Generator
}

type UpdateProfileInput struct {
	Name   string
	Avatar string
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, avatars *avatar.Generator) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		avatars:     avatars,
	}
}

// GetProfile returns the stored profile, falling back to the current user's
// name and avatar when no profile has been saved yet.
func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err == nil {
		return profile, nil
	}
	if appErr, ok := err.(*models.AppError); !ok || appErr.Code != models.CodeNotFound {
		return nil, err
	}

	user, err := s.userRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Profile{Name: user.Name, Avatar: user.Avatar}, nil
}

// UpdateProfile saves the profile and mirrors the change onto the current user.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("name is required")
	}

	profile := &models.Profile{Name: name, Avatar: in.Avatar}
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Current(ctx)
	if err == nil {
		user.Name = name
		if in.Avatar != "" {
			user.Avatar = in.Avatar
		}
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// ListUsers returns all known users.
func (s *ProfileService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// CurrentUser returns the active user.
func (s *ProfileService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.userRepo.Current(ctx)
}

// SwitchUser changes the active user.
func (s *ProfileService) SwitchUser(ctx context.Context, id string) (*models.User, error) {
	if err := s.userRepo.SetCurrent(ctx, id); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// AvatarStyles lists the available avatar styles.
func (s *ProfileService) AvatarStyles() []string {
	return avatar.Styles
}

// AvatarURL builds an avatar URL for a style and seed.
func (s *ProfileService) AvatarURL(style, seed string) (string, error) {
	if !avatar.ValidStyle(style) {
		return "", models.NewValidationError("unknown avatar style")
	}
	if strings.TrimSpace(seed) == "" {
		return "", models.NewValidationError("seed is required")
	}
	return s.avatars.URL(style, seed), nil
}

// RandomAvatar picks a random style and seed and returns the resulting URL.
func (s *ProfileService) RandomAvatar() (style, seed, rawURL string) {
	return s.avatars.Random()
}
