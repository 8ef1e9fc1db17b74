package server

import (
	"connectsphere/internal/models"
	"connectsphere/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.profileService.ListUsers(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetCurrentUser handles GET /api/users/me
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.profileService.CurrentUser(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// SwitchUser handles POST /api/profile/switch/:id and /api/users/switch/:id
func (s *Server) SwitchUser(c *fiber.Ctx) error {
	user, err := s.profileService.SwitchUser(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
