package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetAvatarStyles handles GET /api/avatars/styles
func (s *Server) GetAvatarStyles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"styles": s.profileService.AvatarStyles(),
	})
}

// GetRandomAvatar handles GET /api/avatars/random
func (s *Server) GetRandomAvatar(c *fiber.Ctx) error {
	style, seed, rawURL := s.profileService.RandomAvatar()
	return c.JSON(fiber.Map{
		"style": style,
		"seed":  seed,
		"url":   rawURL,
	})
}

// GenerateAvatar handles GET /api/avatars/generate?style=...&seed=...
func (s *Server) GenerateAvatar(c *fiber.Ctx) error {
	rawURL, err := s.profileService.AvatarURL(c.Query("style"), c.Query("seed"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"url": rawURL,
	})
}
