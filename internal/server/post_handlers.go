package server

import (
	"connectsphere/internal/models"
	"connectsphere/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content   string `json:"content"`
		MediaURL  string `json:"media_url,omitempty"`
		MediaKind string `json:"media_kind,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		MediaKind: req.MediaKind,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	post, err := s.postService.ToggleLike(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.postService.ListComments(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.AddComment(c.Context(), service.AddCommentInput{
		PostID:  c.Params("id"),
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetQuota handles GET /api/posts/quota
func (s *Server) GetQuota(c *fiber.Ctx) error {
	quota, err := s.postService.Quota(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(quota)
}
