package server

import (
	"connectsphere/internal/models"
	"connectsphere/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUploadWindow handles GET /api/questions/window
func (s *Server) GetUploadWindow(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"open": s.verificationService.WindowOpen(),
	})
}

// CreateSession handles POST /api/questions/sessions
func (s *Server) CreateSession(c *fiber.Ctx) error {
	view := s.verificationService.CreateSession(c.Context())
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetSession handles GET /api/questions/sessions/:id
func (s *Server) GetSession(c *fiber.Ctx) error {
	view, err := s.verificationService.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// respondSessionResult writes either the failed view with its error status
// or the advanced view. Guard failures still return the session view so the
// client can render the standing error message.
func respondSessionResult(c *fiber.Ctx, view *service.SessionView, err error) error {
	if err != nil {
		if view == nil {
			return respondServiceError(c, err)
		}
		appErr, ok := err.(*models.AppError)
		if !ok {
			return respondServiceError(c, err)
		}
		return c.Status(statusForCode(appErr.Code)).JSON(fiber.Map{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"session": view,
		})
	}
	return c.JSON(view)
}

// SubmitEmail handles POST /api/questions/sessions/:id/email
func (s *Server) SubmitEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	view, err := s.verificationService.SubmitEmail(c.Context(), c.Params("id"), req.Email)
	return respondSessionResult(c, view, err)
}

// SubmitCode handles POST /api/questions/sessions/:id/code
func (s *Server) SubmitCode(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	view, err := s.verificationService.SubmitCode(c.Context(), c.Params("id"), req.Code)
	return respondSessionResult(c, view, err)
}

// GoBack handles POST /api/questions/sessions/:id/back
func (s *Server) GoBack(c *fiber.Ctx) error {
	view, err := s.verificationService.Back(c.Context(), c.Params("id"))
	return respondSessionResult(c, view, err)
}

// SelectFile handles POST /api/questions/sessions/:id/file
func (s *Server) SelectFile(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
		MIME string `json:"mime,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	view, err := s.verificationService.SelectFile(c.Context(), service.SelectFileInput{
		SessionID: c.Params("id"),
		Name:      req.Name,
		Size:      req.Size,
		MIME:      req.MIME,
	})
	return respondSessionResult(c, view, err)
}

// RecordDuration handles POST /api/questions/sessions/:id/duration
func (s *Server) RecordDuration(c *fiber.Ctx) error {
	var req struct {
		Seconds float64 `json:"seconds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	view, err := s.verificationService.RecordDuration(c.Context(), c.Params("id"), req.Seconds)
	return respondSessionResult(c, view, err)
}

// ClearFile handles DELETE /api/questions/sessions/:id/file
func (s *Server) ClearFile(c *fiber.Ctx) error {
	view, err := s.verificationService.ClearFile(c.Context(), c.Params("id"))
	return respondSessionResult(c, view, err)
}

// SubmitUpload handles POST /api/questions/sessions/:id/submit
func (s *Server) SubmitUpload(c *fiber.Ctx) error {
	view, err := s.verificationService.SubmitUpload(c.Context(), c.Params("id"))
	return respondSessionResult(c, view, err)
}
