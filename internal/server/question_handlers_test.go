package server

import (
	"fmt"
	"net/http"
	"testing"

	"connectsphere/internal/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionBody struct {
	ID         string                 `json:"id"`
	State      verification.State     `json:"state"`
	Email      string                 `json:"email"`
	StagedFile *verification.FileInfo `json:"staged_file"`
	LastError  string                 `json:"last_error"`
	WindowOpen bool                   `json:"window_open"`
}

type sessionErrorBody struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Session sessionBody `json:"session"`
}

func createSession(t *testing.T, app *fiber.App) sessionBody {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/questions/sessions/", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body sessionBody
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.ID)
	return body
}

func TestWizardOverHTTP(t *testing.T) {
	app, _ := setupTestApp(t)

	sess := createSession(t, app)
	base := fmt.Sprintf("/api/questions/sessions/%s", sess.ID)

	t.Run("empty email rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/email", map[string]string{"email": "  "})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body sessionErrorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid email", body.Error)
		assert.Equal(t, verification.StateAwaitingEmail, body.Session.State)
	})

	t.Run("valid email advances", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/email", map[string]string{"email": "user@example.com"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body sessionBody
		decodeBody(t, resp, &body)
		assert.Equal(t, verification.StateAwaitingCode, body.State)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/code", map[string]string{"code": "000000"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body sessionErrorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid code", body.Error)
	})

	t.Run("back returns to email", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/back", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body sessionBody
		decodeBody(t, resp, &body)
		assert.Equal(t, verification.StateAwaitingEmail, body.State)

		// Re-enter the flow.
		resp = doJSON(t, app, http.MethodPost, base+"/email", map[string]string{"email": "user@example.com"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("correct code advances", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/code", map[string]string{"code": "123456"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body sessionBody
		decodeBody(t, resp, &body)
		assert.Equal(t, verification.StateAwaitingUpload, body.State)
	})

	t.Run("oversized file is a 422", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/file", map[string]any{
			"name": "huge.mp4",
			"size": verification.MaxFileSize + 1,
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body sessionErrorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "file too large", body.Error)
		assert.Nil(t, body.Session.StagedFile)
	})

	t.Run("valid file stages", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/file", map[string]any{
			"name": "clip.mp4",
			"size": 1 << 20,
			"mime": "video/mp4",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body sessionBody
		decodeBody(t, resp, &body)
		require.NotNil(t, body.StagedFile)
		assert.Equal(t, "clip.mp4", body.StagedFile.Name)
	})

	t.Run("overlong duration clears the file", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/duration", map[string]any{
			"seconds": verification.MaxDurationSeconds + 1,
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body sessionErrorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "duration too long", body.Error)
		assert.Nil(t, body.Session.StagedFile)
	})

	t.Run("restage and record a valid duration", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, base+"/file", map[string]any{
			"name": "clip.mp4",
			"size": 1 << 20,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, http.MethodPost, base+"/duration", map[string]any{
			"seconds": 60,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body sessionBody
		decodeBody(t, resp, &body)
		require.NotNil(t, body.StagedFile)
		assert.True(t, body.StagedFile.Probed)
	})

	t.Run("submit honors the live window", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/questions/window", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var window struct {
			Open bool `json:"open"`
		}
		decodeBody(t, resp, &window)

		resp = doJSON(t, app, http.MethodPost, base+"/submit", nil)
		if window.Open {
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var body sessionBody
			decodeBody(t, resp, &body)
			assert.Equal(t, verification.StateAwaitingEmail, body.State)
			assert.Nil(t, body.StagedFile)
		} else {
			require.Equal(t, http.StatusForbidden, resp.StatusCode)
			var body sessionErrorBody
			decodeBody(t, resp, &body)
			assert.Equal(t, "upload not allowed", body.Error)
			assert.NotNil(t, body.Session.StagedFile)
		}
	})
}

func TestSessionNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/questions/sessions/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClearFileEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	sess := createSession(t, app)
	base := fmt.Sprintf("/api/questions/sessions/%s", sess.ID)

	resp := doJSON(t, app, http.MethodPost, base+"/email", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, base+"/code", map[string]string{"code": "123456"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, base+"/file", map[string]any{"name": "a.mp4", "size": 100})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, base+"/file", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body sessionBody
	decodeBody(t, resp, &body)
	assert.Nil(t, body.StagedFile)
	assert.Equal(t, verification.StateAwaitingUpload, body.State)
}
