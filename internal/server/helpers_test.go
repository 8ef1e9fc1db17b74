package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectsphere/internal/config"
	"connectsphere/internal/models"
	"connectsphere/internal/repository"
	"connectsphere/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "8480",
		Env:                  "test",
		StoreBackend:         config.StoreMemory,
		VerificationCode:     "123456",
		SessionTTLMinutes:    30,
		ProbeDurationSeconds: 10,
	}
}

// setupTestApp builds a Fiber app over a fresh in-memory store with two
// users (u1 active, quota tier two; u2 unlimited tier) and one post.
func setupTestApp(t *testing.T) (*fiber.App, store.KeyValue) {
	t.Helper()

	kv := store.NewMemoryStore()
	ctx := context.Background()

	userRepo := repository.NewUserRepository(kv)
	require.NoError(t, userRepo.SaveAll(ctx, []*models.User{
		{ID: "u1", Name: "Alex", FriendCount: 5},
		{ID: "u2", Name: "Maria", FriendCount: 12},
		{ID: "u3", Name: "Jessica", FriendCount: 0},
	}))
	require.NoError(t, userRepo.SetCurrent(ctx, "u1"))

	postRepo := repository.NewPostRepository(kv)
	require.NoError(t, postRepo.SaveAll(ctx, []*models.Post{
		{
			ID:        "p1",
			UserID:    "u2",
			Content:   "existing post",
			CreatedAt: time.Now().UTC().Add(-26 * time.Hour),
			Likes:     models.NewLikeSet(),
			Comments:  []models.Comment{},
		},
	}))

	srv, err := NewServerWithDeps(testConfig(), kv, nil, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, kv
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{models.CodeValidation, http.StatusBadRequest},
		{models.CodeQuota, http.StatusTooManyRequests},
		{models.CodeConstraint, http.StatusUnprocessableEntity},
		{models.CodeWindowClosed, http.StatusForbidden},
		{models.CodeMismatch, http.StatusBadRequest},
		{models.CodeNotFound, http.StatusNotFound},
		{models.CodeInternalError, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForCode(tt.code))
		})
	}
}

func TestLivenessCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
