package verification

import (
	"context"
	"testing"
	"time"

	"connectsphere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insideWindow  = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	outsideWindow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
)

func newCodeSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("s1", insideWindow)
	require.NoError(t, s.SubmitEmail(context.Background(), "user@example.com", StaticIssuer("123456")))
	return s
}

func newUploadSession(t *testing.T) *Session {
	t.Helper()
	s := newCodeSession(t)
	require.NoError(t, s.SubmitCode("123456"))
	return s
}

func TestSessionStartsAwaitingEmail(t *testing.T) {
	s := NewSession("s1", insideWindow)
	assert.Equal(t, StateAwaitingEmail, s.State())
	assert.Empty(t, s.LastError())
}

func TestSubmitEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		wantErr   string
		wantState State
	}{
		{"valid email advances", "user@example.com", "", StateAwaitingCode},
		{"whitespace is trimmed", "  user@example.com  ", "", StateAwaitingCode},
		{"empty email rejected", "", "invalid email", StateAwaitingEmail},
		{"blank email rejected", "   ", "invalid email", StateAwaitingEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("s1", insideWindow)
			err := s.SubmitEmail(context.Background(), tt.email, StaticIssuer("123456"))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, s.LastError())
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user@example.com", s.Email())
				assert.Empty(t, s.LastError())
			}
			assert.Equal(t, tt.wantState, s.State())
		})
	}
}

func TestSubmitCode(t *testing.T) {
	t.Run("matching code advances", func(t *testing.T) {
		s := newCodeSession(t)
		require.NoError(t, s.SubmitCode("123456"))
		assert.Equal(t, StateAwaitingUpload, s.State())
	})

	t.Run("wrong code stays put", func(t *testing.T) {
		s := newCodeSession(t)
		err := s.SubmitCode("654321")
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeMismatch, appErr.Code)
		assert.Equal(t, "invalid code", s.LastError())
		assert.Equal(t, StateAwaitingCode, s.State())
	})

	t.Run("comparison is exact", func(t *testing.T) {
		s := newCodeSession(t)
		require.Error(t, s.SubmitCode(" 123456"))
		require.Error(t, s.SubmitCode("12345"))
	})

	t.Run("wrong state rejected", func(t *testing.T) {
		s := NewSession("s1", insideWindow)
		require.Error(t, s.SubmitCode("123456"))
		assert.Equal(t, StateAwaitingEmail, s.State())
	})
}

func TestBack(t *testing.T) {
	s := newCodeSession(t)
	require.NoError(t, s.Back())
	assert.Equal(t, StateAwaitingEmail, s.State())

	// The issued code was cleared; re-entering the flow issues a fresh one
	// and the old flow cannot be resumed.
	require.Error(t, s.SubmitCode("123456"))

	t.Run("only from code step", func(t *testing.T) {
		s := newUploadSession(t)
		require.Error(t, s.Back())
		assert.Equal(t, StateAwaitingUpload, s.State())
	})
}

func TestSelectFile(t *testing.T) {
	t.Run("stages a valid file", func(t *testing.T) {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "clip.mp4", Size: 1 << 20, MIME: "video/mp4"}))
		staged, ok := s.StagedFile()
		require.True(t, ok)
		assert.Equal(t, "clip.mp4", staged.Name)
		assert.False(t, staged.Probed)
	})

	t.Run("size at the cap is accepted", func(t *testing.T) {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "clip.mp4", Size: MaxFileSize}))
	})

	t.Run("oversized file clears any staged file", func(t *testing.T) {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "ok.mp4", Size: 100}))

		err := s.SelectFile(FileInfo{Name: "big.mp4", Size: MaxFileSize + 1})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeConstraint, appErr.Code)
		assert.Equal(t, "file too large", s.LastError())

		_, staged := s.StagedFile()
		assert.False(t, staged)
		assert.Equal(t, StateAwaitingUpload, s.State())
	})

	t.Run("replacing resets probe status", func(t *testing.T) {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "a.mp4", Size: 100}))
		require.NoError(t, s.RecordDuration(30))
		require.NoError(t, s.SelectFile(FileInfo{Name: "b.mp4", Size: 100}))

		staged, ok := s.StagedFile()
		require.True(t, ok)
		assert.False(t, staged.Probed)
		assert.Zero(t, staged.DurationSeconds)
	})
}

func TestRecordDuration(t *testing.T) {
	t.Run("duration at the cap is accepted", func(t *testing.T) {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "clip.mp4", Size: 100}))
		require.NoError(t, s.RecordDuration(MaxDurationSeconds))

		staged, ok := s.StagedFile()
		require.True(t, ok)
		assert.True(t, staged.Probed)
		assert.Equal(t, float64(MaxDurationSeconds), staged.DurationSeconds)
	})

	t.Run("overlong duration clears the staged file", func(t *testing.T) {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "clip.mp4", Size: 100}))

		err := s.RecordDuration(MaxDurationSeconds + 0.5)
		require.Error(t, err)
		assert.Equal(t, "duration too long", s.LastError())

		_, staged := s.StagedFile()
		assert.False(t, staged)
	})

	t.Run("requires a staged file", func(t *testing.T) {
		s := newUploadSession(t)
		err := s.RecordDuration(30)
		require.Error(t, err)
		assert.Equal(t, "no file selected", s.LastError())
	})
}

func TestClearFile(t *testing.T) {
	s := newUploadSession(t)
	require.NoError(t, s.SelectFile(FileInfo{Name: "clip.mp4", Size: 100}))

	s.ClearFile()

	_, staged := s.StagedFile()
	assert.False(t, staged)
	assert.Equal(t, StateAwaitingUpload, s.State())
}

func TestSubmitUpload(t *testing.T) {
	readySession := func(t *testing.T) *Session {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "clip.mp4", Size: 100}))
		require.NoError(t, s.RecordDuration(30))
		return s
	}

	t.Run("success resets everything", func(t *testing.T) {
		s := readySession(t)
		require.NoError(t, s.SubmitUpload(insideWindow))

		assert.Equal(t, StateAwaitingEmail, s.State())
		assert.Empty(t, s.Email())
		assert.Empty(t, s.LastError())
		_, staged := s.StagedFile()
		assert.False(t, staged)

		// The old code is gone after reset.
		require.NoError(t, s.SubmitEmail(context.Background(), "again@example.com", StaticIssuer("999999")))
		require.Error(t, s.SubmitCode("123456"))
	})

	t.Run("closed window keeps the staged file", func(t *testing.T) {
		s := readySession(t)
		err := s.SubmitUpload(outsideWindow)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeWindowClosed, appErr.Code)
		assert.Equal(t, "upload not allowed", s.LastError())

		staged, ok2 := s.StagedFile()
		require.True(t, ok2)
		assert.True(t, staged.Probed)
		assert.Equal(t, StateAwaitingUpload, s.State())
	})

	t.Run("requires a staged file", func(t *testing.T) {
		s := newUploadSession(t)
		err := s.SubmitUpload(insideWindow)
		require.Error(t, err)
		assert.Equal(t, "no file selected", s.LastError())
	})

	t.Run("requires the probe to have reported", func(t *testing.T) {
		s := newUploadSession(t)
		require.NoError(t, s.SelectFile(FileInfo{Name: "clip.mp4", Size: 100}))
		err := s.SubmitUpload(insideWindow)
		require.Error(t, err)
		assert.Equal(t, "duration not probed yet", s.LastError())
	})
}

func TestGuardFailureThenSuccessClearsLastError(t *testing.T) {
	s := NewSession("s1", insideWindow)
	require.Error(t, s.SubmitEmail(context.Background(), "", StaticIssuer("123456")))
	assert.Equal(t, "invalid email", s.LastError())

	require.NoError(t, s.SubmitEmail(context.Background(), "user@example.com", StaticIssuer("123456")))
	assert.Empty(t, s.LastError())
}
