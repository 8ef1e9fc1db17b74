// Package verification implements the staged email/OTP/upload workflow
// that gates video question submissions. A Session is a small state
// machine with three named states advancing strictly forward; every guard
// failure is a user-correctable error that leaves the state unchanged.
package verification

import (
	"context"
	"strings"
	"sync"
	"time"

	"connectsphere/internal/models"
)

// State identifies the current wizard step.
type State string

const (
	// StateAwaitingEmail waits for the user's email address.
	StateAwaitingEmail State = "awaiting_email"
	// StateAwaitingCode waits for the one-time code sent to the email.
	StateAwaitingCode State = "awaiting_code"
	// StateAwaitingUpload waits for a valid staged file and submission.
	StateAwaitingUpload State = "awaiting_upload"
)

// Upload constraints for the staged file.
const (
	// MaxFileSize is the staged file byte-size cap (50 MiB).
	MaxFileSize = 50 << 20
	// MaxDurationSeconds is the probed playback-duration cap.
	MaxDurationSeconds = 120
)

// FileInfo describes a user-selected file held pending validation and
// submission. Size and MIME come from the descriptor synchronously; the
// duration arrives later from the media subsystem.
type FileInfo struct {
	Name string  `json:"name"`
	Size int64   `json:"size"`
	MIME string  `json:"mime"`
	// DurationSeconds is zero until probed; Probed records that the
	// media subsystem has reported.
	DurationSeconds float64 `json:"duration_seconds"`
	Probed          bool    `json:"probed"`
}

// Session is one verification/upload attempt. Transitions serialize on an
// internal mutex so a retried HTTP request cannot race a pending one; the
// session is otherwise single-actor.
//
// The state only moves forward (email -> code -> upload) or resets fully
// to the email step after a successful submission. It never skips a step.
type Session struct {
	mu sync.Mutex

	id         string
	state      State
	email      string
	issuedCode string
	staged     *FileInfo
	lastError  string
	createdAt  time.Time
}

// NewSession returns a fresh session at the email step.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		id:        id,
		state:     StateAwaitingEmail,
		createdAt: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// State returns the current step.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Email returns the candidate email captured at the first step.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// StagedFile returns a copy of the staged file, if any.
func (s *Session) StagedFile() (FileInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return FileInfo{}, false
	}
	return *s.staged, true
}

// LastError returns the message of the most recent guard failure, or ""
// after a successful transition.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SubmitEmail captures the candidate email and requests a one-time code
// through the issuer. On success the session advances to the code step.
func (s *Session) SubmitEmail(ctx context.Context, email string, issuer CodeIssuer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingEmail {
		return s.fail(models.NewValidationError("not awaiting email"))
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return s.fail(models.NewValidationError("invalid email"))
	}

	code, err := issuer.IssueCode(ctx, email)
	if err != nil {
		return s.fail(models.NewInternalError(err))
	}

	s.email = email
	s.issuedCode = code
	s.state = StateAwaitingCode
	s.lastError = ""
	return nil
}

// SubmitCode compares the entered code exactly against the issued one and
// advances to the upload step on a match.
func (s *Session) SubmitCode(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingCode {
		return s.fail(models.NewValidationError("not awaiting code"))
	}
	if code != s.issuedCode {
		return s.fail(models.NewMismatchError("invalid code"))
	}

	s.state = StateAwaitingUpload
	s.lastError = ""
	return nil
}

// Back returns from the code step to the email step, clearing the issued
// code so a stale code can never be replayed.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingCode {
		return s.fail(models.NewValidationError("nothing to go back to"))
	}

	s.issuedCode = ""
	s.state = StateAwaitingEmail
	s.lastError = ""
	return nil
}

// SelectFile stages a candidate file at the upload step. A file over the
// size cap is rejected and any previously staged file is cleared, exactly
// as the UI discards the selection.
func (s *Session) SelectFile(f FileInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingUpload {
		return s.fail(models.NewValidationError("not awaiting upload"))
	}
	if f.Size > MaxFileSize {
		s.staged = nil
		return s.fail(models.NewConstraintError("file too large"))
	}

	f.Probed = false
	f.DurationSeconds = 0
	s.staged = &f
	s.lastError = ""
	return nil
}

// RecordDuration consumes the playback duration reported by the media
// subsystem for the staged file. A duration over the cap clears the
// staged file.
func (s *Session) RecordDuration(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingUpload {
		return s.fail(models.NewValidationError("not awaiting upload"))
	}
	if s.staged == nil {
		return s.fail(models.NewValidationError("no file selected"))
	}
	if seconds > MaxDurationSeconds {
		s.staged = nil
		return s.fail(models.NewConstraintError("duration too long"))
	}

	s.staged.DurationSeconds = seconds
	s.staged.Probed = true
	s.lastError = ""
	return nil
}

// ClearFile drops the staged file without changing state, matching the
// preview's remove button.
func (s *Session) ClearFile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = nil
	s.lastError = ""
}

// SubmitUpload finalizes the workflow. It requires a staged file whose
// duration has been probed, and the upload window must be open at the
// given wall-clock instant. On success the session resets fully to the
// email step with all captured values cleared.
func (s *Session) SubmitUpload(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingUpload {
		return s.fail(models.NewValidationError("not awaiting upload"))
	}
	if s.staged == nil {
		return s.fail(models.NewValidationError("no file selected"))
	}
	if !s.staged.Probed {
		return s.fail(models.NewValidationError("duration not probed yet"))
	}
	// Re-evaluated on every submission; the window boundary can be
	// crossed mid-session.
	if !WindowOpen(now) {
		return s.fail(models.NewWindowClosedError("upload not allowed"))
	}

	s.state = StateAwaitingEmail
	s.email = ""
	s.issuedCode = ""
	s.staged = nil
	s.lastError = ""
	return nil
}

// fail records the error message for the standing UI surface and returns
// the error unchanged. Callers hold s.mu.
func (s *Session) fail(err *models.AppError) error {
	s.lastError = err.Message
	return err
}
