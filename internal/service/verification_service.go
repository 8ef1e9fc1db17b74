package service

import (
	"context"
	"sync"
	"time"

	"connectsphere/internal/media"
	"connectsphere/internal/models"
	"connectsphere/internal/observability"
	"connectsphere/internal/verification"

	"github.com/google/uuid"
)

// VerificationService owns the in-memory registry of verification
// sessions and drives each session's state machine. Sessions are keyed
// by a generated ID and expire after the configured TTL.
type VerificationService struct {
	mu       sync.Mutex
	sessions map[string]*verification.Session

	issuer verification.CodeIssuer
	prober media.Prober
	ttl    time.Duration
	now    func() time.Time
}

// SelectFileInput carries the synchronous descriptor fields of a
// user-selected file.
type SelectFileInput struct {
	SessionID string
	Name      string
	Size      int64
	MIME      string
}

// SessionView is the wire representation of a session's observable state.
type SessionView struct {
	ID         string                 `json:"id"`
	State      verification.State     `json:"state"`
	Email      string                 `json:"email,omitempty"`
	StagedFile *verification.FileInfo `json:"staged_file,omitempty"`
	LastError  string                 `json:"last_error,omitempty"`
	WindowOpen bool                   `json:"window_open"`
}

func NewVerificationService(issuer verification.CodeIssuer, prober media.Prober, ttl time.Duration, now func() time.Time) *VerificationService {
	if now == nil {
		now = time.Now
	}
	return &VerificationService{
		sessions: make(map[string]*verification.Session),
		issuer:   issuer,
		prober:   prober,
		ttl:      ttl,
		now:      now,
	}
}

// StartSweeper evicts expired sessions every interval until ctx is done.
func (s *VerificationService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *VerificationService) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.CreatedAt().Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// CreateSession registers a new session and returns its view.
func (s *VerificationService) CreateSession(_ context.Context) *SessionView {
	sess := verification.NewSession(uuid.NewString(), s.now())
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	return s.view(sess)
}

// GetSession returns the view of an existing session.
func (s *VerificationService) GetSession(_ context.Context, id string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// SubmitEmail advances a session past the email step.
func (s *VerificationService) SubmitEmail(ctx context.Context, id, email string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	err = sess.SubmitEmail(ctx, email, s.issuer)
	s.record("email", err)
	if err != nil {
		return s.view(sess), err
	}
	return s.view(sess), nil
}

// SubmitCode advances a session past the code step.
func (s *VerificationService) SubmitCode(_ context.Context, id, code string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	err = sess.SubmitCode(code)
	s.record("code", err)
	if err != nil {
		return s.view(sess), err
	}
	return s.view(sess), nil
}

// Back returns a session from the code step to the email step.
func (s *VerificationService) Back(_ context.Context, id string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := sess.Back(); err != nil {
		return s.view(sess), err
	}
	return s.view(sess), nil
}

// SelectFile stages a file on a session and kicks off a duration probe.
// The probe result is folded back into the session when it arrives; a
// session that was reset or replaced in the meantime ignores it.
func (s *VerificationService) SelectFile(ctx context.Context, in SelectFileInput) (*SessionView, error) {
	sess, err := s.lookup(in.SessionID)
	if err != nil {
		return nil, err
	}
	err = sess.SelectFile(verification.FileInfo{
		Name: in.Name,
		Size: in.Size,
		MIME: in.MIME,
	})
	s.record("select_file", err)
	if err != nil {
		return s.view(sess), err
	}

	results := s.prober.ProbeDuration(ctx, in.Name, in.Size)
	go func() {
		res, ok := <-results
		if !ok || res.Err != nil {
			return
		}
		staged, stagedOK := sess.StagedFile()
		if !stagedOK || staged.Name != in.Name {
			return
		}
		_ = sess.RecordDuration(res.Seconds)
	}()

	return s.view(sess), nil
}

// RecordDuration applies a probed duration to a session's staged file.
func (s *VerificationService) RecordDuration(_ context.Context, id string, seconds float64) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	err = sess.RecordDuration(seconds)
	s.record("duration", err)
	if err != nil {
		return s.view(sess), err
	}
	return s.view(sess), nil
}

// ClearFile drops a session's staged file.
func (s *VerificationService) ClearFile(_ context.Context, id string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.ClearFile()
	return s.view(sess), nil
}

// SubmitUpload finalizes a session's upload.
func (s *VerificationService) SubmitUpload(_ context.Context, id string) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	err = sess.SubmitUpload(s.now())
	s.record("upload", err)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeWindowClosed {
			observability.UploadWindowRejections.Inc()
		}
		return s.view(sess), err
	}
	return s.view(sess), nil
}

// WindowOpen reports whether the upload window is open right now.
func (s *VerificationService) WindowOpen() bool {
	return verification.WindowOpen(s.now())
}

func (s *VerificationService) lookup(id string) (*verification.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, models.NewNotFoundError("session", id)
	}
	return sess, nil
}

func (s *VerificationService) view(sess *verification.Session) *SessionView {
	v := &SessionView{
		ID:         sess.ID(),
		State:      sess.State(),
		Email:      sess.Email(),
		LastError:  sess.LastError(),
		WindowOpen: verification.WindowOpen(s.now()),
	}
	if staged, ok := sess.StagedFile(); ok {
		v.StagedFile = &staged
	}
	return v
}

func (s *VerificationService) record(step string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	observability.VerificationTransitions.WithLabelValues(step, outcome).Inc()
}
