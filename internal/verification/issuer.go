package verification

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
)

// CodeIssuer delivers a one-time code for the given email out-of-band and
// returns the code it issued. The session stores whatever code was issued
// and compares exactly against subsequent input.
type CodeIssuer interface {
	IssueCode(ctx context.Context, email string) (string, error)
}

// StaticIssuer always issues the same code. Used in tests and in
// development profiles where the original app hinted "123456".
type StaticIssuer string

// IssueCode returns the fixed code.
func (i StaticIssuer) IssueCode(_ context.Context, _ string) (string, error) {
	return string(i), nil
}

// LogIssuer generates a random six-digit code and writes it to the
// structured log in place of a real email channel. There is no email
// backend in scope; the log line is the out-of-band delivery.
type LogIssuer struct {
	Logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLogIssuer returns a LogIssuer seeded from the given source.
func NewLogIssuer(logger *slog.Logger, seed int64) *LogIssuer {
	return &LogIssuer{
		Logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// IssueCode generates and logs a fresh six-digit code.
func (i *LogIssuer) IssueCode(ctx context.Context, email string) (string, error) {
	i.mu.Lock()
	code := fmt.Sprintf("%06d", i.rng.Intn(1000000))
	i.mu.Unlock()

	if i.Logger != nil {
		i.Logger.InfoContext(ctx, "verification code issued",
			slog.String("email", email),
			slog.String("code", code),
		)
	}
	return code, nil
}
