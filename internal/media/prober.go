// Package media models the media subsystem collaborator. Byte size is
// known synchronously from the file descriptor; playback duration arrives
// asynchronously after the subsystem decodes the file.
package media

import (
	"context"
	"time"
)

// Result carries a probed playback duration or the probe failure.
type Result struct {
	Seconds float64
	Err     error
}

// Prober reports the playback duration of a video file. The returned
// channel delivers exactly one Result. While a probe is outstanding the
// caller is expected to disable the corresponding action; there is no
// cancellation beyond the context.
type Prober interface {
	ProbeDuration(ctx context.Context, name string, size int64) <-chan Result
}

// StaticProber reports a fixed duration after an optional delay. It
// stands in for a real decoder in development and tests.
type StaticProber struct {
	Seconds float64
	Delay   time.Duration
}

// ProbeDuration delivers the configured duration once the delay elapses.
func (p StaticProber) ProbeDuration(ctx context.Context, _ string, _ int64) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		if p.Delay > 0 {
			select {
			case <-ctx.Done():
				ch <- Result{Err: ctx.Err()}
				return
			case <-time.After(p.Delay):
			}
		}
		ch <- Result{Seconds: p.Seconds}
	}()
	return ch
}
