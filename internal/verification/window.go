package verification

import "time"

// Upload window boundaries, local hour of day. Uploads are permitted from
// 2 PM inclusive to 7 PM exclusive.
const (
	WindowOpenHour  = 14
	WindowCloseHour = 19
)

// WindowOpen reports whether the upload window is open at the given
// wall-clock instant. Callers must pass a fresh `now` on every check
// rather than caching the result.
func WindowOpen(now time.Time) bool {
	h := now.Hour()
	return h >= WindowOpenHour && h < WindowCloseHour
}
