package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowOpen(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"just before open", day(13, 59), false},
		{"at open", day(14, 0), true},
		{"mid window", day(16, 30), true},
		{"last minute", day(18, 59), true},
		{"at close", day(19, 0), false},
		{"late night", day(23, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, WindowOpen(tt.at))
		})
	}
}

func TestWindowOpenUsesLocalHour(t *testing.T) {
	// 15:00 in UTC+3 is 12:00 UTC; the window keys on the wall clock of
	// the given instant, not a normalized zone.
	zone := time.FixedZone("UTC+3", 3*60*60)
	assert.True(t, WindowOpen(time.Date(2026, 3, 14, 15, 0, 0, 0, zone)))
	assert.False(t, WindowOpen(time.Date(2026, 3, 14, 12, 0, 0, 0, zone)))
}
