package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDigestRun(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "before the hour runs today",
			now:  time.Date(2026, 3, 10, 6, 30, 0, 0, loc),
			hour: 8,
			want: time.Date(2026, 3, 10, 8, 0, 0, 0, loc),
		},
		{
			name: "after the hour runs tomorrow",
			now:  time.Date(2026, 3, 10, 9, 0, 1, 0, loc),
			hour: 8,
			want: time.Date(2026, 3, 11, 8, 0, 0, 0, loc),
		},
		{
			name: "exactly on the hour waits for tomorrow",
			now:  time.Date(2026, 3, 10, 8, 0, 0, 0, loc),
			hour: 8,
			want: time.Date(2026, 3, 11, 8, 0, 0, 0, loc),
		},
		{
			name: "midnight hour",
			now:  time.Date(2026, 3, 10, 15, 0, 0, 0, loc),
			hour: 0,
			want: time.Date(2026, 3, 11, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextDigestRun(tt.now, tt.hour))
		})
	}
}

func TestDigestBounds(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	endOfToday, endOfTomorrow := digestBounds(now)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC), endOfToday)
	assert.Equal(t, time.Date(2026, 3, 11, 23, 59, 59, 0, time.UTC), endOfTomorrow)
}

func TestKeyDateInWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	endOfToday, endOfTomorrow := digestBounds(now)

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"start of today", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"this afternoon", time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), true},
		{"tomorrow evening", time.Date(2026, 3, 11, 21, 0, 0, 0, time.UTC), true},
		{"end of tomorrow", endOfTomorrow, true},
		{"yesterday", time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC), false},
		{"day after tomorrow", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyDateInWindow(tt.d, endOfToday, endOfTomorrow))
		})
	}
}
