package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay_LocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5:30", 5*3600+30*60)

	// 01:15 local is still "today" even though UTC is on the previous day
	at := time.Date(2026, 3, 10, 1, 15, 0, 0, loc)
	start := startOfDay(at)

	want := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	assert.True(t, start.Equal(want), "got %v, want %v", start, want)
	assert.Equal(t, loc, start.Location())

	// absolute-time truncation would shift the window to UTC midnight
	assert.False(t, start.Equal(at.Truncate(24*time.Hour)))
}

func TestStartOfDay_UTCUnchanged(t *testing.T) {
	at := time.Date(2026, 3, 10, 13, 45, 0, 0, time.UTC)
	assert.True(t, startOfDay(at).Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}
