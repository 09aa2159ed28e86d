package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, ParseDuration("10ms", time.Second))
	assert.Equal(t, time.Hour, ParseDuration("1h", time.Second))
	assert.Equal(t, time.Second, ParseDuration("not-a-duration", time.Second))
	assert.Equal(t, time.Second, ParseDuration("", time.Second))
}

func TestWholeDaysSince(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, WholeDaysSince(now, now.AddDate(0, 0, -5)))
	assert.Equal(t, 0, WholeDaysSince(now, now.Add(-23*time.Hour)))
	assert.Equal(t, 1, WholeDaysSince(now, now.Add(-25*time.Hour)))
	assert.Equal(t, 0, WholeDaysSince(now, now))
	// Future due dates count negative
	assert.Equal(t, -2, WholeDaysSince(now, now.AddDate(0, 0, 2)))
}
