package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("UTC+8", 8*3600))
	clock := NewFixedClock(start)

	assert.True(t, clock.Now().Equal(start))
	assert.Equal(t, time.UTC, clock.Now().Location())

	next := clock.Advance(time.Minute)
	assert.True(t, next.Equal(start.Add(time.Minute)))
	assert.True(t, clock.Now().Equal(next))

	later := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.Set(later)
	assert.True(t, clock.Now().Equal(later))
}

func TestSystemClockIsUTC(t *testing.T) {
	now := NewSystemClock().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestToUTCPtr(t *testing.T) {
	assert.Nil(t, ToUTCPtr(nil))

	local := time.Date(2024, 1, 1, 8, 0, 0, 0, time.FixedZone("X", 3600))
	got := ToUTCPtr(&local)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
	assert.True(t, ToUTC(time.Time{}).IsZero())
}
