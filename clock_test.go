package fineclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockPrecisionNonZero(t *testing.T) {
	clock := NewClock()
	require.False(t, clock.Precision().IsZero(), "calibrated precision must be nonzero")
}

func TestClockDiffNonNegative(t *testing.T) {
	clock := NewClock()
	start := clock.Start()
	end := clock.End()

	diff := clock.Diff(start, end)
	require.GreaterOrEqual(t, diff.Picoseconds(), uint64(0))
}

func TestClockDiffOrdersTimestamps(t *testing.T) {
	clock := NewClock()
	early := Timestamp{t: time.Unix(0, 100)}
	late := Timestamp{t: time.Unix(0, 500)}

	require.Equal(t, uint64(400_000), clock.Diff(early, late).Picoseconds())
	require.True(t, clock.Diff(late, early).IsZero(), "reversed order clamps to zero")
}
