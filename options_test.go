package fineclock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	o := NewOptions()

	require.True(t, o.MinTime().IsZero())
	require.False(t, o.MaxTime().IsZero())
	require.True(t, o.HasSamples())

	_, hasSize := o.SampleSize()
	require.False(t, hasSize)

	_, hasCount := o.SampleCount()
	require.False(t, hasCount)

	require.Equal(t, DefaultSampleCount, o.sampleCountOrDefault())
	require.False(t, o.SkipExtTime())
}

func TestOptionsWithSampleCountZeroHasNoSamples(t *testing.T) {
	o := NewOptions().WithSampleCount(0)
	require.False(t, o.HasSamples())
}

func TestOptionsWithSampleSize(t *testing.T) {
	o := NewOptions().WithSampleSize(64)
	size, ok := o.SampleSize()
	require.True(t, ok)
	require.Equal(t, uint32(64), size)
}

func TestOptionsBuilderChaining(t *testing.T) {
	o := NewOptions().
		WithMinTime(FromPicoseconds(1_000_000)).
		WithMaxTime(FromPicoseconds(2_000_000)).
		WithSampleCount(5).
		WithSkipExtTime(true).
		WithCounters(Bytes, Items)

	require.Equal(t, uint64(1_000_000), o.MinTime().Picoseconds())
	require.Equal(t, uint64(2_000_000), o.MaxTime().Picoseconds())
	count, ok := o.SampleCount()
	require.True(t, ok)
	require.Equal(t, uint32(5), count)
	require.True(t, o.SkipExtTime())
	require.Equal(t, []CounterKind{Bytes, Items}, o.CounterPresets())
}
