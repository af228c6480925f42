package fineclock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newStatsTestContext() *BenchContext {
	shared := &SharedContext{clock: NewClock(), benchOverhead: FineDuration{}, action: ActionBench}
	return NewBenchContext(shared, NewOptions())
}

func TestComputeStatsEmpty(t *testing.T) {
	ctx := newStatsTestContext()
	stats := ctx.ComputeStats()

	require.Equal(t, uint32(0), stats.SampleCount)
	require.Equal(t, uint64(0), stats.IterCount)
	require.True(t, stats.Time.Mean.IsZero())
}

func TestComputeStatsOddSampleCount(t *testing.T) {
	ctx := newStatsTestContext()
	ctx.samples.SampleSize = 1
	for _, picos := range []uint64{30, 10, 20} {
		ctx.samples.push(Sample{Duration: FromPicoseconds(picos)})
	}

	stats := ctx.ComputeStats()
	require.Equal(t, uint32(3), stats.SampleCount)
	require.Equal(t, uint64(10), stats.Time.Fastest.Picoseconds())
	require.Equal(t, uint64(30), stats.Time.Slowest.Picoseconds())
	require.Equal(t, uint64(20), stats.Time.Median.Picoseconds())
	require.Equal(t, uint64(20), stats.Time.Mean.Picoseconds())
}

func TestComputeStatsEvenSampleCount(t *testing.T) {
	ctx := newStatsTestContext()
	ctx.samples.SampleSize = 1
	for _, picos := range []uint64{10, 20, 30, 40} {
		ctx.samples.push(Sample{Duration: FromPicoseconds(picos)})
	}

	stats := ctx.ComputeStats()
	// Median of [10,20,30,40] is the average of the two center values.
	require.Equal(t, uint64(25), stats.Time.Median.Picoseconds())
}

func TestComputeStatsDividesBySampleSize(t *testing.T) {
	ctx := newStatsTestContext()
	ctx.samples.SampleSize = 10
	ctx.samples.push(Sample{Duration: FromPicoseconds(100)})

	stats := ctx.ComputeStats()
	require.Equal(t, uint64(10), stats.Time.Fastest.Picoseconds())
	require.Equal(t, uint64(10), stats.Time.Slowest.Picoseconds())
	require.Equal(t, uint64(10), stats.Time.Median.Picoseconds())
}

func TestComputeStatsCounterAbsentOmitsKind(t *testing.T) {
	ctx := newStatsTestContext()
	ctx.samples.SampleSize = 1
	ctx.samples.push(Sample{Duration: FromPicoseconds(1)})

	stats := ctx.ComputeStats()
	require.Nil(t, stats.Counts[Bytes])
	require.Nil(t, stats.Counts[Items])
}

func TestComputeStatsFixedCounterAppliesToEverySample(t *testing.T) {
	ctx := newStatsTestContext()
	ctx.samples.SampleSize = 1
	ctx.counters.SetFixed(Items, 3)
	for i := 0; i < 4; i++ {
		ctx.samples.push(Sample{Duration: FromPicoseconds(uint64(i + 1))})
	}

	stats := ctx.ComputeStats()
	require.NotNil(t, stats.Counts[Items])
	require.Equal(t, uint64(3), stats.Counts[Items].Stats.Fastest)
	require.Equal(t, uint64(3), stats.Counts[Items].Stats.Slowest)
	require.Equal(t, uint64(3), stats.Counts[Items].Stats.Median)
	require.Equal(t, uint64(3), stats.Counts[Items].Stats.Mean)
}
