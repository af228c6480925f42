package fineclock

import "sort"

// StatsSet holds the four summary figures (fastest/slowest/median/
// mean) computed for one dimension of a benchmark run: either elapsed
// time, or one counter kind's throughput.
type StatsSet[T any] struct {
	Fastest T
	Slowest T
	Median  T
	Mean    T
}

// CounterStats is a StatsSet over counter values, present only if
// every sample needed to compute it actually carries that counter
// kind.
type CounterStats struct {
	Kind  CounterKind
	Stats StatsSet[uint64]
}

// Stats is the final summary computed from a SampleCollection: mean,
// min, max, and median duration, plus the same four figures for every
// counter kind that was recorded, and the sample/iteration counts.
type Stats struct {
	SampleCount uint32
	IterCount   uint64
	Time        StatsSet[FineDuration]
	Counts      [counterKindCount]*CounterStats
}

// ComputeStats summarizes ctx's recorded samples and counters. It is
// a pure function of internal state, callable once after BenchLoop
// returns.
func (ctx *BenchContext) ComputeStats() Stats {
	samples := ctx.samples.Samples()
	sampleCount := len(samples)
	sampleSize := ctx.samples.SampleSize

	totalCount := ctx.samples.IterCount()
	totalDuration := ctx.samples.TotalDuration()

	meanDuration := FineDuration{}
	if totalCount > 0 {
		meanDuration = FromPicoseconds(totalDuration.Picoseconds() / totalCount)
	}

	// Sort original indices by duration instead of sorting Sample
	// values directly, so counter columns (indexed by original
	// recording order) can still be looked up correctly even when two
	// samples share the same duration.
	sortedIdx := make([]int, sampleCount)
	for i := range sortedIdx {
		sortedIdx[i] = i
	}
	sort.Slice(sortedIdx, func(a, b int) bool {
		return samples[sortedIdx[a]].Duration.Less(samples[sortedIdx[b]].Duration)
	})

	medianIdx := sliceMiddle(sortedIdx)

	countForIndex := func(idx int, kind CounterKind) (uint64, bool) {
		if ctx.counters.usesInputCounts(kind) {
			return ctx.counters.countAt(kind, idx)
		}
		return ctx.counters.countAt(kind, 0)
	}

	var minDuration, maxDuration FineDuration
	if sampleCount > 0 {
		minDuration = samples[sortedIdx[0]].Duration.DivBySize(sampleSize)
		maxDuration = samples[sortedIdx[len(sortedIdx)-1]].Duration.DivBySize(sampleSize)
	}

	var medianDuration FineDuration
	if len(medianIdx) > 0 {
		var sum uint64
		for _, idx := range medianIdx {
			sum += samples[idx].Duration.Picoseconds()
		}
		medianDuration = FromPicoseconds(sum / uint64(len(medianIdx))).DivBySize(sampleSize)
	}

	var counts [counterKindCount]*CounterStats
	for _, kind := range allCounterKinds {
		if cs, ok := computeCounterStats(kind, sortedIdx, medianIdx, countForIndex, &ctx.counters); ok {
			counts[kind] = cs
		}
	}

	return Stats{
		SampleCount: uint32(sampleCount),
		IterCount:   totalCount,
		Time: StatsSet[FineDuration]{
			Mean:    meanDuration,
			Fastest: minDuration,
			Slowest: maxDuration,
			Median:  medianDuration,
		},
		Counts: counts,
	}
}

// computeCounterStats computes one counter kind's StatsSet, returning
// ok=false if any of the four figures is unavailable for the final
// sample set -- in which case the whole kind is omitted from Stats,
// per spec.md section 4.7.
func computeCounterStats(
	kind CounterKind,
	sortedIdx []int,
	medianIdx []int,
	countForIndex func(idx int, kind CounterKind) (uint64, bool),
	counters *Counters,
) (*CounterStats, bool) {
	if len(sortedIdx) == 0 {
		return nil, false
	}

	fastest, ok := countForIndex(sortedIdx[0], kind)
	if !ok {
		return nil, false
	}
	slowest, ok := countForIndex(sortedIdx[len(sortedIdx)-1], kind)
	if !ok {
		return nil, false
	}

	var medianSum uint64
	for _, idx := range medianIdx {
		count, ok := countForIndex(idx, kind)
		if !ok {
			return nil, false
		}
		medianSum += count
	}
	var median uint64
	if len(medianIdx) > 0 {
		median = medianSum / uint64(len(medianIdx))
	}

	mean, ok := counters.MeanCount(kind)
	if !ok {
		return nil, false
	}

	return &CounterStats{
		Kind: kind,
		Stats: StatsSet[uint64]{
			Fastest: fastest,
			Slowest: slowest,
			Median:  median,
			Mean:    mean,
		},
	}, true
}
