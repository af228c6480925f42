package fineclock

// Action selects whether a BenchContext is exercising a single
// no-timing smoke run (Test) or collecting real measurements (Bench).
type Action int

const (
	// ActionBench runs the full Tune/Collect measurement loop.
	ActionBench Action = iota
	// ActionTest runs the benchmarked function exactly once, recording
	// nothing, to catch panics and verify the benchmark body executes.
	ActionTest
)

func (a Action) isTest() bool {
	return a == ActionTest
}

// SharedContext is read-only state shared across every BenchContext in
// a process: the Clock, the calibrated per-iteration overhead of an
// empty sample loop, and the requested Action. It is constructed once,
// before any BenchContext, and never mutated afterward, so concurrent
// BenchContexts (one per goroutine, never shared) may read it freely.
type SharedContext struct {
	clock         Clock
	benchOverhead FineDuration
	action        Action
}

// NewSharedContext calibrates bench overhead by timing an empty
// sample loop and returns a SharedContext ready to drive benchmarks.
func NewSharedContext(clock Clock, action Action) *SharedContext {
	return &SharedContext{
		clock:         clock,
		benchOverhead: calibrateOverhead(clock),
		action:        action,
	}
}

// calibrateOverhead times a tight empty loop to estimate the
// per-iteration cost of the sample loop's own bookkeeping, so that
// cost can be subtracted from every real sample.
func calibrateOverhead(clock Clock) FineDuration {
	const rounds = 10_000

	start := clock.Start()
	for i := 0; i < rounds; i++ {
		BlackBox(i)
	}
	end := clock.End()

	return clock.Diff(start, end).DivBySize(rounds)
}
