package fineclock

import "math"

// DefaultSampleCount is used whenever no explicit sample count is
// requested and tuning completes normally.
const DefaultSampleCount uint32 = 100

// maxTimePicos is used as "infinity" for an unset MaxTime: a duration
// large enough that no real benchmark run will ever reach it through
// the time-budget check, while staying representable in a uint64
// picosecond count.
const maxTimePicos = math.MaxUint64

// Options is the immutable configuration envelope for a benchmark run,
// assembled through chained With* builder methods exactly like the
// teacher's benchmarks.Options ("New(...).WithX(...).WithY(...)").
// Once built it is never mutated; a BenchContext borrows it by
// pointer for the lifetime of one bench_loop call.
type Options struct {
	minTime FineDuration
	maxTime FineDuration

	sampleCount    uint32
	hasSampleCount bool

	sampleSize    uint32
	hasSampleSize bool

	skipExtTime bool

	counterPresets []CounterKind
}

// NewOptions returns an Options with the spec's defaults: MinTime 0,
// MaxTime effectively unbounded, tuned sample size, default sample
// count once tuning completes, and external (generator/drop) time
// included in the budget.
func NewOptions() *Options {
	return &Options{
		minTime: FineDuration{},
		maxTime: FromPicoseconds(maxTimePicos),
	}
}

// WithMinTime sets the minimum elapsed time of the bench_loop call,
// tuning included: sampling continues past the requested sample count
// until this much time has elapsed (MaxTime still ends the run).
func (o *Options) WithMinTime(d FineDuration) *Options {
	o.minTime = d
	return o
}

// WithMaxTime sets the hard wall-clock time budget for the whole
// bench_loop call, tuning included. Reaching it always ends the run,
// regardless of sample count or MinTime.
func (o *Options) WithMaxTime(d FineDuration) *Options {
	o.maxTime = d
	return o
}

// WithSampleCount requests a specific number of samples to collect.
// Passing 0 makes the run a configuration no-op (see HasSamples).
func (o *Options) WithSampleCount(n uint32) *Options {
	o.sampleCount = n
	o.hasSampleCount = true
	return o
}

// WithSampleSize fixes the number of iterations per sample, skipping
// the adaptive tuner entirely and entering Collect mode immediately.
func (o *Options) WithSampleSize(n uint32) *Options {
	o.sampleSize = n
	o.hasSampleSize = true
	return o
}

// WithSkipExtTime excludes input-generation and drop time from the
// elapsed-time budget: the driver's progress is then driven solely by
// sample durations, not by when initial_start was recorded.
func (o *Options) WithSkipExtTime(skip bool) *Options {
	o.skipExtTime = skip
	return o
}

// WithCounters sets the default CounterKind presets, replacing any
// set by an earlier call. NewBenchContext installs each preset as a
// fixed counter with a count of 0; BencherConfig.Counter and
// BencherConfig.InputCounter replace a preset of the same kind.
func (o *Options) WithCounters(kinds ...CounterKind) *Options {
	o.counterPresets = append([]CounterKind(nil), kinds...)
	return o
}

// MinTime returns the configured minimum collection time.
func (o *Options) MinTime() FineDuration { return o.minTime }

// MaxTime returns the configured maximum collection time.
func (o *Options) MaxTime() FineDuration { return o.maxTime }

// SampleSize returns the fixed sample size and whether one was set.
func (o *Options) SampleSize() (uint32, bool) { return o.sampleSize, o.hasSampleSize }

// SampleCount returns the requested sample count and whether one was
// set explicitly.
func (o *Options) SampleCount() (uint32, bool) { return o.sampleCount, o.hasSampleCount }

// SkipExtTime reports whether input-generation/drop time is excluded
// from the elapsed-time budget.
func (o *Options) SkipExtTime() bool { return o.skipExtTime }

// sampleCountOrDefault returns the requested sample count, or
// DefaultSampleCount if none was set.
func (o *Options) sampleCountOrDefault() uint32 {
	if o.hasSampleCount {
		return o.sampleCount
	}
	return DefaultSampleCount
}

// sampleCountOr returns the requested sample count, or fallback if
// none was set -- used only to size the initial sample reservation,
// where the teacher's original reserves 1 rather than the eventual
// default count when no count was requested yet.
func (o *Options) sampleCountOr(fallback uint32) uint32 {
	if o.hasSampleCount {
		return o.sampleCount
	}
	return fallback
}

// HasSamples reports whether the requested sample count is nonzero;
// an absent count counts as the default of 100, which is always
// nonzero, so HasSamples is only false when a count of exactly 0 was
// requested explicitly via WithSampleCount(0).
func (o *Options) HasSamples() bool {
	return o.sampleCountOrDefault() != 0
}

// CounterPresets returns the CounterKind presets installed via
// WithCounters.
func (o *Options) CounterPresets() []CounterKind {
	return o.counterPresets
}
