package fineclock

import (
	"runtime"
	"time"
)

// Timestamp is an opaque, totally ordered instant produced by a Clock.
// Two timestamps produced by the same Clock variant may be subtracted
// into a FineDuration via Clock.Diff. It wraps a time.Time rather than
// a raw nanosecond count so the monotonic reading time.Now() attaches
// survives into Diff instead of being discarded.
type Timestamp struct {
	t time.Time
}

// Clock abstracts a monotonic time source with a calibrated precision:
// the smallest duration such that two back-to-back reads can differ by
// that amount. Start and End are kept as separate methods (rather than
// a single Now) so that an implementation may place memory barriers
// differently around the beginning and end of a timed region. It is
// an interface, not a concrete type, so tests (and SharedContext
// calibration) can substitute a deterministic fake clock without
// touching the real monotonic source.
type Clock interface {
	// Start takes a timestamp immediately before a timed region begins.
	Start() Timestamp
	// End takes a timestamp immediately after a timed region ends.
	End() Timestamp
	// Precision returns the smallest duration such that two
	// back-to-back reads of this clock can differ by that amount.
	Precision() FineDuration
	// Diff returns the picosecond-precise duration between two
	// timestamps produced by this Clock, end minus start.
	Diff(start, end Timestamp) FineDuration
}

// systemClock is the production Clock backed by the Go runtime's
// monotonic time source.
type systemClock struct {
	precision FineDuration
}

// NewClock calibrates a Clock by repeatedly sampling consecutive reads
// of the monotonic clock and taking the smallest nonzero delta
// observed. This only needs to run once per process.
func NewClock() Clock {
	return &systemClock{precision: calibratePrecision()}
}

// calibratePrecision repeatedly takes consecutive timestamps and
// records the smallest nonzero gap between them.
func calibratePrecision() FineDuration {
	const rounds = 200

	best := int64(0)
	prev := time.Now()
	for i := 0; i < rounds; i++ {
		runtime.Gosched()
		now := time.Now()
		delta := now.Sub(prev)
		prev = now

		if delta <= 0 {
			continue
		}
		picos := int64(delta) * 1_000
		if best == 0 || picos < best {
			best = picos
		}
	}

	if best == 0 {
		// Fallback: assume the reported Go runtime resolution (1ns).
		best = 1_000
	}
	return FineDuration{picos: uint64(best)}
}

func (c *systemClock) Precision() FineDuration {
	return c.precision
}

// Start takes a timestamp immediately before a timed region begins.
// Kept as a distinct method from End (rather than a shared Now) so
// that bookkeeping immediately outside the timed region can never be
// hoisted across the boundary by the compiler.
func (c *systemClock) Start() Timestamp {
	return Timestamp{t: time.Now()}
}

// End takes a timestamp immediately after a timed region ends.
func (c *systemClock) End() Timestamp {
	return Timestamp{t: time.Now()}
}

// Diff returns the picosecond-precise duration between two timestamps
// produced by this Clock, end minus start. time.Time.Sub uses the
// monotonic reading attached by time.Now when both operands carry one,
// which is the whole point of keeping time.Time around rather than an
// extracted wall-clock nanosecond count. Negative results (which
// should not occur on a monotonic source but can under virtualized or
// adjusted clocks) are clamped to zero.
func (c *systemClock) Diff(start, end Timestamp) FineDuration {
	delta := end.t.Sub(start.t)
	if delta <= 0 {
		return FineDuration{}
	}
	return FineDuration{picos: uint64(delta) * 1_000}
}
