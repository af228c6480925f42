package fineclock

// Bencher is the fluent entry point handed to a benchmarked function's
// body, mirroring the small adapter the original implementation sits
// `bench_loop` behind (SPEC_FULL.md section 4, item 1). It wraps a
// BenchContext and exists so callers don't drive BenchLoop directly.
type Bencher struct {
	ctx *BenchContext
}

// NewBencher wraps ctx for fluent-style configuration.
func NewBencher(ctx *BenchContext) Bencher {
	return Bencher{ctx: ctx}
}

// Bench benchmarks a zero-input function. Equivalent to
// WithInputs(b, func() struct{} { return struct{}{} }) followed by
// BenchValues with the input discarded; as a zero-sized, no-cleanup
// input type this takes the counted-loop fast path with no overhead.
func Bench[O any](b Bencher, benched func() O) {
	cfg := WithInputs(b, func() struct{} { return struct{}{} })
	BenchValues(cfg, func(struct{}) O { return benched() })
}

// BencherConfig carries a Bencher's configured input generator plus
// any counters and cleanup installed before BenchValues/BenchRefs is
// called. It is the Go equivalent of BencherConfig<GenI> in the
// original, generic over the input type since With* methods need I to
// type-check InputCounter/Cleanup callbacks (Go forbids adding type
// parameters in a method, so WithInputs returns this standalone
// generic type rather than a generic method on Bencher).
type BencherConfig[I any] struct {
	ctx       *BenchContext
	genInput  func() I
	cleanupFn func(*I)
}

// WithInputs generates inputs for the benchmarked function. Time
// spent generating inputs does not affect benchmark timing. Per-input
// counters installed for an earlier input type are removed.
func WithInputs[I any](b Bencher, genInput func() I) BencherConfig[I] {
	for _, kind := range allCounterKinds {
		if b.ctx.counters.usesInputCounts(kind) {
			b.ctx.counters.slots[kind] = counterSlot{}
		}
	}
	return BencherConfig[I]{ctx: b.ctx, genInput: genInput}
}

// Counter assigns a fixed Counter value for every iteration of the
// benchmarked function: a new counter kind, or an override of an
// existing one. If the counter depends on the generated input, use
// InputCounter instead.
func (c BencherConfig[I]) Counter(kind CounterKind, count uint64) BencherConfig[I] {
	c.ctx.counters.SetFixed(kind, count)
	return c
}

// InputCounter installs a Counter computed from each generated input,
// overriding any existing counter of the same kind.
func (c BencherConfig[I]) InputCounter(kind CounterKind, fn func(*I) uint64) BencherConfig[I] {
	c.ctx.counters.SetInputCounter(kind, func(input any) (uint64, bool) {
		typed, ok := input.(*I)
		if !ok {
			return 0, false
		}
		return fn(typed), true
	})
	return c
}

// Cleanup installs an explicit per-input cleanup callback, invoked
// after the corresponding output's cleanup (if any) and outside the
// timed region. Go has no compiler-known destructors, so this is the
// idiomatic stand-in for the original's input Drop glue -- see
// SPEC_FULL.md section 4, item 3.
func (c BencherConfig[I]) Cleanup(fn func(*I)) BencherConfig[I] {
	c.cleanupFn = fn
	return c
}

// BenchValues benchmarks a function over per-iteration generated
// inputs, provided by-value. dropOutput is optional (pass none for
// outputs with no explicit cleanup); when supplied it runs on every
// produced output before any input cleanup.
func BenchValues[I, O any](c BencherConfig[I], benched func(I) O, dropOutput ...func(*O)) {
	BenchLoop(c.ctx, c.genInput, func(input *I) O {
		return benched(*input)
	}, c.cleanupFn, firstOrNil(dropOutput))
}

// BenchRefs benchmarks a function over per-iteration generated
// inputs, provided by mutable reference. dropOutput is optional, as in
// BenchValues.
func BenchRefs[I, O any](c BencherConfig[I], benched func(*I) O, dropOutput ...func(*O)) {
	BenchLoop(c.ctx, c.genInput, benched, c.cleanupFn, firstOrNil(dropOutput))
}

// firstOrNil returns fns[0] if present, else nil. A tiny helper so
// BenchValues/BenchRefs can accept an optional trailing cleanup
// callback without changing their call-site shape for the common case
// where no cleanup is needed.
func firstOrNil[T any](fns []T) T {
	var zero T
	if len(fns) == 0 {
		return zero
	}
	return fns[0]
}
