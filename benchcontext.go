package fineclock

// BenchContext is the outer state machine driving one benchmarked
// function through Test, Tune, and Collect modes. Functions called
// within the benchmark loop are kept small and allocation-free so the
// hot path stays cheap; a BenchContext is used by exactly one
// goroutine and never shared across benchmark boundaries.
type BenchContext struct {
	shared  *SharedContext
	options *Options

	// DidRun is set true by BenchLoop once it has passed its zero
	// MaxTime / zero sample count check; a configuration no-op leaves
	// it false. The harness
	// uses this to detect benchmarks whose body never invoked any bench
	// variant.
	DidRun bool

	samples  SampleCollection
	counters Counters
}

// NewBenchContext creates a benchmarking context borrowing shared and
// options for the lifetime of one BenchLoop call.
func NewBenchContext(shared *SharedContext, options *Options) *BenchContext {
	ctx := &BenchContext{shared: shared, options: options}
	for _, kind := range options.CounterPresets() {
		ctx.counters.SetFixed(kind, 0)
	}
	return ctx
}

// Options returns the configuration this context was built with.
func (ctx *BenchContext) Options() *Options { return ctx.options }

// initialMode derives the starting BenchMode from the shared Action
// and the configured sample size.
func (ctx *BenchContext) initialMode() benchMode {
	if ctx.shared.action.isTest() {
		return testMode()
	}
	if size, ok := ctx.options.SampleSize(); ok {
		return collectMode(size)
	}
	return tuneMode(1)
}

// benchShouldContinue implements the spec's driver loop condition:
// continue while the time budget isn't exhausted, and either samples
// remain to be collected or the minimum time floor hasn't been met.
func benchShouldContinue(elapsedPicos, maxPicos uint64, remSamples *uint32, minPicos uint64) bool {
	if elapsedPicos >= maxPicos {
		return false
	}
	if remSamples == nil || *remSamples > 0 {
		return true
	}
	return elapsedPicos < minPicos
}

// BenchLoop is the measurement entry point (spec.md section 6): it
// generates inputs, times exactly N calls to benched per sample,
// drops outputs then inputs outside the timed region, and appends one
// Sample (plus the per-iteration average of each per-input counter)
// per call to the recorder outside Test mode.
//
// genInput may be called any number of times, including zero. Each
// call to benched is preceded by a successful genInput and sees an
// initialized, exclusively owned input. dropOutput, if non-nil, is
// invoked on every produced output after sample_end and before
// dropInput runs on the corresponding input. dropInput may be nil if
// the input type needs no explicit cleanup (e.g. ownership was fully
// transferred into benched).
//
// This is a free function rather than a method because Go forbids a
// method from introducing additional type parameters beyond its
// receiver's.
func BenchLoop[I, O any](
	ctx *BenchContext,
	genInput func() I,
	benched func(*I) O,
	dropInput func(*I),
	dropOutput func(*O),
) {
	mode := ctx.initialMode()
	isTest := mode.isTest()

	var elapsedPicos uint64
	minPicos := ctx.options.MinTime().Picoseconds()
	maxPicos := ctx.options.MaxTime().Picoseconds()

	// Don't bother running if the user specifies 0 max time or 0
	// samples: a configuration no-op, not an error. did_run stays
	// false in this case (spec.md section 8, testable property 7).
	if maxPicos == 0 || !ctx.options.HasSamples() {
		return
	}

	ctx.DidRun = true

	clock := ctx.shared.clock

	recorder := newSampleRecorder(clock, genInput, benched, dropInput, dropOutput)

	var remSamples *uint32
	if mode.isCollect() {
		n := ctx.options.sampleCountOrDefault()
		remSamples = &n
	}

	// Only measure precision if tuning sample size is needed.
	var timerPrecision FineDuration
	if mode.isTune() {
		timerPrecision = clock.Precision()
	}

	if !isTest {
		ctx.samples.reserve(int(ctx.options.sampleCountOr(1)))
	}

	skipExtTime := ctx.options.SkipExtTime()
	var initialStart Timestamp
	haveInitialStart := false
	if !skipExtTime {
		initialStart = clock.Start()
		haveInitialStart = true
	}

	for benchShouldContinue(elapsedPicos, maxPicos, remSamples, minPicos) {
		sampleSize := mode.sampleSizeOf()
		ctx.samples.SampleSize = sampleSize

		var sampleCounterTotals [counterKindCount]uint64
		countInput := func(input *I) {
			for _, kind := range allCounterKinds {
				if count, ok := ctx.counters.inputCount(kind, input); ok {
					sampleCounterTotals[kind] += count
				}
			}
		}

		start, end := recorder(int(sampleSize), countInput)

		// If testing, exit the loop immediately after timing a single
		// run; nothing is recorded.
		if isTest {
			break
		}

		rawDuration := clock.Diff(start, end)

		// Round up to timer precision if the duration is zero. This is
		// deliberately done again later after subtracting overhead.
		if rawDuration.IsZero() {
			rawDuration = timerPrecision
		}

		if mode.isTune() {
			// Clear previous smaller samples.
			ctx.samples.clear()
			ctx.counters.clearInputCounts()

			// If within 100x timer precision, continue tuning. Compared
			// directly (raw_duration <= 100*precision) rather than via
			// integer division, since dividing first would floor away
			// the fractional multiple and wrongly keep tuning for a
			// raw_duration just past the 100x threshold.
			if rawDuration.Picoseconds() <= 100*timerPrecision.Picoseconds() {
				mode = tuneMode(sampleSize * 2)
			} else {
				mode = collectMode(sampleSize)
				n := ctx.options.sampleCountOrDefault()
				remSamples = &n
			}
		}

		// Account for the per-sample benchmarking overhead.
		overhead := FromPicoseconds(ctx.shared.benchOverhead.Picoseconds() * uint64(sampleSize))
		adjusted := rawDuration.SaturatingSub(overhead)

		// Round up to timer precision a second time, in case
		// subtracting overhead caused the duration to become zero.
		if adjusted.IsZero() {
			adjusted = timerPrecision
		}

		ctx.samples.push(Sample{Duration: adjusted})

		// Insert per-input counter information.
		for _, kind := range allCounterKinds {
			if !ctx.counters.usesInputCounts(kind) {
				continue
			}
			total := sampleCounterTotals[kind]
			perIter := total / uint64(sampleSize)
			ctx.counters.pushCount(kind, perIter)
		}

		if remSamples != nil && *remSamples > 0 {
			*remSamples--
		}

		if haveInitialStart {
			elapsedPicos = clock.Diff(initialStart, end).Picoseconds()
		} else {
			// Progress by at least 1ns to prevent extremely fast
			// functions from taking forever when MinTime is set.
			progress := rawDuration.Picoseconds()
			if progress < 1_000 {
				progress = 1_000
			}
			elapsedPicos += progress
		}
	}
}

// newSampleRecorder is the closure factory from spec.md section 4.3:
// for a given sample size it generates N inputs, tallies counters,
// times exactly N calls to benched, then drops outputs and inputs
// outside the timed region.
//
// The deferStore (when needed) is allocated once here and reused
// across every sample taken by the returned closure, so its backing
// array is only grown, never reallocated from scratch each sample.
func newSampleRecorder[I, O any](
	clock Clock,
	genInput func() I,
	benched func(*I) O,
	dropInput func(*I),
	dropOutput func(*O),
) func(sampleSize int, countInput func(*I)) (Timestamp, Timestamp) {
	// The counted-loop fast path applies when the input carries no
	// storage and either the output also carries no storage or no
	// explicit output cleanup was supplied -- mirroring the original
	// source's "(size_of::<I>()==0 && size_of::<O>()==0) ||
	// (size_of::<I>()==0 && !needs_drop::<O>())" condition, with
	// "needs_drop::<O>()" reinterpreted as "the caller supplied
	// dropOutput" since Go has no compiler-known destructors (see
	// SPEC_FULL.md section 4, item 3).
	noStoreNeeded := !hasStorage[I]() && (!hasStorage[O]() || dropOutput == nil)

	var store *deferStore[I, O]
	if !noStoreNeeded {
		store = newDeferStore[I, O](dropOutput != nil)
	}

	return func(sampleSize int, countInput func(*I)) (Timestamp, Timestamp) {
		if noStoreNeeded {
			return recordCountedLoop(clock, sampleSize, genInput, benched, dropInput, dropOutput, countInput)
		}
		return recordWithDeferStore(clock, store, sampleSize, genInput, benched, dropInput, dropOutput, countInput)
	}
}

// recordCountedLoop is the strategy used when the input has no
// storage footprint: there's nothing worth addressing through a
// deferStore, so inputs are generated (for side effects and counting)
// and then forgotten, and the timed loop constructs a fresh zero
// value of I on each iteration instead of reading a slot. Outputs are
// likewise forgotten inside the timed loop (there's nowhere to store
// an output of a zero-sized, no-storage input path); if the caller
// supplied dropOutput, a fresh zero O is fabricated and dropped once
// per iteration afterwards, outside the timed region and before
// dropInput -- mirroring the original's "output only needs drop if
// ZST" branch (SPEC_FULL.md section 4, item 3; spec.md section 4.3
// dispatch table row 2).
func recordCountedLoop[I, O any](
	clock Clock,
	sampleSize int,
	genInput func() I,
	benched func(*I) O,
	dropInput func(*I),
	dropOutput func(*O),
	countInput func(*I),
) (Timestamp, Timestamp) {
	// Run genInput the expected number of times in case it updates
	// external state used by benched.
	for i := 0; i < sampleSize; i++ {
		input := genInput()
		countInput(&input)
	}

	start := clock.Start()

	for i := 0; i < sampleSize; i++ {
		var input I
		_ = BlackBox(benched(&input))
	}

	end := clock.End()

	if dropOutput != nil {
		for i := 0; i < sampleSize; i++ {
			var output O
			dropOutput(&output)
		}
	}

	if dropInput != nil {
		for i := 0; i < sampleSize; i++ {
			var input I
			dropInput(&input)
		}
	}

	return start, end
}

// recordWithDeferStore is the strategy used whenever the input has a
// storage footprint: all N inputs are generated and stored before
// sample_start so the timed loop does nothing but call benched and,
// if dropOutput is set, store each output in its slot for dropping
// after sample_end.
func recordWithDeferStore[I, O any](
	clock Clock,
	store *deferStore[I, O],
	sampleSize int,
	genInput func() I,
	benched func(*I) O,
	dropInput func(*I),
	dropOutput func(*O),
	countInput func(*I),
) (Timestamp, Timestamp) {
	store.prepare(sampleSize)

	for i := range store.slots {
		store.slots[i].input = genInput()
		countInput(&store.slots[i].input)
	}

	slots := BlackBox(store.slots)

	start := clock.Start()

	if store.withOutputs {
		for i := range slots {
			output := benched(&slots[i].input)
			slots[i].output = output
			_ = BlackBox(&slots[i])
		}
	} else {
		for i := range slots {
			_ = BlackBox(benched(&slots[i].input))
		}
	}

	end := clock.End()

	if store.withOutputs && dropOutput != nil {
		for i := range slots {
			dropOutput(&slots[i].output)
		}
	}

	if dropInput != nil {
		for i := range slots {
			dropInput(&slots[i].input)
		}
	}

	return start, end
}
