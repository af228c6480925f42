// Package fineclock implements the sample-driven measurement engine
// at the core of a microbenchmarking harness: it turns a
// user-supplied function into a statistically meaningful set of
// timing samples, measured with minimal observational bias.
//
// The package does not register benchmarks, parse arguments, or
// render result tables -- those are the surrounding harness's job.
// What it provides is: a monotonic Clock with a calibrated precision
// (Clock, FineDuration), a pre-allocated per-iteration buffer so that
// allocation and cleanup never land inside the timed region
// (deferStore), a per-iteration counter subsystem for throughput
// quantities (Counters, CounterKind), a driver loop that adaptively
// tunes a per-sample iteration count before collecting real samples
// (BenchContext, BenchLoop), and order-statistic summarization
// (Stats, ComputeStats).
//
// Example:
//
//	clock := fineclock.NewClock()
//	shared := fineclock.NewSharedContext(clock, fineclock.ActionBench)
//	ctx := fineclock.NewBenchContext(shared, fineclock.NewOptions())
//
//	bencher := fineclock.NewBencher(ctx)
//	cfg := fineclock.WithInputs(bencher, func() string {
//		return "hello world"
//	})
//	fineclock.BenchValues(cfg, func(s string) int {
//		return len(s)
//	})
//
//	stats := ctx.ComputeStats()
//	fmt.Println(fineclock.PrettyPrint(stats.Time.Mean))
package fineclock
