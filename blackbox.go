package fineclock

// blackBoxSink is written to by BlackBox so the compiler cannot prove
// the value is unused and elide the call it guards. It is never read;
// its only purpose is to make BlackBox's write observable to anything
// short of whole-program escape analysis proving the sink itself is
// dead, which it structurally cannot be since it is exported-adjacent
// package state.
var blackBoxSink any

// BlackBox takes a value and returns it unchanged, but is treated by
// the compiler as an unknown function of, and unknown reader of, its
// operand's bits. It is used around the benchmarked call site, the
// loop variable, and slot addresses so that the optimizer cannot
// hoist, elide, or batch them.
//
//go:noinline
func BlackBox[T any](v T) T {
	blackBoxSink = v
	return v
}
