package fineclock

import (
	"fmt"
	"strconv"
	"strings"
)

// FineDuration is a picosecond-precision, unsigned duration, stored as
// a plain uint64 picosecond count. A uint64 of picoseconds only
// overflows past roughly 213 days of accumulated duration, far beyond
// any single benchmark sample or run, so no product computed anywhere
// in this module (sample_overhead * sample_size, total_picos /
// iter_count) needs a wider intermediate.
//
// Zero is representable and distinguished from "no value": there is
// no separate absent state.
type FineDuration struct {
	picos uint64
}

// Picoseconds returns the raw picosecond count.
func (d FineDuration) Picoseconds() uint64 {
	return d.picos
}

// FromPicoseconds constructs a FineDuration from a raw picosecond count.
func FromPicoseconds(picos uint64) FineDuration {
	return FineDuration{picos: picos}
}

// IsZero reports whether the duration is exactly zero.
func (d FineDuration) IsZero() bool {
	return d.picos == 0
}

// Add returns the sum of two durations.
func (d FineDuration) Add(other FineDuration) FineDuration {
	return FineDuration{picos: d.picos + other.picos}
}

// SaturatingSub returns d - other, clamped to zero instead of
// wrapping if other is larger than d.
func (d FineDuration) SaturatingSub(other FineDuration) FineDuration {
	if other.picos >= d.picos {
		return FineDuration{}
	}
	return FineDuration{picos: d.picos - other.picos}
}

// DivBySize divides the duration by a positive sample size, as in
// "duration of the whole sample" -> "duration of one iteration".
// Dividing by zero returns zero rather than panicking, mirroring the
// driver's own checked-division-with-default-on-zero behavior in
// compute_stats.
func (d FineDuration) DivBySize(n uint32) FineDuration {
	if n == 0 {
		return FineDuration{}
	}
	return FineDuration{picos: d.picos / uint64(n)}
}

// Compare returns -1, 0, or 1 as d is less than, equal to, or greater
// than other.
func (d FineDuration) Compare(other FineDuration) int {
	switch {
	case d.picos < other.picos:
		return -1
	case d.picos > other.picos:
		return 1
	default:
		return 0
	}
}

// Less reports whether d is strictly less than other. Exposed for use
// as a sort.Slice comparator.
func (d FineDuration) Less(other FineDuration) bool {
	return d.picos < other.picos
}

const (
	picosPerNano  = 1_000
	picosPerMicro = 1_000_000
	picosPerMilli = 1_000_000_000
	picosPerSec   = 1_000_000_000_000
)

// String formats the duration choosing the largest unit such that the
// magnitude is at least 1 in that unit, rendered to up to four
// significant figures. Zero always formats as "0ns", matching
// PrettyPrint's treatment of durations below a microsecond.
func (d FineDuration) String() string {
	switch {
	case d.picos == 0:
		return "0ns"
	case d.picos < picosPerNano:
		return fmt.Sprintf("%dps", d.picos)
	case d.picos < picosPerMicro:
		return formatUnit(float64(d.picos)/picosPerNano, "ns")
	case d.picos < picosPerMilli:
		return formatUnit(float64(d.picos)/picosPerMicro, "µs")
	case d.picos < picosPerSec:
		return formatUnit(float64(d.picos)/picosPerMilli, "ms")
	default:
		return formatUnit(float64(d.picos)/picosPerSec, "s")
	}
}

// formatUnit renders val to up to four significant figures followed
// by unit, trimming trailing fractional zeros (and a trailing dot).
func formatUnit(val float64, unit string) string {
	return formatSigFigs(val, 4) + unit
}

// formatSigFigs formats val to sigFigs significant figures, trimming
// insignificant trailing zeros in the fractional part. Ported from
// the original implementation's format_f64, which trims a
// full-precision Ryu-style string rather than rounding through
// strconv.FormatFloat's own precision handling, to match its exact
// truncate-don't-round semantics for values whose integer part already
// consumes some of the significant figure budget.
func formatSigFigs(val float64, sigFigs int) string {
	str := strconv.FormatFloat(val, 'f', -1, 64)

	dotIndex := strings.IndexByte(str, '.')
	if dotIndex < 0 {
		return str
	}

	fractDigits := sigFigs - dotIndex
	if fractDigits <= 0 {
		return str[:dotIndex]
	}

	fractStart := dotIndex + 1
	fractEnd := fractStart + fractDigits
	if fractEnd > len(str) {
		fractEnd = len(str)
	}
	fractStr := str[fractStart:fractEnd]

	preZero := -1
	for i := len(fractStr) - 1; i >= 0; i-- {
		if fractStr[i] != '0' {
			preZero = len(fractStr) - 1 - i
			break
		}
	}

	if preZero >= 0 {
		return str[:fractEnd-preZero]
	}
	return str[:dotIndex]
}
