package fineclock

import "sort"

// Sample is the adjusted timed span of a whole sample of N iterations:
// overhead already subtracted, floored at the clock's precision when
// the raw interval came back as zero. The precision is only measured
// when the run starts in Tune mode; with a fixed sample size there is
// no such floor and a zero interval stays zero.
type Sample struct {
	Duration FineDuration
}

// SampleCollection is an ordered sequence of Sample plus the currently
// active sample size. All samples in a single Collect run share the
// same SampleSize; the collection is cleared whenever the driver
// transitions from Tune to Collect.
type SampleCollection struct {
	all        []Sample
	SampleSize uint32
}

// reserve grows the backing array's capacity to at least n without
// changing its logical length.
func (c *SampleCollection) reserve(n int) {
	if cap(c.all) >= n {
		return
	}
	grown := make([]Sample, len(c.all), n)
	copy(grown, c.all)
	c.all = grown
}

// push appends a recorded sample.
func (c *SampleCollection) push(s Sample) {
	c.all = append(c.all, s)
}

// clear empties the collection (used on the Tune -> Collect
// transition, and whenever Tune discards an undersized run).
func (c *SampleCollection) clear() {
	c.all = c.all[:0]
}

// Len returns the number of recorded samples.
func (c *SampleCollection) Len() int {
	return len(c.all)
}

// Samples returns the recorded samples in recording order.
func (c *SampleCollection) Samples() []Sample {
	return c.all
}

// IterCount returns sample_count * sample_size: the total number of
// benchmarked-function invocations represented by this collection.
func (c *SampleCollection) IterCount() uint64 {
	return uint64(len(c.all)) * uint64(c.SampleSize)
}

// TotalDuration sums the duration of every recorded sample.
func (c *SampleCollection) TotalDuration() FineDuration {
	var total FineDuration
	for _, s := range c.all {
		total = total.Add(s.Duration)
	}
	return total
}

// SortedByDuration returns a copy of the recorded samples sorted
// ascending by duration. Ties are not given a defined tie-break order,
// matching the spec's "stable tie-break not required".
func (c *SampleCollection) SortedByDuration() []Sample {
	sorted := make([]Sample, len(c.all))
	copy(sorted, c.all)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Duration.Less(sorted[j].Duration) })
	return sorted
}

// sliceMiddle returns the values in the middle of s: empty for an
// empty slice, the single center element for odd length, and the two
// center elements for even length.
func sliceMiddle[T any](s []T) []T {
	n := len(s)
	switch {
	case n == 0:
		return s
	case n%2 == 0:
		return s[n/2-1 : n/2+1]
	default:
		return s[n/2 : n/2+1]
	}
}
