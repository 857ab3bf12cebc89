package workload

import "fmt"

// Range is a half-open interval [Start, End) of iteration indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range. Degenerate ranges have
// length zero.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range holds no index.
func (r Range) Empty() bool { return r.Len() == 0 }

// String renders the range in interval notation.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Partition splits [0, total) into exactly workers contiguous chunks.
//
// Every chunk but the last has size max(1, total/workers); the last chunk
// absorbs the remainder. When workers exceeds total, starts and ends are
// clamped to total so trailing chunks are empty rather than pointing past
// the domain. Callers treat empty chunks as no-ops.
//
// Partition returns nil when workers < 1 or total < 0.
func Partition(total, workers int) []Range {
	if workers < 1 || total < 0 {
		return nil
	}
	chunk := max(1, total/workers)

	ranges := make([]Range, workers)
	for i := range workers {
		start := min(i*chunk, total)
		end := total
		if i < workers-1 {
			end = min((i+1)*chunk, total)
		}
		ranges[i] = Range{Start: start, End: end}
	}
	return ranges
}
