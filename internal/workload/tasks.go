package workload

import (
	"fmt"
	"math"
	"math/big"
	"runtime"
)

const (
	// FibonacciIndexCap is the maximum number of indices of a chunk the
	// FibonacciRange task evaluates; the rest of the chunk is skipped.
	FibonacciIndexCap = 100
	// FibonacciArgModulus bounds the recursive argument to [0, 29].
	FibonacciArgModulus = 30
	// ExponentialScale divides each index before exponentiation.
	ExponentialScale = 1000.0
)

// SumRange accumulates every index of r.
func SumRange(r Range) int64 {
	var total int64
	for i := r.Start; i < r.End; i++ {
		total += int64(i)
	}
	return total
}

// ProductRange multiplies every index of [max(1,Start), max(1,End)). The clamp
// keeps zero out of the product, so a chunk starting at 0 still yields a
// non-degenerate value.
func ProductRange(r Range) *big.Int {
	start, end := max(1, r.Start), max(1, r.End)
	acc := big.NewInt(1)
	var factor big.Int
	for i := start; i < end; i++ {
		acc.Mul(acc, factor.SetInt64(int64(i)))
	}
	return acc
}

// FibonacciArgs returns the arguments the Fibonacci task evaluates for r:
// index mod 30 for at most the first 100 indices of the range.
func FibonacciArgs(r Range) []int {
	n := min(r.Len(), FibonacciIndexCap)
	args := make([]int, 0, n)
	for i := r.Start; i < r.Start+n; i++ {
		args = append(args, i%FibonacciArgModulus)
	}
	return args
}

// FibonacciRange sums naive doubly-recursive fib(index mod 30) over the first
// FibonacciIndexCap indices of r.
func FibonacciRange(r Range) int64 {
	var total int64
	for _, n := range FibonacciArgs(r) {
		total += fibRecursive(n)
	}
	return total
}

func fibRecursive(n int) int64 {
	if n < 2 {
		return int64(n)
	}
	return fibRecursive(n-1) + fibRecursive(n-2)
}

// ExponentialRange accumulates exp(i/1000) over r. Values past the float64 range
// saturate to +Inf; only the time spent matters.
func ExponentialRange(r Range) float64 {
	var total float64
	for i := r.Start; i < r.End; i++ {
		total += math.Exp(float64(i) / ExponentialScale)
	}
	return total
}

// Execute runs the task of the given kind over r and discards the value.
// Empty ranges are no-ops.
func Execute(kind TaskKind, r Range) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown task kind %d", int(kind))
	}
	if r.Empty() {
		return nil
	}
	var v any
	switch kind {
	case Sum:
		v = SumRange(r)
	case Product:
		v = ProductRange(r)
	case Fibonacci:
		v = FibonacciRange(r)
	case Exponential:
		v = ExponentialRange(r)
	}
	runtime.KeepAlive(v)
	return nil
}
