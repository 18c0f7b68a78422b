// Package sequential provides sequential implementations of the
// functions provided by the parallel and speculative packages. This is
// useful for testing and debugging: a Config with Synchronous set
// routes every kernel launch of the sorting engines through this
// package, so a misbehaving kernel can be stepped through without any
// goroutine interleaving.
//
// It is not recommended to use the implementations of this package for
// any other purpose, because they are almost certainly too inefficient
// for regular sequential programs.
package sequential

import (
	"github.com/hussam789/tvm"
)

// Do receives zero or more thunks and executes them sequentially.
func Do(thunks ...tvm.Thunk) {
	for _, thunk := range thunks {
		thunk()
	}
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches sequentially, covering the half-open interval
// from low to high, including low but excluding high.
//
// Range panics if high < low, or if n < 0.
func Range(low, high, n int, f tvm.RangeFunc) {
	batches := tvm.ComputeNofBatches(low, high, n)
	batchSize := ((high - low - 1) / batches) + 1
	for b := low; b < high; b += batchSize {
		end := b + batchSize
		if end > high {
			end = high
		}
		f(b, end)
	}
	if low == high {
		f(low, high)
	}
}

// RangeAnd receives a range, a batch count n, and a range predicate f,
// divides the range into batches, and invokes the range predicate for
// each of these batches sequentially, combining all return values with
// the && operator.
//
// RangeAnd panics if high < low, or if n < 0.
func RangeAnd(low, high, n int, f tvm.RangePredicate) bool {
	result := true
	Range(low, high, n, func(low, high int) {
		result = f(low, high) && result
	})
	return result
}

// RangeReduceInt receives a range, a batch count n, a range reducer
// reduce, and a pair reducer pair, divides the range into batches,
// invokes the range reducer for each of these batches sequentially, and
// combines the results with repeated invocations of the pair reducer.
//
// RangeReduceInt panics if high < low, or if n < 0.
func RangeReduceInt(low, high, n int, reduce tvm.RangeReducer, pair tvm.PairReducer) int {
	var result int
	first := true
	Range(low, high, n, func(low, high int) {
		if first {
			result = reduce(low, high)
			first = false
			return
		}
		result = pair(result, reduce(low, high))
	})
	return result
}
