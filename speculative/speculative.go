// Package speculative provides functions for expressing parallel
// algorithms, similar to the functions in package parallel, except that
// the implementations here terminate early when they can.
//
// And and RangeAnd terminate early if the final return value is known
// early, which is when any of the predicates invoked in parallel
// returns false.
//
// None of these functions stop the execution of invoked predicates that
// may still be running in parallel in case of early termination. To
// ensure that compute resources are freed up in such cases, user
// programs need to use some other safe form of communication to
// gracefully stop their execution, for example an atomic flag polled by
// the predicate bodies.
package speculative

import (
	"fmt"
	"sync"

	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/internal"
)

// And receives zero or more predicate functions and executes them in
// parallel.
//
// Each predicate is invoked in its own goroutine, and And returns true
// if all of them return true; or And returns false when at least one of
// them returns false, without waiting for the other predicates to
// terminate.
//
// If one or more predicates panic, the corresponding goroutines recover
// the panics, and And may eventually panic with the left-most recovered
// panic value. If both panics occur and false values are returned, then
// the left-most of these events takes precedence.
func And(predicates ...func() bool) bool {
	switch len(predicates) {
	case 0:
		return true
	case 1:
		return predicates[0]()
	}
	var b1 bool
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	var b0 bool
	switch len(predicates) {
	case 2:
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			b1 = predicates[1]()
		}()
		b0 = predicates[0]()
	default:
		half := len(predicates) / 2
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			b1 = And(predicates[half:]...)
		}()
		b0 = And(predicates[:half]...)
	}
	if !b0 {
		return false
	}
	wg.Wait()
	if p != nil {
		panic(p)
	}
	return b1
}

// RangeAnd receives a range, a batch count n, and a range predicate f,
// divides the range into batches, and invokes the range predicate for
// each of these batches in parallel, covering the half-open interval
// from low to high, including low but excluding high.
//
// The range predicate is invoked for each batch in its own goroutine,
// and RangeAnd returns true if all of them return true; or RangeAnd
// returns false when at least one of them returns false, without
// waiting for the other range predicates to terminate.
//
// RangeAnd panics if high < low, or if n < 0.
//
// If one or more range predicates panic, the corresponding goroutines
// recover the panics, and RangeAnd may eventually panic with the
// left-most recovered panic value. If both panics occur and false
// values are returned, then the left-most of these events takes
// precedence.
func RangeAnd(low, high, n int, f tvm.RangePredicate) bool {
	var recur func(int, int, int) bool
	recur = func(low, high, n int) bool {
		switch {
		case n == 1:
			return f(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				return f(low, high)
			}
			var b1 bool
			var p interface{}
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer func() {
					p = internal.WrapPanic(recover())
					wg.Done()
				}()
				b1 = recur(mid, high, n-half)
			}()
			if !recur(low, mid, half) {
				return false
			}
			wg.Wait()
			if p != nil {
				panic(p)
			}
			return b1
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	return recur(low, high, tvm.ComputeNofBatches(low, high, n))
}
