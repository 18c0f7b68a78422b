package tvm

import (
	"fmt"

	"github.com/pkg/errors"
)

type (
	// A Thunk is a function that neither receives nor returns any
	// parameters.
	Thunk func()

	// A RangeFunc is a function that receives a range from low to high,
	// with 0 <= low <= high.
	RangeFunc func(low, high int)

	// A RangePredicate is a function that receives a range from low to
	// high, with 0 <= low <= high, and returns a bool.
	RangePredicate func(low, high int) bool

	// A RangeReducer is a function that receives a range from low to
	// high, with 0 <= low <= high, and reduces it to an int.
	RangeReducer func(low, high int) int

	// A PairReducer combines two partial reduction results into one.
	PairReducer func(x, y int) int
)

// DefaultMaxThreadsPerGroup is the group capacity assumed when a Config
// leaves MaxThreadsPerGroup at zero.
const DefaultMaxThreadsPerGroup = 1024

// Config carries the execution capabilities a sorting engine needs to
// shape its kernel launches. It is always passed explicitly; no engine
// consults ambient runtime state for these values.
type Config struct {
	// MaxThreadsPerGroup bounds how many threads a single group covers.
	// A launch over more work items than this is split into several
	// groups. Zero selects DefaultMaxThreadsPerGroup.
	MaxThreadsPerGroup int

	// Synchronous routes every launch through the sequential mirrors of
	// the parallel primitives. Useful for testing and debugging.
	Synchronous bool

	// PreferNative asks operators to delegate to the optional native
	// sorting library when it is available and supports the requested
	// element type. Operators fall back to the in-process engines
	// otherwise. The choice is resolved once per call, before any work
	// is scheduled.
	PreferNative bool
}

// Check reports whether the configuration is usable. It is called by
// the sort facade before any parallel work is scheduled.
func (c Config) Check() error {
	if c.MaxThreadsPerGroup < 0 {
		return errors.Errorf("invalid max threads per group: %d", c.MaxThreadsPerGroup)
	}
	return nil
}

// GroupSize returns the effective group capacity.
func (c Config) GroupSize() int {
	if c.MaxThreadsPerGroup == 0 {
		return DefaultMaxThreadsPerGroup
	}
	return c.MaxThreadsPerGroup
}

// Groups returns the number of groups needed to cover work threads with
// groups of at most GroupSize threads each. It is at least 1 so that
// empty launches still resolve to a valid batch count.
func (c Config) Groups(work int) int {
	size := c.GroupSize()
	groups := (work + size - 1) / size
	if groups < 1 {
		groups = 1
	}
	return groups
}

// ComputeNofBatches divides the size of the range (high - low) into n
// batches. If n is 0, one batch per group of DefaultMaxThreadsPerGroup
// work items is used. The result is clamped to the range size so that
// batches are never empty.
//
// ComputeNofBatches panics if high < low, or if n < 0.
func ComputeNofBatches(low, high, n int) (batches int) {
	switch size := high - low; {
	case size > 0:
		switch {
		case n == 0:
			batches = Config{}.Groups(size)
		case n > 0:
			batches = n
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
		if batches > size {
			batches = size
		}
	case size == 0:
		batches = 1
	default:
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	return
}
