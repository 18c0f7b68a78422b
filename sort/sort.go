// Package sort provides parallel sorting operators for dense tensors:
// full-axis sort and argsort, a bounded per-segment sort driven by a
// valid-count array, and top-k selection.
//
// Two in-process engines do the work. A bottom-up merge sort fully
// orders an axis of arbitrary length through iterative doubling over a
// pair of ping-pong buffers; an odd-even transposition sort orders only
// the first validCount elements of each independent segment. Both run
// as sequences of kernel launches over the tvm/parallel substrate, with
// launch completion acting as the barrier between rounds and passes.
// When a pre-optimized native library is available and preferred, the
// operators delegate to it instead (see tvm/nativesort).
package sort

import (
	"github.com/pkg/errors"

	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/parallel"
	"github.com/hussam789/tvm/sequential"
	"github.com/hussam789/tvm/speculative"
	"github.com/hussam789/tvm/tensor"
)

// Order selects the direction of a sort.
type Order int

const (
	// Ascending orders smaller values first. Equal values keep the
	// relative order of their axis positions.
	Ascending Order = iota
	// Descending orders larger values first, with the same tie rule.
	Descending
)

// launch runs one kernel over work items, split into groups of at most
// cfg.GroupSize threads. It returns only when every group has finished,
// which is the barrier successive launches rely on.
func launch(cfg tvm.Config, work int, f tvm.RangeFunc) {
	if work == 0 {
		return
	}
	if cfg.Synchronous {
		sequential.Range(0, work, cfg.Groups(work), f)
		return
	}
	parallel.Range(0, work, cfg.Groups(work), f)
}

// launchAnd is launch for predicates, early-terminating in the
// parallel case.
func launchAnd(cfg tvm.Config, work int, f tvm.RangePredicate) bool {
	if work == 0 {
		return true
	}
	if cfg.Synchronous {
		return sequential.RangeAnd(0, work, cfg.Groups(work), f)
	}
	return speculative.RangeAnd(0, work, cfg.Groups(work), f)
}

// launchReduceInt is launch for int reductions.
func launchReduceInt(cfg tvm.Config, work int, reduce tvm.RangeReducer, pair tvm.PairReducer) int {
	if cfg.Synchronous {
		return sequential.RangeReduceInt(0, work, cfg.Groups(work), reduce, pair)
	}
	return parallel.RangeReduceInt(0, work, cfg.Groups(work), reduce, pair)
}

// emitLeft reports whether the left element wins a merge comparison.
// Ties go to the left, so runs that start earlier on the axis keep
// their elements in front and the sort stays stable within a segment.
func emitLeft[T tensor.Element](order Order, left, right T) bool {
	if order == Descending {
		return right <= left
	}
	return left <= right
}

// outOfOrder reports whether an adjacent pair must be exchanged by the
// transposition sort. Equal values are never exchanged.
func outOfOrder[T tensor.Element](order Order, left, right T) bool {
	if order == Descending {
		return left < right
	}
	return left > right
}

// prepare validates everything the engines assume and resolves the
// axis. All configuration errors surface here, before any launch.
func prepare[T tensor.Element](cfg tvm.Config, data []T, shape tensor.Shape, axis int) (tensor.Layout, int, error) {
	if err := cfg.Check(); err != nil {
		return tensor.Layout{}, 0, err
	}
	if err := shape.Check(); err != nil {
		return tensor.Layout{}, 0, err
	}
	norm, err := tensor.NormalizeAxis(axis, shape.Rank())
	if err != nil {
		return tensor.Layout{}, 0, err
	}
	if len(data) != shape.Elems() {
		return tensor.Layout{}, 0, errors.Errorf("buffer of %d elements for shape %v", len(data), shape)
	}
	lay, err := tensor.LayoutOf(shape, norm)
	if err != nil {
		return tensor.Layout{}, 0, err
	}
	return lay, norm, nil
}

// checkValidCount verifies the per-segment valid counts against the
// layout: one count per segment, each within [0, axis length].
func checkValidCount(lay tensor.Layout, validCount []int32) error {
	if len(validCount) != lay.Segments() {
		return errors.Errorf("%d valid counts for %d segments", len(validCount), lay.Segments())
	}
	for s, vc := range validCount {
		if vc < 0 || int(vc) > lay.AxisLen {
			return errors.Errorf("valid count %d of segment %d outside [0, %d]", vc, s, lay.AxisLen)
		}
	}
	return nil
}

// Sort sorts data, a row-major tensor of the given shape, along axis
// (negative values count from the last dimension) and returns the
// sorted values as a new buffer of the same shape. The input is left
// untouched.
func Sort[T tensor.Element](cfg tvm.Config, data []T, shape tensor.Shape, axis int, order Order) ([]T, error) {
	lay, norm, err := prepare(cfg, data, shape, axis)
	if err != nil {
		return nil, err
	}
	if pickStrategy(cfg, data, false) == strategyNative {
		return nativeSortValues(cfg, data, shape, norm, order)
	}
	values, _ := mergeSortAxis[T, int32](cfg, lay, order, data, false)
	return values, nil
}

// ArgSort sorts data along axis and returns, for every output slot,
// the axis position whose value landed there. The permutation is the
// one a stable sort produces: equal values keep their original order.
func ArgSort[T tensor.Element, I tensor.Index](cfg tvm.Config, data []T, shape tensor.Shape, axis int, order Order) ([]I, error) {
	lay, norm, err := prepare(cfg, data, shape, axis)
	if err != nil {
		return nil, err
	}
	if pickStrategy(cfg, data, false) == strategyNative {
		_, indices, err := nativeSortPair[T, I](cfg, data, shape, norm, order)
		return indices, err
	}
	_, indices := mergeSortAxis[T, I](cfg, lay, order, data, true)
	return indices, nil
}

// SortValidCount sorts, within every segment along axis, only the
// first validCount[s] elements; the remaining slots keep their input
// values. It returns the partially sorted values and an index buffer
// that starts as the identity permutation and tracks every exchange,
// both as new buffers of the input shape.
func SortValidCount[T tensor.Element, I tensor.Index](cfg tvm.Config, data []T, shape tensor.Shape, axis int, order Order, validCount []int32) ([]T, []I, error) {
	lay, _, err := prepare(cfg, data, shape, axis)
	if err != nil {
		return nil, nil, err
	}
	if err := checkValidCount(lay, validCount); err != nil {
		return nil, nil, err
	}
	values := make([]T, len(data))
	copy(values, data)
	indices := make([]I, len(data))
	segmentedSortAxis(cfg, lay, order, values, indices, validCount)
	return values, indices, nil
}

// ArgSortValidCount is SortValidCount returning only the indices.
func ArgSortValidCount[T tensor.Element, I tensor.Index](cfg tvm.Config, data []T, shape tensor.Shape, axis int, order Order, validCount []int32) ([]I, error) {
	_, indices, err := SortValidCount[T, I](cfg, data, shape, axis, order, validCount)
	return indices, err
}
