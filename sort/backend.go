package sort

import (
	"github.com/pkg/errors"

	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/nativesort"
	"github.com/hussam789/tvm/tensor"
)

// strategy names the engine a call resolved to. The choice is made
// once, from the configuration and the inputs, before any work is
// scheduled; there is no dynamic dispatch after that point.
type strategy int

const (
	// strategyMerge is the full-axis merge engine.
	strategyMerge strategy = iota
	// strategySegmented is the bounded per-segment transposition
	// engine, selected whenever a valid-count input is present.
	strategySegmented
	// strategyNative delegates to the external pre-optimized library.
	strategyNative
)

// pickStrategy resolves the engine for one call. The native library
// only handles plain float32 buffers; anything else, or an unavailable
// or unwanted library, falls back to the in-process engines.
func pickStrategy[T tensor.Element](cfg tvm.Config, data []T, hasValidCount bool) strategy {
	if hasValidCount {
		return strategySegmented
	}
	if cfg.PreferNative && nativesort.Available() {
		if _, ok := any(data).([]float32); ok {
			return strategyNative
		}
	}
	return strategyMerge
}

// toLastAxis reorders data so that the sort axis is the last dimension,
// which is the only layout the native library accepts. It returns the
// reordered buffer, its shape, and the permutation needed to undo the
// move (its own inverse).
func toLastAxis(data []float32, shape tensor.Shape, axis int) ([]float32, tensor.Shape, []int, error) {
	rank := shape.Rank()
	if axis == rank-1 {
		return data, shape, nil, nil
	}
	perm := tensor.AxisToLastPerm(rank, axis)
	moved, movedShape, err := tensor.Transpose(data, shape, perm)
	if err != nil {
		return nil, nil, nil, err
	}
	return moved, movedShape, perm, nil
}

// nativeSortValues sorts via the external library and returns the
// sorted values in the original axis order. Failures of the library
// are fatal for the call and propagated, never retried in-process.
func nativeSortValues[T tensor.Element](cfg tvm.Config, data []T, shape tensor.Shape, axis int, order Order) ([]T, error) {
	rows32 := any(data).([]float32)
	moved, movedShape, perm, err := toLastAxis(rows32, shape, axis)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(moved))
	copy(out, moved)
	rowLen := movedShape[movedShape.Rank()-1]
	if err := nativesort.SortRows(out, len(out)/rowLen, rowLen, order == Ascending); err != nil {
		return nil, errors.WithMessage(err, "native sort failed")
	}
	if perm != nil {
		if out, _, err = tensor.Transpose(out, movedShape, perm); err != nil {
			return nil, err
		}
	}
	return any(out).([]T), nil
}

// nativeSortPair is nativeSortValues with the sorting permutation
// tracked alongside the values.
func nativeSortPair[T tensor.Element, I tensor.Index](cfg tvm.Config, data []T, shape tensor.Shape, axis int, order Order) ([]T, []I, error) {
	rows32 := any(data).([]float32)
	moved, movedShape, perm, err := toLastAxis(rows32, shape, axis)
	if err != nil {
		return nil, nil, err
	}
	outVals := make([]float32, len(moved))
	copy(outVals, moved)
	outIdx32 := make([]int32, len(moved))
	rowLen := movedShape[movedShape.Rank()-1]
	if err := nativesort.ArgSortRows(outVals, outIdx32, len(outVals)/rowLen, rowLen, order == Ascending); err != nil {
		return nil, nil, errors.WithMessage(err, "native argsort failed")
	}
	outIdx := make([]I, len(outIdx32))
	for i, v := range outIdx32 {
		outIdx[i] = I(v)
	}
	if perm != nil {
		if outVals, _, err = tensor.Transpose(outVals, movedShape, perm); err != nil {
			return nil, nil, err
		}
		if outIdx, _, err = tensor.Transpose(outIdx, movedShape, perm); err != nil {
			return nil, nil, err
		}
	}
	return any(outVals).([]T), outIdx, nil
}
