package tensor

import (
	"github.com/pkg/errors"
)

// AxisToLastPerm returns the permutation that exchanges the given axis
// with the last one and leaves every other dimension in place. Applying
// it twice restores the original order, so the same permutation both
// prepares a tensor for a last-axis engine and undoes that preparation.
func AxisToLastPerm(rank, axis int) []int {
	perm := make([]int, rank)
	for i := range perm {
		perm[i] = i
	}
	perm[axis], perm[rank-1] = perm[rank-1], perm[axis]
	return perm
}

// Strides returns the row-major strides of the shape.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// Transpose rearranges src, a row-major buffer of the given shape,
// according to perm: dimension i of the result is dimension perm[i] of
// the input. It returns the transposed buffer and its shape.
func Transpose[T any](src []T, shape Shape, perm []int) ([]T, Shape, error) {
	if err := shape.Check(); err != nil {
		return nil, nil, err
	}
	if len(perm) != shape.Rank() {
		return nil, nil, errors.Errorf("permutation of length %d for rank %d", len(perm), shape.Rank())
	}
	seen := make([]bool, shape.Rank())
	for _, p := range perm {
		if p < 0 || p >= shape.Rank() || seen[p] {
			return nil, nil, errors.Errorf("invalid permutation %v", perm)
		}
		seen[p] = true
	}
	if len(src) != shape.Elems() {
		return nil, nil, errors.Errorf("buffer of %d elements for shape %v", len(src), shape)
	}

	outShape := make(Shape, shape.Rank())
	for i, p := range perm {
		outShape[i] = shape[p]
	}
	srcStrides := shape.Strides()
	dst := make([]T, len(src))
	coord := make([]int, shape.Rank())
	for di := range dst {
		srcOff := 0
		for i := range coord {
			srcOff += coord[i] * srcStrides[perm[i]]
		}
		dst[di] = src[srcOff]
		for i := len(coord) - 1; i >= 0; i-- {
			coord[i]++
			if coord[i] < outShape[i] {
				break
			}
			coord[i] = 0
		}
	}
	return dst, outShape, nil
}

// SliceAxis keeps the first k positions along the given axis and drops
// the rest, returning the sliced buffer and its shape. The axis must be
// normalized and 1 <= k <= shape[axis].
func SliceAxis[T any](src []T, shape Shape, axis, k int) ([]T, Shape, error) {
	lay, err := LayoutOf(shape, axis)
	if err != nil {
		return nil, nil, err
	}
	if k < 1 || k > lay.AxisLen {
		return nil, nil, errors.Errorf("slice of %d elements from axis of length %d", k, lay.AxisLen)
	}
	if len(src) != lay.Elems() {
		return nil, nil, errors.Errorf("buffer of %d elements for shape %v", len(src), shape)
	}

	outShape := shape.Clone()
	outShape[axis] = k
	dst := make([]T, lay.Before*k*lay.After)
	for b := 0; b < lay.Before; b++ {
		srcBase := b * lay.AxisLen * lay.After
		dstBase := b * k * lay.After
		copy(dst[dstBase:dstBase+k*lay.After], src[srcBase:srcBase+k*lay.After])
	}
	return dst, outShape, nil
}
