// Package tensor provides the descriptors the sorting engines operate
// on: shapes of dense N-dimensional arrays, axis normalization, the
// before/axis/after layout that addresses independent segments along a
// sort axis, and the transpose and slice helpers used by the operator
// facade.
//
// A tensor is represented as a flat buffer in row-major order together
// with a Shape; this package never owns the buffers, it only computes
// addresses into them.
package tensor

import (
	"github.com/pkg/errors"
)

// Element is the set of element types the sorting engines can compare.
type Element interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Index is the set of element types an index buffer can hold.
type Index interface {
	~int32 | ~int64
}

// Shape is the ordered sequence of dimension sizes of a tensor.
type Shape []int

// NewShape returns a Shape holding the given dimension sizes.
func NewShape(dims ...int) Shape {
	return Shape(dims)
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Elems returns the total number of elements, the product of all
// dimension sizes. The empty shape has one element by convention, but
// Check rejects rank-0 shapes before they reach an engine.
func (s Shape) Elems() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// Check reports whether the shape describes a usable dense tensor:
// rank at least 1 and every dimension size positive.
func (s Shape) Check() error {
	if len(s) == 0 {
		return errors.New("rank 0 shape")
	}
	for i, dim := range s {
		if dim <= 0 {
			return errors.Errorf("dimension %d has non-positive size %d", i, dim)
		}
	}
	return nil
}

// NormalizeAxis resolves a possibly negative axis against the given
// rank, so that -1 names the last dimension. The result is in
// [0, rank), or an error if the axis falls outside the tensor.
func NormalizeAxis(axis, rank int) (int, error) {
	if rank <= 0 {
		return 0, errors.Errorf("rank %d tensor has no axes", rank)
	}
	norm := axis
	if norm < 0 {
		norm += rank
	}
	if norm < 0 || norm >= rank {
		return 0, errors.Errorf("axis %d out of range for rank %d", axis, rank)
	}
	return norm, nil
}
