package tensor

import (
	"github.com/pkg/errors"
)

// Layout describes how a tensor decomposes around a sort axis: Before
// is the product of the dimension sizes preceding the axis, AxisLen the
// size of the axis itself, and After the product of the dimension sizes
// following it. Each of the Before*After combinations addresses one
// independent segment of AxisLen elements.
type Layout struct {
	Before  int
	AxisLen int
	After   int
}

// LayoutOf computes the Layout of shape around the given axis. The axis
// must already be normalized to [0, rank); LayoutOf fails on a rank-0
// shape or an axis outside that interval.
func LayoutOf(shape Shape, axis int) (Layout, error) {
	if err := shape.Check(); err != nil {
		return Layout{}, err
	}
	if axis < 0 || axis >= shape.Rank() {
		return Layout{}, errors.Errorf("axis %d out of range for rank %d", axis, shape.Rank())
	}
	lay := Layout{Before: 1, AxisLen: shape[axis], After: 1}
	for i, dim := range shape {
		if i < axis {
			lay.Before *= dim
		} else if i > axis {
			lay.After *= dim
		}
	}
	return lay, nil
}

// Offset returns the linear offset of the element at axis position pos
// within the segment identified by (before, after).
func (l Layout) Offset(before, pos, after int) int {
	return (before*l.AxisLen+pos)*l.After + after
}

// Segments returns the number of independent segments along the axis.
func (l Layout) Segments() int {
	return l.Before * l.After
}

// SegmentBase returns the linear offset of axis position 0 of segment
// s, where segments are numbered s = before*After + after. Successive
// axis positions of the segment are After elements apart.
func (l Layout) SegmentBase(s int) int {
	return (s/l.After)*l.AxisLen*l.After + s%l.After
}

// Elems returns the total number of elements covered by the layout.
func (l Layout) Elems() int {
	return l.Before * l.AxisLen * l.After
}

// AxisPos returns the axis position of the element at linear offset
// off. It is the inverse of Offset with the segment coordinates
// discarded.
func (l Layout) AxisPos(off int) int {
	return off / l.After % l.AxisLen
}
