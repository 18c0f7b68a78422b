package sort

import (
	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/tensor"
)

// The segmented engine sorts, in place, only the first validCount[s]
// elements of each segment with an odd-even transposition network.
// Pass k exchanges out-of-order neighbours at pair offsets 2t + k mod 2;
// a barrier (launch completion) separates adjacent passes because pass
// k+1 reads values pass k wrote. The network does O(validCount^2) work
// per segment, which is acceptable because validCount is a small,
// runtime-bounded prefix rather than the full axis.

// segmentedSortAxis sorts values in place along the layout's axis, one
// bounded prefix per segment, and fills indices with the axis position
// whose value ended up in each slot. Slots at or beyond a segment's
// valid count keep their input value and identity index.
func segmentedSortAxis[T tensor.Element, I tensor.Index](cfg tvm.Config, lay tensor.Layout, order Order, values []T, indices []I, validCount []int32) {
	// Identity initialization of the index buffer, one thread per
	// element, covering the whole axis including the unsorted tail.
	launch(cfg, lay.Elems(), func(low, high int) {
		for w := low; w < high; w++ {
			indices[w] = I(lay.AxisPos(w))
		}
	})

	// The host drives max(validCount) passes; segments with a smaller
	// count sit out the surplus passes, which preserves the
	// segment-dependent upper bound.
	maxValid := launchReduceInt(cfg, len(validCount),
		func(low, high int) int {
			m := 0
			for s := low; s < high; s++ {
				if int(validCount[s]) > m {
					m = int(validCount[s])
				}
			}
			return m
		},
		func(x, y int) int {
			if x > y {
				return x
			}
			return y
		},
	)

	pairs := (lay.AxisLen + 1) / 2
	after := lay.After
	for k := 0; k < maxValid; k++ {
		launch(cfg, lay.Segments()*pairs, func(low, high int) {
			for w := low; w < high; w++ {
				seg := w / pairs
				vc := int(validCount[seg])
				if k >= vc {
					continue
				}
				p := 2*(w%pairs) + k%2
				if p+1 >= vc {
					continue
				}
				off := lay.SegmentBase(seg) + p*after
				if outOfOrder(order, values[off], values[off+after]) {
					values[off], values[off+after] = values[off+after], values[off]
					indices[off], indices[off+after] = indices[off+after], indices[off]
				}
			}
		})
	}
}
