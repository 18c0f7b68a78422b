package sort

import (
	"math/bits"
	"sync/atomic"

	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/tensor"
)

// The merge engine sorts every segment of an axis with a bottom-up
// merge sort, iterating from the host: round r merges already-sorted
// runs of length 2^r into runs of length 2^(r+1), one thread per
// output run, until a single run covers the axis. Values move between
// a pair of equal-size ping-pong buffers; which buffer is the source
// of a round is a pure function of the round parity (A on even rounds,
// B on odd), never an aliasing decision carried in mutable state.
// Every output cell of a round is written by exactly one thread, and
// the completion of each launch orders round r's writes before round
// r+1's reads.

// mergeRounds is the number of doubling rounds needed for an axis of
// length n, ceil(log2(n)); zero when n <= 1.
func mergeRounds(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// mergeSortAxis sorts data along the layout's axis and returns a new
// sorted value buffer. With trackIndex set it also returns the
// permutation buffer: for every output slot, the axis position whose
// value now resides there.
func mergeSortAxis[T tensor.Element, I tensor.Index](cfg tvm.Config, lay tensor.Layout, order Order, data []T, trackIndex bool) ([]T, []I) {
	n := lay.Elems()
	bufA := make([]T, n)
	bufB := make([]T, n)
	var idxA, idxB []I
	if trackIndex {
		idxA = make([]I, n)
		idxB = make([]I, n)
	}

	// Seed pass: one thread per element copies the source value into
	// buffer A and records its own axis position as the initial index.
	launch(cfg, n, func(low, high int) {
		for w := low; w < high; w++ {
			bufA[w] = data[w]
			if trackIndex {
				idxA[w] = I(lay.AxisPos(w))
			}
		}
	})

	// The pre-check scans data, not bufA: its early-terminating launch
	// can leave batches running after it returns, and the rounds below
	// write the ping-pong buffers while those batches are still reading.
	// No round ever writes data, so the stragglers race with nothing.
	rounds := mergeRounds(lay.AxisLen)
	if rounds == 0 || axisSorted(cfg, lay, order, data) {
		// Already ordered, including the axisLen <= 1 case. The seeded
		// buffer equals what the full rounds would produce: a stable
		// sort maps sorted input to itself and to the identity
		// permutation.
		return bufA, idxA
	}

	for r := 0; r < rounds; r++ {
		width := 2 << r
		runs := (lay.AxisLen + width - 1) / width
		src, dst := bufA, bufB
		srcIdx, dstIdx := idxA, idxB
		if r%2 == 1 {
			src, dst = bufB, bufA
			srcIdx, dstIdx = idxB, idxA
		}
		work := lay.Segments() * runs
		launch(cfg, work, func(low, high int) {
			for w := low; w < high; w++ {
				base := lay.SegmentBase(w / runs)
				start := (w % runs) * width
				mergeRun(lay, order, src, dst, srcIdx, dstIdx, base, start, width, trackIndex)
			}
		})
	}

	if rounds%2 == 1 {
		// The sorted result ended up in buffer B; copy it back so that
		// A is always the buffer handed out.
		launch(cfg, n, func(low, high int) {
			copy(bufA[low:high], bufB[low:high])
			if trackIndex {
				copy(idxA[low:high], idxB[low:high])
			}
		})
	}
	return bufA, idxA
}

// mergeRun merges the two sorted halves of one run, [start, middle) and
// [middle, end), from src into the same index range of dst. Both
// bounds clamp to the axis length, which handles the degenerate and
// partial runs at the end of the axis. Ties take the left half first.
func mergeRun[T tensor.Element, I tensor.Index](lay tensor.Layout, order Order, src, dst []T, srcIdx, dstIdx []I, base, start, width int, trackIndex bool) {
	if start >= lay.AxisLen {
		return
	}
	middle := start + width/2
	if middle > lay.AxisLen {
		middle = lay.AxisLen
	}
	end := start + width
	if end > lay.AxisLen {
		end = lay.AxisLen
	}
	after := lay.After
	i, j := start, middle
	for k := start; k < end; k++ {
		takeLeft := i < middle && (j >= end || emitLeft(order, src[base+i*after], src[base+j*after]))
		if takeLeft {
			dst[base+k*after] = src[base+i*after]
			if trackIndex {
				dstIdx[base+k*after] = srcIdx[base+i*after]
			}
			i++
		} else {
			dst[base+k*after] = src[base+j*after]
			if trackIndex {
				dstIdx[base+k*after] = srcIdx[base+j*after]
			}
			j++
		}
	}
}

// axisSorted reports whether every segment of buf is already ordered
// for the requested direction. It terminates early on the first
// inversion found; batches still running at that point poll the done
// flag and stop without scanning further, so they hold on to buf only
// briefly after the return. The caller must not write buf while they
// drain. Unorderable values compare false and fail the check, so the
// engine never skips rounds on their account.
func axisSorted[T tensor.Element](cfg tvm.Config, lay tensor.Layout, order Order, buf []T) bool {
	var done int32
	defer atomic.StoreInt32(&done, 1)
	return launchAnd(cfg, lay.Segments(), func(low, high int) bool {
		for s := low; s < high; s++ {
			if atomic.LoadInt32(&done) != 0 {
				return false
			}
			base := lay.SegmentBase(s)
			for p := 1; p < lay.AxisLen; p++ {
				if p%1024 == 0 && atomic.LoadInt32(&done) != 0 {
					return false
				}
				if !emitLeft(order, buf[base+(p-1)*lay.After], buf[base+p*lay.After]) {
					return false
				}
			}
		}
		return true
	})
}
