package sort

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/tensor"
)

func TestSortValidCountPrefix(t *testing.T) {
	data := []float32{9, 7, 8, 2, 2}
	shape := tensor.NewShape(5)
	for _, tc := range testConfigs {
		t.Run(tc.name, func(t *testing.T) {
			values, indices, err := SortValidCount[float32, int32](tc.cfg, data, shape, 0, Ascending, []int32{3})
			if err != nil {
				t.Fatal(err)
			}
			if want := []float32{7, 8, 9, 2, 2}; !reflect.DeepEqual(values, want) {
				t.Errorf("values = %v, want %v", values, want)
			}
			if want := []int32{1, 2, 0, 3, 4}; !reflect.DeepEqual(indices, want) {
				t.Errorf("indices = %v, want %v", indices, want)
			}
		})
	}
}

func TestSortValidCountBounds(t *testing.T) {
	data := []int64{4, 3, 2, 1}
	shape := tensor.NewShape(4)

	// A zero count leaves the segment entirely alone.
	values, indices, err := SortValidCount[int64, int32](tvm.Config{}, data, shape, 0, Ascending, []int32{0})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(values, data) {
		t.Errorf("values changed under zero valid count: %v", values)
	}
	if want := []int32{0, 1, 2, 3}; !reflect.DeepEqual(indices, want) {
		t.Errorf("indices = %v, want identity", indices)
	}

	// A full count sorts the whole axis.
	values, indices, err = SortValidCount[int64, int32](tvm.Config{}, data, shape, 0, Ascending, []int32{4})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{1, 2, 3, 4}; !reflect.DeepEqual(values, want) {
		t.Errorf("values = %v, want %v", values, want)
	}
	if want := []int32{3, 2, 1, 0}; !reflect.DeepEqual(indices, want) {
		t.Errorf("indices = %v, want %v", indices, want)
	}
}

func TestSortValidCountErrors(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	shape := tensor.NewShape(2, 2)
	bad := [][]int32{
		{1},       // one count for two segments
		{1, 2, 3}, // too many counts
		{-1, 0},   // negative
		{0, 3},    // beyond the axis length
	}
	for _, vc := range bad {
		if _, _, err := SortValidCount[float32, int32](tvm.Config{}, data, shape, 1, Ascending, vc); err == nil {
			t.Errorf("valid counts %v accepted", vc)
		}
	}
}

func TestSortValidCountMultiSegment(t *testing.T) {
	shapes := []struct {
		shape tensor.Shape
		axis  int
	}{
		{tensor.NewShape(4, 9), 1},
		{tensor.NewShape(3, 8, 2), 1},
		{tensor.NewShape(2, 5), -1},
	}
	rng := rand.New(rand.NewSource(11))
	for _, tc := range testConfigs {
		for _, c := range shapes {
			for _, order := range []Order{Ascending, Descending} {
				norm, err := tensor.NormalizeAxis(c.axis, c.shape.Rank())
				if err != nil {
					t.Fatal(err)
				}
				lay, err := tensor.LayoutOf(c.shape, norm)
				if err != nil {
					t.Fatal(err)
				}
				data := make([]float32, c.shape.Elems())
				for i := range data {
					data[i] = float32(rng.Intn(5))
				}
				validCount := make([]int32, lay.Segments())
				for s := range validCount {
					validCount[s] = int32(rng.Intn(lay.AxisLen + 1))
				}
				values, indices, err := SortValidCount[float32, int64](tc.cfg, data, c.shape, c.axis, order, validCount)
				if err != nil {
					t.Fatal(err)
				}
				for s := 0; s < lay.Segments(); s++ {
					in := segmentOf(data, lay, s)
					gotVals := segmentOf(values, lay, s)
					gotIdx := segmentOf(indices, lay, s)
					vc := int(validCount[s])

					// The transposition network never exchanges equal
					// neighbours, so the sorted prefix is the stable
					// permutation of the input prefix.
					wantIdx := refArgSort(in[:vc], order)
					for p := 0; p < vc; p++ {
						if int(gotIdx[p]) != wantIdx[p] || gotVals[p] != in[wantIdx[p]] {
							t.Fatalf("cfg=%s shape=%v order=%d segment=%d vc=%d: got %v/%v, want permutation %v of %v",
								tc.name, c.shape, order, s, vc, gotVals[:vc], gotIdx[:vc], wantIdx, in[:vc])
						}
					}
					// The tail beyond the valid count is untouched.
					for p := vc; p < lay.AxisLen; p++ {
						if gotVals[p] != in[p] || int(gotIdx[p]) != p {
							t.Fatalf("cfg=%s segment=%d: tail slot %d modified: value %v index %d",
								tc.name, s, p, gotVals[p], gotIdx[p])
						}
					}
				}
			}
		}
	}
}

func TestArgSortValidCount(t *testing.T) {
	data := []float32{9, 7, 8, 2, 2}
	indices, err := ArgSortValidCount[float32, int32](tvm.Config{}, data, tensor.NewShape(5), 0, Ascending, []int32{3})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int32{1, 2, 0, 3, 4}; !reflect.DeepEqual(indices, want) {
		t.Errorf("indices = %v, want %v", indices, want)
	}
}
