package sort

import (
	"reflect"
	"testing"

	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/tensor"
)

func TestTopKLargest(t *testing.T) {
	data := []float32{1, 5, 3}
	shape := tensor.NewShape(3)
	for _, tc := range testConfigs {
		t.Run(tc.name, func(t *testing.T) {
			values, indices, outShape, err := TopK[float32, int32](tc.cfg, data, shape, 0, 2, RetBoth, Descending)
			if err != nil {
				t.Fatal(err)
			}
			if want := []float32{5, 3}; !reflect.DeepEqual(values, want) {
				t.Errorf("values = %v, want %v", values, want)
			}
			if want := []int32{1, 2}; !reflect.DeepEqual(indices, want) {
				t.Errorf("indices = %v, want %v", indices, want)
			}
			if want := tensor.NewShape(2); !reflect.DeepEqual(outShape, want) {
				t.Errorf("shape = %v, want %v", outShape, want)
			}
		})
	}
}

func TestTopKFullAxis(t *testing.T) {
	data := []float32{4, 2, 6, 1}
	shape := tensor.NewShape(4)
	// k below 1 keeps the whole sorted axis, as does any k at or above
	// the axis length.
	for _, k := range []int{0, -3, 4, 9} {
		values, indices, outShape, err := TopK[float32, int64](tvm.Config{}, data, shape, 0, k, RetBoth, Ascending)
		if err != nil {
			t.Fatal(err)
		}
		if want := []float32{1, 2, 4, 6}; !reflect.DeepEqual(values, want) {
			t.Errorf("k=%d: values = %v, want %v", k, values, want)
		}
		if want := []int64{3, 1, 0, 2}; !reflect.DeepEqual(indices, want) {
			t.Errorf("k=%d: indices = %v, want %v", k, indices, want)
		}
		if !reflect.DeepEqual(outShape, shape) {
			t.Errorf("k=%d: shape = %v, want %v", k, outShape, shape)
		}
	}
}

func TestTopKRetTypes(t *testing.T) {
	data := []int32{7, 1, 9, 3, 2, 8}
	shape := tensor.NewShape(2, 3)

	values, indices, _, err := TopK[int32, int32](tvm.Config{}, data, shape, 1, 2, RetValues, Descending)
	if err != nil {
		t.Fatal(err)
	}
	if indices != nil {
		t.Errorf("RetValues returned indices %v", indices)
	}
	if want := []int32{9, 7, 8, 3}; !reflect.DeepEqual(values, want) {
		t.Errorf("values = %v, want %v", values, want)
	}

	values, indices, _, err = TopK[int32, int32](tvm.Config{}, data, shape, 1, 2, RetIndices, Descending)
	if err != nil {
		t.Fatal(err)
	}
	if values != nil {
		t.Errorf("RetIndices returned values %v", values)
	}
	if want := []int32{2, 0, 2, 0}; !reflect.DeepEqual(indices, want) {
		t.Errorf("indices = %v, want %v", indices, want)
	}
}

func TestTopKNegativeAxis(t *testing.T) {
	data := []float64{3, 1, 2, 6, 5, 4}
	shape := tensor.NewShape(2, 3)
	values, _, outShape, err := TopK[float64, int32](tvm.Config{}, data, shape, -1, 1, RetValues, Ascending)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 4}; !reflect.DeepEqual(values, want) {
		t.Errorf("values = %v, want %v", values, want)
	}
	if want := tensor.NewShape(2, 1); !reflect.DeepEqual(outShape, want) {
		t.Errorf("shape = %v, want %v", outShape, want)
	}
}

func TestTopKInvalidRetType(t *testing.T) {
	data := []float32{1, 2}
	if _, _, _, err := TopK[float32, int32](tvm.Config{}, data, tensor.NewShape(2), 0, 1, RetType(7), Ascending); err == nil {
		t.Error("invalid ret type accepted")
	}
}

func TestParseRetType(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want RetType
	}{
		{"both", RetBoth},
		{"values", RetValues},
		{"indices", RetIndices},
	} {
		got, err := ParseRetType(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("ParseRetType(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
	if _, err := ParseRetType("keys"); err == nil {
		t.Error("ParseRetType accepted an unknown string")
	}
}
