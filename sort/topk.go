package sort

import (
	"github.com/pkg/errors"

	"github.com/hussam789/tvm"
	"github.com/hussam789/tvm/tensor"
)

// RetType selects which buffers a top-k call returns.
type RetType int

const (
	// RetBoth returns the top-k values and their indices.
	RetBoth RetType = iota
	// RetValues returns only the top-k values.
	RetValues
	// RetIndices returns only the top-k indices.
	RetIndices
)

func (r RetType) String() string {
	switch r {
	case RetBoth:
		return "both"
	case RetValues:
		return "values"
	case RetIndices:
		return "indices"
	}
	return "unknown"
}

// ParseRetType maps the operator-attribute strings "both", "values"
// and "indices" to their RetType.
func ParseRetType(s string) (RetType, error) {
	switch s {
	case "both":
		return RetBoth, nil
	case "values":
		return RetValues, nil
	case "indices":
		return RetIndices, nil
	}
	return 0, errors.Errorf("invalid ret type %q", s)
}

func (r RetType) check() error {
	if r != RetBoth && r != RetValues && r != RetIndices {
		return errors.Errorf("invalid ret type %d", int(r))
	}
	return nil
}

// TopK sorts data along axis and keeps the first k entries of the
// sorted order per segment, so with Descending it selects the k
// largest values. Any k below 1 keeps the entire sorted axis. The
// returned shape describes the value and index buffers; buffers not
// requested by ret are nil.
func TopK[T tensor.Element, I tensor.Index](cfg tvm.Config, data []T, shape tensor.Shape, axis, k int, ret RetType, order Order) ([]T, []I, tensor.Shape, error) {
	lay, norm, err := prepare(cfg, data, shape, axis)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := ret.check(); err != nil {
		return nil, nil, nil, err
	}

	var values []T
	var indices []I
	if pickStrategy(cfg, data, false) == strategyNative {
		if ret == RetValues {
			values, err = nativeSortValues(cfg, data, shape, norm, order)
		} else {
			values, indices, err = nativeSortPair[T, I](cfg, data, shape, norm, order)
		}
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		values, indices = mergeSortAxis[T, I](cfg, lay, order, data, ret != RetValues)
	}

	outShape := shape.Clone()
	if k >= 1 && k < lay.AxisLen {
		if values, outShape, err = tensor.SliceAxis(values, shape, norm, k); err != nil {
			return nil, nil, nil, err
		}
		if indices != nil {
			if indices, _, err = tensor.SliceAxis(indices, shape, norm, k); err != nil {
				return nil, nil, nil, err
			}
		}
	}
	switch ret {
	case RetValues:
		indices = nil
	case RetIndices:
		values = nil
	}
	return values, indices, outShape, nil
}
