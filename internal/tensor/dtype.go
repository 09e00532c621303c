// Package tensor provides the dense tensor type used by the UBoN modules.
package tensor

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// DType is a constraint for supported tensor element types.
//
// Only real floating point types are supported: node features, weights and
// the augmentation matrix are all real. Complex values appear only in the
// final log-amplitude, which is not a tensor.
type DType interface {
	constraints.Float
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType is the inverse of DataType.String.
func ParseDataType(name string) (DataType, error) {
	switch name {
	case "float32", "f32":
		return Float32, nil
	case "float64", "f64":
		return Float64, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q (only float32/float64 supported)", name)
	}
}

// DataTypeOf returns the runtime DataType of T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		// Named types over float32/float64 fall back on their precision.
		if isFloat32Sized[T]() {
			return Float32
		}
		return Float64
	}
}

// isFloat32Sized reports whether T loses precision at float32's mantissa width.
func isFloat32Sized[T DType]() bool {
	// 1 + 2^-30 is representable as float64 but rounds to 1 in float32.
	x := T(1) + T(1.0/(1<<30))
	return x == T(1)
}
