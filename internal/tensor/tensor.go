package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// Tensor is a dense, row-major tensor with element type T.
//
// Tensors returned by the operations in this package never alias their
// inputs, except for Data which exposes the backing slice.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y := x.Unsqueeze(-1) // shape (2, 2, 1)
type Tensor[T DType] struct {
	data  []T
	shape Shape
}

// Zeros creates a zero-filled tensor of the given shape.
func Zeros[T DType](shape Shape) *Tensor[T] {
	if err := shape.Validate(); err != nil {
		exceptions.Panicf("Zeros: %v", err)
	}
	return &Tensor[T]{
		data:  make([]T, shape.NumElements()),
		shape: shape.Clone(),
	}
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	t := &Tensor[T]{
		data:  make([]T, len(data)),
		shape: shape.Clone(),
	}
	copy(t.data, data)
	return t, nil
}

// FromRows creates a 2D tensor (len(rows), len(rows[0])) from a slice of rows.
// All rows must have the same length.
func FromRows[T DType](rows [][]T) (*Tensor[T], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("FromRows: no rows given")
	}
	cols := len(rows[0])
	flat := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d columns, expected %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return FromSlice(flat, Shape{len(rows), cols})
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.shape.Clone()
}

// Dim returns the size of dimension dim (negative values count from the end).
func (t *Tensor[T]) Dim(dim int) int {
	d := normalizeDim(dim, len(t.shape))
	if d < 0 {
		exceptions.Panicf("Dim: dimension %d out of range for shape %v", dim, t.shape)
	}
	return t.shape[d]
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return DataTypeOf[T]()
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// Data returns the backing slice (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	out := &Tensor[T]{
		data:  make([]T, len(t.data)),
		shape: t.shape.Clone(),
	}
	copy(out.data, t.data)
	return out
}

// At returns the element at the given indices.
func (t *Tensor[T]) At(indices ...int) T {
	return t.data[t.offset("At", indices)]
}

// Set sets the element at the given indices.
func (t *Tensor[T]) Set(value T, indices ...int) {
	t.data[t.offset("Set", indices)] = value
}

func (t *Tensor[T]) offset(op string, indices []int) int {
	if len(indices) != len(t.shape) {
		exceptions.Panicf("%s: expected %d indices, got %d", op, len(t.shape), len(indices))
	}
	idx := 0
	stride := 1
	for i := len(indices) - 1; i >= 0; i-- {
		if indices[i] < 0 || indices[i] >= t.shape[i] {
			exceptions.Panicf("%s: index %d out of bounds for dimension %d (shape: %v)", op, indices[i], i, t.shape)
		}
		idx += indices[i] * stride
		stride *= t.shape[i]
	}
	return idx
}

// Row returns a copy of row i of a 2D tensor.
func (t *Tensor[T]) Row(i int) []T {
	if len(t.shape) != 2 {
		exceptions.Panicf("Row: expected 2D tensor, got shape %v", t.shape)
	}
	if i < 0 || i >= t.shape[0] {
		exceptions.Panicf("Row: row %d out of range for shape %v", i, t.shape)
	}
	cols := t.shape[1]
	row := make([]T, cols)
	copy(row, t.data[i*cols:(i+1)*cols])
	return row
}

// String implements fmt.Stringer.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.DType(), t.shape)
}
