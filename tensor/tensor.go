// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ubon/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types: float32 and float64.
type DType = tensor.DType

// DataType represents the element type of a tensor at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major tensor with element type T.
type Tensor[T DType] = tensor.Tensor[T]

// Zeros creates a zero-filled tensor.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T DType](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// FromSlice creates a tensor from a copy of data.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// FromRows creates a 2D tensor from equally long rows.
func FromRows[T DType](rows [][]T) (*Tensor[T], error) {
	return tensor.FromRows(rows)
}

// Cat concatenates tensors along dimension dim.
func Cat[T DType](tensors []*Tensor[T], dim int) *Tensor[T] {
	return tensor.Cat(tensors, dim)
}

// Cast converts a tensor to element type U.
func Cast[U, T DType](t *Tensor[T]) *Tensor[U] {
	return tensor.Cast[U](t)
}

// ParseDataType parses "float32"/"f32" or "float64"/"f64".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T DType]() DataType {
	return tensor.DataTypeOf[T]()
}
