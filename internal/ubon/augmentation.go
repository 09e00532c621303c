package ubon

import (
	"math/rand"

	"github.com/born-ml/ubon/internal/tensor"
	"github.com/pkg/errors"
)

// Augmentation is the fixed N×N structural encoding concatenated to every
// node's feature. Row i is the encoding of node i.
//
// An Augmentation owns its data: constructors copy their input and Tensor
// returns a copy, so the matrix seen by a model never changes.
type Augmentation[T tensor.DType] struct {
	matrix *tensor.Tensor[T]
}

// NewAugmentation copies a square (N, N) tensor.
func NewAugmentation[T tensor.DType](matrix *tensor.Tensor[T]) (*Augmentation[T], error) {
	shape := matrix.Shape()
	if len(shape) != 2 || shape[0] != shape[1] || shape[0] == 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "augmentation must be a non-empty square matrix, got shape %v", shape)
	}
	return &Augmentation[T]{matrix: matrix.Clone()}, nil
}

// AugmentationFromRows builds an augmentation from row slices.
func AugmentationFromRows[T tensor.DType](rows [][]T) (*Augmentation[T], error) {
	matrix, err := tensor.FromRows(rows)
	if err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "augmentation: %v", err)
	}
	return NewAugmentation(matrix)
}

// IdentityAugmentation encodes each node by its one-hot index.
func IdentityAugmentation[T tensor.DType](n int) *Augmentation[T] {
	matrix := tensor.Zeros[T](tensor.Shape{n, n})
	for i := 0; i < n; i++ {
		matrix.Set(1, i, i)
	}
	return &Augmentation[T]{matrix: matrix}
}

// RandomAugmentation draws every entry uniformly from [-1, 1).
func RandomAugmentation[T tensor.DType](n int, rng *rand.Rand) *Augmentation[T] {
	matrix := tensor.Zeros[T](tensor.Shape{n, n})
	data := matrix.Data()
	for i := range data {
		data[i] = T(2*rng.Float64() - 1)
	}
	return &Augmentation[T]{matrix: matrix}
}

// Nodes returns N.
func (a *Augmentation[T]) Nodes() int {
	return a.matrix.Dim(0)
}

// Tensor returns a copy of the (N, N) matrix.
func (a *Augmentation[T]) Tensor() *tensor.Tensor[T] {
	return a.matrix.Clone()
}

// Row returns a copy of the encoding of node i.
func (a *Augmentation[T]) Row(i int) []T {
	return a.matrix.Row(i)
}

// PermutationInvariant reports whether relabelling nodes by perm leaves the
// node-level transform equivariant, i.e. whether row i equals row perm[i]
// for every node. perm[i] is the old index of the node placed at i.
//
// Only then does permuting the features permute the per-node scores the
// same way; otherwise node order is part of what the model sees.
func (a *Augmentation[T]) PermutationInvariant(perm []int) bool {
	n := a.Nodes()
	if len(perm) != n {
		return false
	}
	data := a.matrix.Data()
	for i, p := range perm {
		if p < 0 || p >= n {
			return false
		}
		for j := 0; j < n; j++ {
			if data[i*n+j] != data[p*n+j] {
				return false
			}
		}
	}
	return true
}
