// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ubon

import (
	"math/rand"

	"github.com/born-ml/ubon/internal/tensor"
	"github.com/born-ml/ubon/internal/ubon"
)

// Errors reported by the models.
var (
	ErrInvalidConfig = ubon.ErrInvalidConfig
	ErrShapeMismatch = ubon.ErrShapeMismatch
)

// Config holds the construction-time parameters of a model.
type Config = ubon.Config

// DefaultConfig returns a float32, trivial-irrep configuration for n nodes.
func DefaultConfig(n int) Config {
	return ubon.DefaultConfig(n)
}

// SymUBoN is the symmetrized ansatz.
type SymUBoN[T tensor.DType] = ubon.SymUBoN[T]

// New builds a model with Xavier-initialized weights drawn from cfg.Seed.
func New[T tensor.DType](cfg Config, aug *Augmentation[T]) (*SymUBoN[T], error) {
	return ubon.New(cfg, aug)
}

// Evaluate builds a model in the precision of cfg.DType and evaluates one
// graph per feature row.
func Evaluate(cfg Config, augmentation, features [][]float64) (LogAmplitude, error) {
	return ubon.Evaluate(cfg, augmentation, features)
}

// LogAmplitude holds log ψ per graph of a batch.
type LogAmplitude = ubon.LogAmplitude

// Transforms

// NodeMLP is the shared per-node scorer.
type NodeMLP[T tensor.DType] = ubon.NodeMLP[T]

// NodeLevel scores every node of every graph.
type NodeLevel[T tensor.DType] = ubon.NodeLevel[T]

// GraphLevel reduces node scores to one score per graph.
type GraphLevel[T tensor.DType] = ubon.GraphLevel[T]

// Augmentation

// Augmentation is the immutable N×N structural encoding of the nodes.
type Augmentation[T tensor.DType] = ubon.Augmentation[T]

// NewAugmentation copies a square tensor.
func NewAugmentation[T tensor.DType](matrix *tensor.Tensor[T]) (*Augmentation[T], error) {
	return ubon.NewAugmentation(matrix)
}

// AugmentationFromRows builds an augmentation from row slices.
func AugmentationFromRows[T tensor.DType](rows [][]T) (*Augmentation[T], error) {
	return ubon.AugmentationFromRows(rows)
}

// IdentityAugmentation encodes each node by its one-hot index.
func IdentityAugmentation[T tensor.DType](n int) *Augmentation[T] {
	return ubon.IdentityAugmentation[T](n)
}

// RandomAugmentation draws every entry uniformly from [-1, 1).
func RandomAugmentation[T tensor.DType](n int, rng *rand.Rand) *Augmentation[T] {
	return ubon.RandomAugmentation[T](n, rng)
}
