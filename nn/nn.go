// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/nn"
	"github.com/born-ml/ubon/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[T tensor.DType] = nn.Module[T]

// Parameter represents a named parameter tensor of a module.
type Parameter[T tensor.DType] = nn.Parameter[T]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[T tensor.DType](name string, t *tensor.Tensor[T]) *Parameter[T] {
	return nn.NewParameter(name, t)
}

// CountParameters returns the number of scalars held by params.
func CountParameters[T tensor.DType](params []*Parameter[T]) int {
	return nn.CountParameters(params)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[T tensor.DType] = nn.Linear[T]

// NewLinear creates a new linear layer with Xavier initialization drawn from rng.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear[float32](5, 128, rand.New(rand.NewSource(1)), backend)
func NewLinear[T tensor.DType](inFeatures, outFeatures int, rng *rand.Rand, backend *cpu.CPUBackend) *Linear[T] {
	return nn.NewLinear[T](inFeatures, outFeatures, rng, backend)
}

// Activations

// ReLU represents the Rectified Linear Unit activation.
type ReLU[T tensor.DType] = nn.ReLU[T]

// NewReLU creates a new ReLU activation.
func NewReLU[T tensor.DType](backend *cpu.CPUBackend) *ReLU[T] {
	return nn.NewReLU[T](backend)
}

// Containers

// Sequential chains modules, feeding each output into the next module.
type Sequential[T tensor.DType] = nn.Sequential[T]

// NewSequential creates a Sequential container.
func NewSequential[T tensor.DType](modules ...Module[T]) *Sequential[T] {
	return nn.NewSequential(modules...)
}

// NewMLP creates Linear layers between consecutive widths with a ReLU after
// every layer but the last.
func NewMLP[T tensor.DType](rng *rand.Rand, backend *cpu.CPUBackend, widths ...int) *Sequential[T] {
	return nn.NewMLP[T](rng, backend, widths...)
}

// Initialization

// Xavier returns a tensor drawn from the Glorot uniform distribution.
func Xavier[T tensor.DType](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor[T] {
	return nn.Xavier[T](fanIn, fanOut, shape, rng)
}

// Zeros returns a zero-filled tensor.
func Zeros[T tensor.DType](shape tensor.Shape) *tensor.Tensor[T] {
	return nn.Zeros[T](shape)
}

// Log-sum-exp

// ZeroLogMagnitude is the real part SignedLogSumExp returns for an exactly
// zero sum.
const ZeroLogMagnitude = nn.ZeroLogMagnitude

// LogSumExp returns log(exp(a) + exp(b)) element-wise.
func LogSumExp[T tensor.DType](a, b *tensor.Tensor[T]) *tensor.Tensor[T] {
	return nn.LogSumExp(a, b)
}

// SignedLogSumExp returns log(Σ wᵢ·exp(tᵢ)) in the complex domain.
func SignedLogSumExp(terms []complex128, weights []float64) complex128 {
	return nn.SignedLogSumExp(terms, weights)
}

// PairLogSumExp returns log(wa·exp(a) + wb·exp(b)) element-wise as complex128.
func PairLogSumExp[T tensor.DType](a, b *tensor.Tensor[T], wa, wb float64) []complex128 {
	return nn.PairLogSumExp(a, b, wa, wb)
}
