package nn

import (
	"github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Example:
//
//	relu := nn.NewReLU[float32](backend)
//	output := relu.Forward(input)  // All negative values become 0
type ReLU[T tensor.DType] struct {
	backend *cpu.CPUBackend
}

// NewReLU creates a new ReLU activation module.
func NewReLU[T tensor.DType](backend *cpu.CPUBackend) *ReLU[T] {
	return &ReLU[T]{backend: backend}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[T]) Forward(input *tensor.Tensor[T]) *tensor.Tensor[T] {
	return cpu.ReLU(r.backend, input.Clone())
}

// Parameters returns an empty slice (ReLU has no parameters).
func (r *ReLU[T]) Parameters() []*Parameter[T] {
	return nil
}

// StateDict returns an empty map.
func (r *ReLU[T]) StateDict() map[string]*tensor.Tensor[T] {
	return map[string]*tensor.Tensor[T]{}
}

// LoadStateDict is a no-op.
func (r *ReLU[T]) LoadStateDict(map[string]*tensor.Tensor[T]) error {
	return nil
}
