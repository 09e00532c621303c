package nn

import (
	"github.com/born-ml/ubon/internal/tensor"
)

// Parameter represents a learnable tensor of a neural network.
//
// The model only reads parameters; an external trainer may update them in
// place through Tensor().Data() or replace them with LoadStateDict.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[T tensor.DType] struct {
	name   string            // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[T] // The parameter tensor
}

// NewParameter creates a new parameter.
//
// Parameters:
//   - name: Descriptive name for this parameter (e.g., "weight")
//   - t: The initialized parameter tensor
//
// Returns a new Parameter.
func NewParameter[T tensor.DType](name string, t *tensor.Tensor[T]) *Parameter[T] {
	return &Parameter[T]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[T]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[T]) Tensor() *tensor.Tensor[T] {
	return p.tensor
}

// NumElements returns the number of scalar values held by the parameter.
func (p *Parameter[T]) NumElements() int {
	return p.tensor.NumElements()
}

// CountParameters returns the total number of scalars across params.
func CountParameters[T tensor.DType](params []*Parameter[T]) int {
	total := 0
	for _, p := range params {
		total += p.NumElements()
	}
	return total
}
