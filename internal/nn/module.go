// Package nn implements the neural network building blocks of the UBoN ansatz.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named parameter tensors
//   - Linear: Fully connected layer
//   - ReLU: Rectified linear activation
//   - Sequential / NewMLP: Containers for stacking layers
//   - LogSumExp / SignedLogSumExp: Stable combination of log-domain values
//
// Parameters are explicit values held by the modules; there is no global
// registry and no gradient tracking. Training frameworks read and write them
// through Parameters, StateDict and LoadStateDict.
package nn

import (
	"github.com/born-ml/ubon/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all parameters
//   - StateDict / LoadStateDict: Export and import parameter values by name
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[float32](
//	    nn.NewLinear[float32](4, 128, rng, backend),
//	    nn.NewReLU[float32](backend),
//	    nn.NewLinear[float32](128, 1, rng, backend),
//	)
//
// Forward panics when the input shape does not match the module; callers
// that need an error convert the panic at their API boundary.
type Module[T tensor.DType] interface {
	// Forward computes the output of the module given an input tensor.
	// The input is never modified.
	Forward(input *tensor.Tensor[T]) *tensor.Tensor[T]

	// Parameters returns all parameters of this module, including those of
	// nested modules. Returns an empty slice for parameter-free modules.
	Parameters() []*Parameter[T]

	// StateDict returns a map of parameter names to tensors.
	StateDict() map[string]*tensor.Tensor[T]

	// LoadStateDict copies parameter values from a state dictionary.
	LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error
}
