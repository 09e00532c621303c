package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	backend := cpu.New()
//	rng := rand.New(rand.NewSource(42))
//	layer := nn.NewLinear[float32](5, 128, rng, backend)
//	output := layer.Forward(input) // [batch, 5] -> [batch, 128]
type Linear[T tensor.DType] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[T] // [out_features, in_features]
	bias        *Parameter[T] // [out_features]
	backend     *cpu.CPUBackend
}

// NewLinear creates a new Linear layer.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - rng: Source of randomness for the weights
//   - backend: Backend running the matrix product
//
// Returns a new Linear layer.
func NewLinear[T tensor.DType](inFeatures, outFeatures int, rng *rand.Rand, backend *cpu.CPUBackend) *Linear[T] {
	if inFeatures <= 0 || outFeatures <= 0 {
		exceptions.Panicf("NewLinear: features must be positive, got in=%d out=%d", inFeatures, outFeatures)
	}
	weight := Xavier[T](inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng)
	bias := Zeros[T](tensor.Shape{outFeatures})

	return &Linear[T]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
		backend:     backend,
	}
}

// Forward computes the output of the linear layer.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
//
// All rows share the same weights: the whole batch is one GEMM call.
func (l *Linear[T]) Forward(input *tensor.Tensor[T]) *tensor.Tensor[T] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		exceptions.Panicf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape)
	}
	if inputShape[1] != l.inFeatures {
		exceptions.Panicf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1])
	}

	output := cpu.MatMulTransB(l.backend, input, l.weight.Tensor())
	return cpu.AddRowVector(l.backend, output, l.bias.Tensor())
}

// Parameters returns [weight, bias].
func (l *Linear[T]) Parameters() []*Parameter[T] {
	return []*Parameter[T]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[T]) Weight() *Parameter[T] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[T]) Bias() *Parameter[T] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[T]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[T]) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns a map of parameter names to tensors.
func (l *Linear[T]) StateDict() map[string]*tensor.Tensor[T] {
	return map[string]*tensor.Tensor[T]{
		"weight": l.weight.Tensor(),
		"bias":   l.bias.Tensor(),
	}
}

// LoadStateDict copies weight and bias from a state dictionary.
// Both entries are validated before anything is copied.
func (l *Linear[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	weight, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("missing weight in state dict")
	}
	expectedWeightShape := tensor.Shape{l.outFeatures, l.inFeatures}
	if !weight.Shape().Equal(expectedWeightShape) {
		return fmt.Errorf("weight shape mismatch: expected %v, got %v",
			expectedWeightShape, weight.Shape())
	}

	bias, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("missing bias in state dict")
	}
	expectedBiasShape := tensor.Shape{l.outFeatures}
	if !bias.Shape().Equal(expectedBiasShape) {
		return fmt.Errorf("bias shape mismatch: expected %v, got %v",
			expectedBiasShape, bias.Shape())
	}

	copy(l.weight.Tensor().Data(), weight.Data())
	copy(l.bias.Tensor().Data(), bias.Data())
	return nil
}
