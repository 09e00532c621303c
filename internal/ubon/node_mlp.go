package ubon

import (
	"math/rand"

	"github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/nn"
	"github.com/born-ml/ubon/internal/tensor"
)

// NodeMLP scores one augmented node vector of length N+1:
//
//	N+1 → 128 → ReLU → 64 → ReLU → 32 → ReLU → 1
//
// It is a pure function of its input and parameters. Forward takes a
// (M, N+1) batch of node vectors and scores every row with the same weights.
type NodeMLP[T tensor.DType] struct {
	nodes int
	mlp   *nn.Sequential[T]
}

// NewNodeMLP creates the scorer for graphs of n nodes.
func NewNodeMLP[T tensor.DType](n int, rng *rand.Rand, backend *cpu.CPUBackend) *NodeMLP[T] {
	return &NodeMLP[T]{
		nodes: n,
		mlp:   nn.NewMLP[T](rng, backend, n+1, NodeHidden1, NodeHidden2, NodeHidden3, 1),
	}
}

// Forward maps (M, N+1) node vectors to (M, 1) scores.
func (m *NodeMLP[T]) Forward(input *tensor.Tensor[T]) *tensor.Tensor[T] {
	return m.mlp.Forward(input)
}

// Score evaluates a single node vector.
func (m *NodeMLP[T]) Score(vec []T) T {
	input, err := tensor.FromSlice(vec, tensor.Shape{1, len(vec)})
	if err != nil {
		panic(err)
	}
	return m.Forward(input).Data()[0]
}

// Parameters returns the weights and biases of the four layers.
func (m *NodeMLP[T]) Parameters() []*nn.Parameter[T] {
	return m.mlp.Parameters()
}

// StateDict uses the Sequential layout ("0.weight", "0.bias", "2.weight", ...).
func (m *NodeMLP[T]) StateDict() map[string]*tensor.Tensor[T] {
	return m.mlp.StateDict()
}

// LoadStateDict implements nn.Module.
func (m *NodeMLP[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	return m.mlp.LoadStateDict(stateDict)
}
