package ubon

import (
	"math/rand"

	"github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/nn"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/pkg/errors"
)

// GraphLevel reduces a batch of graphs to one score each:
// node-level scores (B, N, 1), mean over nodes (B, 1), then
// 1 → 64 → ReLU → 1 and a flatten to (B,).
type GraphLevel[T tensor.DType] struct {
	node *NodeLevel[T]
	head *nn.Sequential[T]
}

// NewGraphLevel creates the graph head on top of a node-level transform.
func NewGraphLevel[T tensor.DType](node *NodeLevel[T], rng *rand.Rand, backend *cpu.CPUBackend) *GraphLevel[T] {
	return &GraphLevel[T]{
		node: node,
		head: nn.NewMLP[T](rng, backend, 1, GraphHiddenWidth, 1),
	}
}

// Forward maps features (B, N) to graph scores (B,).
func (g *GraphLevel[T]) Forward(x *tensor.Tensor[T]) *tensor.Tensor[T] {
	pooled := g.node.Forward(x).MeanDim(1, false) // (B, 1)
	return g.head.Forward(pooled).Reshape(-1)
}

// Node returns the node-level transform.
func (g *GraphLevel[T]) Node() *NodeLevel[T] {
	return g.node
}

// Head returns the 1 → 64 → 1 graph head.
func (g *GraphLevel[T]) Head() *nn.Sequential[T] {
	return g.head
}

// Parameters returns the node scorer parameters followed by the head's.
func (g *GraphLevel[T]) Parameters() []*nn.Parameter[T] {
	return append(g.node.Parameters(), g.head.Parameters()...)
}

// StateDict uses "node.scorer.<i>.<param>" and "head.<i>.<param>" keys.
func (g *GraphLevel[T]) StateDict() map[string]*tensor.Tensor[T] {
	stateDict := nn.PrefixStateDict(g.node.StateDict(), "node")
	for key, t := range nn.PrefixStateDict(g.head.StateDict(), "head") {
		stateDict[key] = t
	}
	return stateDict
}

// LoadStateDict implements nn.Module. On error the previous parameters are
// restored, so a failed load never leaves the node scorer and the head out
// of step.
func (g *GraphLevel[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	snapshot := nn.CloneStateDict(g.StateDict())
	if err := g.load(stateDict); err != nil {
		_ = g.load(snapshot)
		return err
	}
	return nil
}

func (g *GraphLevel[T]) load(stateDict map[string]*tensor.Tensor[T]) error {
	if err := g.node.LoadStateDict(nn.SubStateDict(stateDict, "node")); err != nil {
		return errors.Wrap(err, "node level")
	}
	if err := g.head.LoadStateDict(nn.SubStateDict(stateDict, "head")); err != nil {
		return errors.Wrap(err, "graph head")
	}
	return nil
}
