package ubon

import (
	"github.com/born-ml/ubon/internal/nn"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/gomlx/exceptions"
)

// NodeLevel scores every node of every graph with one shared NodeMLP.
//
// For features x of shape (B, N) each node i of graph b is described by
// [x[b,i], aug[i,0], ..., aug[i,N-1]]. The B·N vectors are stacked into a
// single (B·N, N+1) matrix, so each layer runs as one GEMM and no node or
// graph gets weights of its own.
type NodeLevel[T tensor.DType] struct {
	aug    *Augmentation[T]
	scorer *NodeMLP[T]
}

// NewNodeLevel combines an augmentation and a scorer built for the same N.
func NewNodeLevel[T tensor.DType](aug *Augmentation[T], scorer *NodeMLP[T]) *NodeLevel[T] {
	if aug.Nodes() != scorer.nodes {
		exceptions.Panicf("NodeLevel: augmentation has %d nodes, scorer expects %d", aug.Nodes(), scorer.nodes)
	}
	return &NodeLevel[T]{aug: aug, scorer: scorer}
}

// Augment builds the (B, N, N+1) augmented input of features x (B, N).
func (l *NodeLevel[T]) Augment(x *tensor.Tensor[T]) *tensor.Tensor[T] {
	n := l.aug.Nodes()
	shape := x.Shape()
	if len(shape) != 2 || shape[1] != n {
		exceptions.Panicf("NodeLevel: expected features (batch, %d), got shape %v", n, shape)
	}
	batch := shape[0]
	broadcast := l.aug.matrix.Expand(tensor.Shape{batch, n, n})
	return tensor.Cat([]*tensor.Tensor[T]{x.Unsqueeze(-1), broadcast}, -1)
}

// Forward maps features (B, N) to per-node scores (B, N, 1).
func (l *NodeLevel[T]) Forward(x *tensor.Tensor[T]) *tensor.Tensor[T] {
	augmented := l.Augment(x)
	batch, n := augmented.Dim(0), augmented.Dim(1)
	scores := l.scorer.Forward(augmented.Reshape(batch*n, n+1))
	return scores.Reshape(batch, n, 1)
}

// Scorer returns the shared per-node scorer.
func (l *NodeLevel[T]) Scorer() *NodeMLP[T] {
	return l.scorer
}

// Parameters implements nn.Module.
func (l *NodeLevel[T]) Parameters() []*nn.Parameter[T] {
	return l.scorer.Parameters()
}

// StateDict prefixes the scorer's entries with "scorer.".
func (l *NodeLevel[T]) StateDict() map[string]*tensor.Tensor[T] {
	return nn.PrefixStateDict(l.scorer.StateDict(), "scorer")
}

// LoadStateDict implements nn.Module.
func (l *NodeLevel[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	return l.scorer.LoadStateDict(nn.SubStateDict(stateDict, "scorer"))
}
