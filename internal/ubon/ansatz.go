package ubon

import (
	"math/rand"

	"github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/nn"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// SymUBoN is the symmetrized UBoN ansatz.
//
// The graph-level transform f is evaluated on x and on -x and the two
// branches are combined in the log domain:
//
//	trivial irrep:          log ψ(x) = log(exp f(x) + exp f(-x))
//	sign-alternating irrep: log ψ(x) = log(exp f(x) - exp f(-x))
//
// so ψ(-x) = ψ(x) or ψ(-x) = -ψ(x) respectively. The second form is taken
// in the complex domain: a negative combination has phase π.
//
// A SymUBoN only reads its parameters during Forward and is safe for
// concurrent use as long as nobody loads new parameters at the same time.
type SymUBoN[T tensor.DType] struct {
	cfg   Config
	aug   *Augmentation[T]
	graph *GraphLevel[T]
}

var (
	_ nn.Module[float32] = (*NodeMLP[float32])(nil)
	_ nn.Module[float32] = (*NodeLevel[float32])(nil)
	_ nn.Module[float32] = (*GraphLevel[float32])(nil)
)

// New builds a model with Xavier-initialized weights drawn from cfg.Seed.
//
// cfg.DType must match T and aug must be (cfg.Nodes, cfg.Nodes). The
// augmentation is kept as is; it is immutable.
func New[T tensor.DType](cfg Config, aug *Augmentation[T]) (*SymUBoN[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dt := tensor.DataTypeOf[T](); dt != cfg.DType {
		return nil, errors.Wrapf(ErrInvalidConfig, "config dtype %s does not match element type %s", cfg.DType, dt)
	}
	if aug == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "augmentation is required")
	}
	if aug.Nodes() != cfg.Nodes {
		return nil, errors.Wrapf(ErrShapeMismatch, "augmentation is %dx%d, model has %d nodes",
			aug.Nodes(), aug.Nodes(), cfg.Nodes)
	}

	backend := cpu.NewWithConfig(cfg.Parallel)
	rng := rand.New(rand.NewSource(cfg.Seed))
	node := NewNodeLevel(aug, NewNodeMLP[T](cfg.Nodes, rng, backend))
	m := &SymUBoN[T]{
		cfg:   cfg,
		aug:   aug,
		graph: NewGraphLevel(node, rng, backend),
	}
	klog.V(1).Infof("ubon: built %s model with %d nodes, %s irrep, %d parameters",
		cfg.DType, cfg.Nodes, m.irrep(), nn.CountParameters(m.Parameters()))
	return m, nil
}

func (m *SymUBoN[T]) irrep() string {
	if m.cfg.Trivial {
		return "trivial"
	}
	return "sign-alternating"
}

// Forward returns log ψ for features x of shape (B, N).
// B must be at least 1: tensors have no zero-sized dimensions.
func (m *SymUBoN[T]) Forward(x *tensor.Tensor[T]) (LogAmplitude, error) {
	outX, outInvX, err := m.Branches(x)
	if err != nil {
		return nil, err
	}
	return m.Combine(outX, outInvX)
}

// Branches returns the graph-level scores f(x) and f(-x), both (B,).
// The two evaluations run concurrently.
func (m *SymUBoN[T]) Branches(x *tensor.Tensor[T]) (*tensor.Tensor[T], *tensor.Tensor[T], error) {
	if x == nil {
		return nil, nil, errors.Wrap(ErrShapeMismatch, "nil features")
	}
	shape := x.Shape()
	if len(shape) != 2 || shape[1] != m.cfg.Nodes {
		return nil, nil, errors.Wrapf(ErrShapeMismatch, "expected features (batch, %d), got shape %v", m.cfg.Nodes, shape)
	}
	klog.V(2).Infof("ubon: forward batch=%d nodes=%d", shape[0], m.cfg.Nodes)

	var outX, outInvX *tensor.Tensor[T]
	var g errgroup.Group
	g.Go(func() error {
		return exceptions.TryCatch[error](func() { outX = m.graph.Forward(x) })
	})
	g.Go(func() error {
		return exceptions.TryCatch[error](func() { outInvX = m.graph.Forward(x.Neg()) })
	})
	if err := g.Wait(); err != nil {
		return nil, nil, errors.Wrap(err, "ubon forward")
	}
	return outX, outInvX, nil
}

// Combine merges branch scores f(x) and f(-x) of shape (B,) into log ψ.
//
// Both irreps are combined in complex128 whatever the model precision:
// weights (+1, +1) for the trivial irrep and (+1, -1) for the
// sign-alternating one. Equal branches of the latter give a real part of
// nn.ZeroLogMagnitude instead of -Inf.
func (m *SymUBoN[T]) Combine(outX, outInvX *tensor.Tensor[T]) (LogAmplitude, error) {
	if outX == nil || outInvX == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil branch scores")
	}
	if outX.Rank() != 1 || !outX.Shape().Equal(outInvX.Shape()) {
		return nil, errors.Wrapf(ErrShapeMismatch, "branch scores must be (batch,), got %v and %v",
			outX.Shape(), outInvX.Shape())
	}
	weightInvX := -1.0
	if m.cfg.Trivial {
		weightInvX = 1
	}
	return nn.PairLogSumExp(outX, outInvX, 1, weightInvX), nil
}

// Trivial reports whether the model projects onto the trivial irrep.
func (m *SymUBoN[T]) Trivial() bool {
	return m.cfg.Trivial
}

// Nodes returns N.
func (m *SymUBoN[T]) Nodes() int {
	return m.cfg.Nodes
}

// Config returns the configuration the model was built with.
func (m *SymUBoN[T]) Config() Config {
	return m.cfg
}

// Augmentation returns the model's augmentation.
func (m *SymUBoN[T]) Augmentation() *Augmentation[T] {
	return m.aug
}

// Graph returns the graph-level transform shared by both branches.
func (m *SymUBoN[T]) Graph() *GraphLevel[T] {
	return m.graph
}

// Parameters returns every parameter of the model.
func (m *SymUBoN[T]) Parameters() []*nn.Parameter[T] {
	return m.graph.Parameters()
}

// StateDict returns the parameters keyed as in GraphLevel.StateDict.
func (m *SymUBoN[T]) StateDict() map[string]*tensor.Tensor[T] {
	return m.graph.StateDict()
}

// LoadStateDict replaces the parameters of the model. If the dictionary is
// incomplete or has a wrong shape, an error is returned and the model keeps
// its previous parameters. It must not run concurrently with Forward.
func (m *SymUBoN[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	if err := m.graph.LoadStateDict(stateDict); err != nil {
		return errors.Wrap(err, "ubon: load state dict")
	}
	return nil
}
