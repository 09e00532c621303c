package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations.
//
// Example:
//
//	model := nn.NewSequential[float32](
//	    nn.NewLinear[float32](4, 128, rng, backend),
//	    nn.NewReLU[float32](backend),
//	    nn.NewLinear[float32](128, 1, rng, backend),
//	)
//
//	output := model.Forward(input)
type Sequential[T tensor.DType] struct {
	modules []Module[T]
}

// NewSequential creates a new Sequential container.
func NewSequential[T tensor.DType](modules ...Module[T]) *Sequential[T] {
	return &Sequential[T]{
		modules: modules,
	}
}

// NewMLP builds a feed-forward stack of Linear layers between consecutive
// widths, with a ReLU after every layer except the last.
//
// NewMLP(rng, backend, 5, 128, 64, 32, 1) yields
// Linear(5,128) ReLU Linear(128,64) ReLU Linear(64,32) ReLU Linear(32,1).
//
// Layers draw their weights from rng in order, so a seeded rng reproduces
// the same network.
func NewMLP[T tensor.DType](rng *rand.Rand, backend *cpu.CPUBackend, widths ...int) *Sequential[T] {
	if len(widths) < 2 {
		exceptions.Panicf("NewMLP: need at least input and output widths, got %v", widths)
	}
	seq := NewSequential[T]()
	for i := 0; i+1 < len(widths); i++ {
		seq.Add(NewLinear[T](widths[i], widths[i+1], rng, backend))
		if i+2 < len(widths) {
			seq.Add(NewReLU[T](backend))
		}
	}
	return seq
}

// Forward applies all modules in sequence.
func (s *Sequential[T]) Forward(input *tensor.Tensor[T]) *tensor.Tensor[T] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns the parameters of all modules, in order.
func (s *Sequential[T]) Parameters() []*Parameter[T] {
	var params []*Parameter[T]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential[T]) Add(module Module[T]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[T]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[T]) Module(index int) Module[T] {
	if index < 0 || index >= len(s.modules) {
		exceptions.Panicf("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// StateDict returns a map of parameter names to tensors.
//
// Parameters are prefixed with their module index (e.g., "0.weight", "0.bias", "2.weight", etc.)
// to avoid name collisions.
func (s *Sequential[T]) StateDict() map[string]*tensor.Tensor[T] {
	stateDict := make(map[string]*tensor.Tensor[T])
	for i, module := range s.modules {
		for name, t := range module.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = t
		}
	}
	return stateDict
}

// LoadStateDict loads parameters from a state dictionary.
//
// Parameters should be prefixed with their module index (e.g., "0.weight", "0.bias").
// If any module fails to load, the parameters loaded so far are restored and
// the container is left as it was.
func (s *Sequential[T]) LoadStateDict(stateDict map[string]*tensor.Tensor[T]) error {
	snapshot := CloneStateDict(s.StateDict())
	if err := s.loadModules(stateDict); err != nil {
		// The snapshot has the current shapes, so restoring cannot fail.
		_ = s.loadModules(snapshot)
		return err
	}
	return nil
}

func (s *Sequential[T]) loadModules(stateDict map[string]*tensor.Tensor[T]) error {
	for i, module := range s.modules {
		if len(module.Parameters()) == 0 {
			continue
		}
		if err := module.LoadStateDict(SubStateDict(stateDict, fmt.Sprintf("%d", i))); err != nil {
			return fmt.Errorf("failed to load module %d: %w", i, err)
		}
	}
	return nil
}

// CloneStateDict returns a deep copy of stateDict.
func CloneStateDict[T tensor.DType](stateDict map[string]*tensor.Tensor[T]) map[string]*tensor.Tensor[T] {
	out := make(map[string]*tensor.Tensor[T], len(stateDict))
	for key, t := range stateDict {
		out[key] = t.Clone()
	}
	return out
}

// SubStateDict returns the entries of stateDict under "prefix.", with the
// prefix removed.
func SubStateDict[T tensor.DType](stateDict map[string]*tensor.Tensor[T], prefix string) map[string]*tensor.Tensor[T] {
	prefix += "."
	sub := make(map[string]*tensor.Tensor[T])
	for key, t := range stateDict {
		if name, ok := strings.CutPrefix(key, prefix); ok && name != "" {
			sub[name] = t
		}
	}
	return sub
}

// PrefixStateDict adds "prefix." in front of every key of stateDict.
func PrefixStateDict[T tensor.DType](stateDict map[string]*tensor.Tensor[T], prefix string) map[string]*tensor.Tensor[T] {
	out := make(map[string]*tensor.Tensor[T], len(stateDict))
	for key, t := range stateDict {
		out[prefix+"."+key] = t
	}
	return out
}
