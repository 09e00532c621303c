package ubon

import (
	"github.com/born-ml/ubon/internal/parallel"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/pkg/errors"
)

// Layer widths of the two feed-forward stacks.
const (
	NodeHidden1      = 128
	NodeHidden2      = 64
	NodeHidden3      = 32
	GraphHiddenWidth = 64
)

// Config holds the construction-time parameters of a SymUBoN model.
type Config struct {
	Nodes    int             // N, number of nodes per graph.
	Trivial  bool            // Trivial irrep (symmetric) if true, sign-alternating otherwise.
	DType    tensor.DataType // Element type of the real branches.
	Seed     int64           // Seed of the Xavier initialization.
	Parallel parallel.Config // Chunking of the element-wise CPU kernels.
}

// DefaultConfig returns a float32, trivial-irrep configuration for n nodes.
func DefaultConfig(n int) Config {
	return Config{
		Nodes:    n,
		Trivial:  true,
		DType:    tensor.Float32,
		Seed:     42,
		Parallel: parallel.DefaultConfig(),
	}
}

// Validate reports whether the configuration can build a model.
// Errors wrap ErrInvalidConfig.
func (cfg Config) Validate() error {
	if cfg.Nodes <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "node count must be positive, got %d", cfg.Nodes)
	}
	if cfg.DType != tensor.Float32 && cfg.DType != tensor.Float64 {
		return errors.Wrapf(ErrInvalidConfig, "unsupported dtype %v", cfg.DType)
	}
	if err := cfg.Parallel.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}
