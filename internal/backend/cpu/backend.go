// Package cpu implements the CPU kernels used by the nn layers, with BLAS
// matrix products from gonum.
package cpu

import (
	"github.com/born-ml/ubon/internal/parallel"
)

// CPUBackend carries the execution settings shared by the CPU kernels.
//
// The kernels themselves are generic package functions (Go methods cannot
// take type parameters); they receive the backend as their first argument.
type CPUBackend struct {
	parallel parallel.Config
}

// New creates a CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return &CPUBackend{parallel: parallel.DefaultConfig()}
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{parallel: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Parallel returns the parallel configuration used by element-wise kernels.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}
