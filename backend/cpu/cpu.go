// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/ubon/internal/backend/cpu"
	"github.com/born-ml/ubon/internal/parallel"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// ParallelConfig controls how element-wise kernels are split over goroutines.
type ParallelConfig = parallel.Config

// New creates a CPU backend using all available cores.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
//
// Example:
//
//	backend := cpu.NewWithConfig(cpu.ParallelConfig{Enabled: false, NumWorkers: 1, MinChunkSize: 1})
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultParallelConfig returns one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
