// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend running the UBoN layers.
//
// # Overview
//
// Dense layers run as one GEMM per layer through gonum's BLAS (float32 and
// float64). Element-wise kernels (bias, ReLU) are split into chunks and run
// on goroutines when the tensors are large enough.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ubon/backend/cpu"
//	    "github.com/born-ml/ubon/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    layer := nn.NewLinear[float32](4, 128, rand.New(rand.NewSource(1)), backend)
//	}
package cpu
