// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network layers the UBoN models are built from.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU
//   - Utilities: Sequential, NewMLP, Module interface, Parameter
//   - Initialization: Xavier, Zeros
//   - Log-domain combination: LogSumExp, SignedLogSumExp, PairLogSumExp
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
//	    rng := rand.New(rand.NewSource(42))
//
//	    // N+1 → 128 → 64 → 32 → 1 with ReLU between hidden layers
//	    scorer := nn.NewMLP[float32](rng, backend, 4, 128, 64, 32, 1)
//
//	    // Forward pass
//	    output := scorer.Forward(input) // (M, 4) → (M, 1)
//	}
//
// # Parameters
//
// Parameters are explicit: modules expose them through Parameters and
// StateDict, and LoadStateDict replaces their values. There is no gradient
// tracking; training is left to the caller.
//
// # Log-sum-exp
//
// LogSumExp combines two real tensors as log(exp a + exp b). SignedLogSumExp
// and PairLogSumExp accept signed weights and work in complex128, so a
// negative combination is represented by a phase of π:
//
//	logPsi := nn.PairLogSumExp(fx, fInvX, 1, -1)
package nn
