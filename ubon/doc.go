// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ubon provides the symmetrized UBoN ansatz for graph-structured
// node features.
//
// # Overview
//
// For features x of shape (batch, N) the model computes
//
//	f(x)     = head(mean_i scorer([x_i, aug_i]))
//	log ψ(x) = log(exp f(x) ± exp f(-x))
//
// where aug is a fixed N×N augmentation matrix and the sign selects the
// trivial (+) or the sign-alternating (−) representation of the global
// sign flip. The sign-alternating form is evaluated in complex128, so a
// negative ψ is represented by a phase of π.
//
// # Basic Usage
//
//	cfg := ubon.DefaultConfig(3)
//	cfg.Trivial = false
//	aug := ubon.RandomAugmentation[float32](3, rand.New(rand.NewSource(1)))
//
//	model, err := ubon.New(cfg, aug)
//	if err != nil {
//	    return err
//	}
//	x, _ := tensor.FromRows([][]float32{{0.1, -0.2, 0.3}})
//	logPsi, err := model.Forward(x)
//
// # Errors
//
// Mismatched shapes and invalid configurations are reported as errors that
// match ErrShapeMismatch and ErrInvalidConfig with errors.Is.
package ubon
