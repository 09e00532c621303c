// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense tensors consumed by the UBoN models.
//
// # Overview
//
// Tensors are row-major, owned by the caller and generic over the element
// type:
//   - float32 (default precision of the models)
//   - float64
//
// Operations never alias their inputs except Data, which exposes the
// backing slice.
//
// # Basic Usage
//
//	x, err := tensor.FromRows([][]float32{
//	    {0.1, -0.4, 0.7},
//	    {1.2, 0.0, -0.3},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(x.Shape())      // (2, 3)
//	col := x.Unsqueeze(-1)      // (2, 3, 1)
//	mean := x.MeanDim(1, false) // (2,)
//
// # Broadcasting
//
// Expand follows NumPy rules: size-1 dimensions are repeated and missing
// leading dimensions are added.
//
//	aug := tensor.Zeros[float32](tensor.Shape{3, 3})
//	batched := aug.Expand(tensor.Shape{8, 3, 3})
//
// Shape violations panic with the operation name and the shapes involved.
package tensor
