package cpu

import (
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// MatMulTransB computes x @ w.T.
//
// Shapes: x is (M, K), w is (N, K), the result is (M, N). This is the layout
// of a dense layer's weight matrix (out_features, in_features), so every row
// of x is scored against the same weights in a single GEMM call.
func MatMulTransB[T tensor.DType](cpu *CPUBackend, x, w *tensor.Tensor[T]) *tensor.Tensor[T] {
	xShape, wShape := x.Shape(), w.Shape()
	if len(xShape) != 2 || len(wShape) != 2 {
		exceptions.Panicf("matmul: only 2D tensors supported, got %dD and %dD", len(xShape), len(wShape))
	}
	m, k := xShape[0], xShape[1]
	n, kAlt := wShape[0], wShape[1]
	if k != kAlt {
		exceptions.Panicf("matmul: shape mismatch %v @ %v.T", xShape, wShape)
	}

	out := tensor.Zeros[T](tensor.Shape{m, n})
	switch xd := any(x.Data()).(type) {
	case []float32:
		gemm32(out.Data(), xd, any(w.Data()).([]float32), m, k, n)
	case []float64:
		gemm64(out.Data(), xd, any(w.Data()).([]float64), m, k, n)
	default:
		// Named float types are not addressable as []float32/[]float64.
		matmulTransBNaive(out.Data(), x.Data(), w.Data(), m, k, n)
	}
	return out
}

func gemm32[T tensor.DType](dst []T, x, w []float32, m, k, n int) {
	c := any(dst).([]float32)
	blas32.Gemm(blas.NoTrans, blas.Trans, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: x},
		blas32.General{Rows: n, Cols: k, Stride: k, Data: w},
		0, blas32.General{Rows: m, Cols: n, Stride: n, Data: c})
}

func gemm64[T tensor.DType](dst []T, x, w []float64, m, k, n int) {
	c := any(dst).([]float64)
	blas64.Gemm(blas.NoTrans, blas.Trans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: x},
		blas64.General{Rows: n, Cols: k, Stride: k, Data: w},
		0, blas64.General{Rows: m, Cols: n, Stride: n, Data: c})
}

// matmulTransBNaive is the O(m·k·n) reference used for types BLAS cannot take.
func matmulTransBNaive[T tensor.DType](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[j*k+kIdx]
			}
			c[i*n+j] = sum
		}
	}
}
