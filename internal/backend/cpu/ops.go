package cpu

import (
	"github.com/born-ml/ubon/internal/parallel"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/gomlx/exceptions"
)

// AddRowVector adds bias (N) to every row of x (M, N) in place and returns x.
func AddRowVector[T tensor.DType](cpu *CPUBackend, x, bias *tensor.Tensor[T]) *tensor.Tensor[T] {
	xShape, bShape := x.Shape(), bias.Shape()
	if len(xShape) != 2 || len(bShape) != 1 || xShape[1] != bShape[0] {
		exceptions.Panicf("add_row_vector: cannot add bias %v to rows of %v", bShape, xShape)
	}
	cols := xShape[1]
	data, b := x.Data(), bias.Data()
	parallel.ForChunks(len(data), func(start, end int) {
		for i := start; i < end; i++ {
			data[i] += b[i%cols]
		}
	}, cpu.parallel)
	return x
}

// ReLU applies max(0, x) element-wise in place and returns x.
func ReLU[T tensor.DType](cpu *CPUBackend, x *tensor.Tensor[T]) *tensor.Tensor[T] {
	data := x.Data()
	parallel.ForChunks(len(data), func(start, end int) {
		for i := start; i < end; i++ {
			if data[i] < 0 {
				data[i] = 0
			}
		}
	}, cpu.parallel)
	return x
}
