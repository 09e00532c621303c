package tensor

import "github.com/gomlx/exceptions"

// Reshape returns a copy of the tensor with a new shape.
// At most one dimension may be -1, in which case it is inferred.
func (t *Tensor[T]) Reshape(dims ...int) *Tensor[T] {
	newShape := make(Shape, len(dims))
	copy(newShape, dims)

	inferred := -1
	known := 1
	for i, d := range newShape {
		switch {
		case d == -1 && inferred == -1:
			inferred = i
		case d == -1:
			exceptions.Panicf("Reshape: more than one inferred dimension in %v", dims)
		default:
			known *= d
		}
	}
	if inferred >= 0 {
		if known <= 0 || len(t.data)%known != 0 {
			exceptions.Panicf("Reshape: cannot infer dimension of %v for %d elements", dims, len(t.data))
		}
		newShape[inferred] = len(t.data) / known
	}
	if newShape.NumElements() != len(t.data) {
		exceptions.Panicf("Reshape: shape %v has %d elements, tensor %v has %d",
			newShape, newShape.NumElements(), t.shape, len(t.data))
	}

	out := t.Clone()
	out.shape = newShape
	return out
}

// Unsqueeze inserts a dimension of size 1 at position dim.
// Negative dim counts from the end of the result, so -1 appends a trailing axis.
func (t *Tensor[T]) Unsqueeze(dim int) *Tensor[T] {
	rank := len(t.shape) + 1
	d := normalizeDim(dim, rank)
	if d < 0 {
		exceptions.Panicf("Unsqueeze: dimension %d out of range for shape %v", dim, t.shape)
	}
	newShape := make(Shape, 0, rank)
	newShape = append(newShape, t.shape[:d]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, t.shape[d:]...)
	return t.Reshape(newShape...)
}

// Squeeze removes dimension dim, which must have size 1.
func (t *Tensor[T]) Squeeze(dim int) *Tensor[T] {
	d := normalizeDim(dim, len(t.shape))
	if d < 0 {
		exceptions.Panicf("Squeeze: dimension %d out of range for shape %v", dim, t.shape)
	}
	if t.shape[d] != 1 {
		exceptions.Panicf("Squeeze: dimension %d has size %d, expected 1", dim, t.shape[d])
	}
	newShape := make(Shape, 0, len(t.shape)-1)
	newShape = append(newShape, t.shape[:d]...)
	newShape = append(newShape, t.shape[d+1:]...)
	return t.Reshape(newShape...)
}

// Expand broadcasts the tensor to shape, NumPy style: size-1 dimensions are
// repeated and missing leading dimensions are added.
//
// Example:
//
//	aug := tensor.Zeros[float32](tensor.Shape{3, 3})
//	batched := aug.Expand(tensor.Shape{8, 3, 3}) // 8 identical copies
func (t *Tensor[T]) Expand(shape Shape) *Tensor[T] {
	if !t.shape.ExpandableTo(shape) {
		exceptions.Panicf("Expand: cannot broadcast shape %v to %v", t.shape, shape)
	}

	// Source strides aligned on the target rank, 0 on broadcast dimensions.
	srcStrides := make([]int, len(shape))
	own := t.shape.ComputeStrides()
	offset := len(shape) - len(t.shape)
	for i, dim := range t.shape {
		if dim != 1 {
			srcStrides[offset+i] = own[i]
		}
	}

	out := Zeros[T](shape)
	index := make([]int, len(shape))
	for i := range out.data {
		src := 0
		for d, idx := range index {
			src += idx * srcStrides[d]
		}
		out.data[i] = t.data[src]

		// Advance the multi-index, last dimension fastest.
		for d := len(index) - 1; d >= 0; d-- {
			index[d]++
			if index[d] < shape[d] {
				break
			}
			index[d] = 0
		}
	}
	return out
}

// Cat concatenates tensors along dimension dim.
// All tensors must have the same rank and equal sizes on every other dimension.
func Cat[T DType](tensors []*Tensor[T], dim int) *Tensor[T] {
	if len(tensors) == 0 {
		exceptions.Panicf("Cat: no tensors given")
	}
	first := tensors[0].shape
	d := normalizeDim(dim, len(first))
	if d < 0 {
		exceptions.Panicf("Cat: dimension %d out of range for shape %v", dim, first)
	}

	outShape := first.Clone()
	outShape[d] = 0
	for i, t := range tensors {
		if len(t.shape) != len(first) {
			exceptions.Panicf("Cat: tensor %d has rank %d, expected %d", i, len(t.shape), len(first))
		}
		for j := range first {
			if j != d && t.shape[j] != first[j] {
				exceptions.Panicf("Cat: tensor %d has shape %v, incompatible with %v on dimension %d",
					i, t.shape, first, j)
			}
		}
		outShape[d] += t.shape[d]
	}

	outer := Shape(first[:d]).NumElements()
	out := Zeros[T](outShape)
	pos := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			chunk := Shape(t.shape[d:]).NumElements()
			copy(out.data[pos:pos+chunk], t.data[o*chunk:(o+1)*chunk])
			pos += chunk
		}
	}
	return out
}

// MeanDim computes the arithmetic mean along dimension dim.
// With keepDim the reduced dimension is kept with size 1.
func (t *Tensor[T]) MeanDim(dim int, keepDim bool) *Tensor[T] {
	d := normalizeDim(dim, len(t.shape))
	if d < 0 {
		exceptions.Panicf("MeanDim: dimension %d out of range for shape %v", dim, t.shape)
	}
	outer := Shape(t.shape[:d]).NumElements()
	size := t.shape[d]
	inner := Shape(t.shape[d+1:]).NumElements()

	outShape := t.shape.Clone()
	outShape[d] = 1
	out := Zeros[T](outShape)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			// Accumulate in float64 so float32 means over many nodes stay accurate.
			var sum float64
			for k := 0; k < size; k++ {
				sum += float64(t.data[(o*size+k)*inner+i])
			}
			out.data[o*inner+i] = T(sum / float64(size))
		}
	}
	if !keepDim {
		return out.Squeeze(d)
	}
	return out
}

// Neg returns the element-wise negation.
func (t *Tensor[T]) Neg() *Tensor[T] {
	out := t.Clone()
	for i, v := range out.data {
		out.data[i] = -v
	}
	return out
}

// Cast converts the tensor to element type U.
func Cast[U, T DType](t *Tensor[T]) *Tensor[U] {
	out := Zeros[U](t.shape)
	for i, v := range t.data {
		out.data[i] = U(v)
	}
	return out
}
