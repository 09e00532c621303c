package nn

import (
	"math/rand"

	"github.com/born-ml/ubon/internal/tensor"
	"github.com/chewxy/math32"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// Values are drawn from rng so that a seeded generator reproduces the same
// model.
//
// Parameters:
//   - fanIn: Number of input units
//   - fanOut: Number of output units
//   - shape: Shape of the weight tensor
//   - rng: Source of randomness
//
// Returns a tensor initialized with Xavier distribution.
func Xavier[T tensor.DType](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor[T] {
	bound := XavierBound(fanIn, fanOut)
	t := tensor.Zeros[T](shape)
	data := t.Data()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = T((rng.Float32()*2.0 - 1.0) * bound)
	}
	return t
}

// XavierBound returns sqrt(6 / (fanIn + fanOut)).
func XavierBound(fanIn, fanOut int) float32 {
	return math32.Sqrt(6.0 / float32(fanIn+fanOut))
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[T tensor.DType](shape tensor.Shape) *tensor.Tensor[T] {
	return tensor.Zeros[T](shape)
}
