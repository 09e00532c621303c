package nn

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/ubon/internal/tensor"
	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/floats"
)

// ZeroLogMagnitude is the real part returned by SignedLogSumExp when the
// weighted terms cancel exactly. It is finite, so downstream arithmetic never
// sees NaN, and exp maps it to 0.
const ZeroLogMagnitude = -math.MaxFloat64

// LogSumExp returns log(exp(a) + exp(b)) element-wise.
//
// The log-sum-exp trick keeps it finite for large inputs:
//
//	LogSumExp(a, b) = max(a, b) + log(1 + exp(-|a - b|))
//
// float32 tensors are combined in float32 (math32); other types go through
// gonum's float64 implementation.
func LogSumExp[T tensor.DType](a, b *tensor.Tensor[T]) *tensor.Tensor[T] {
	if !a.Shape().Equal(b.Shape()) {
		exceptions.Panicf("LogSumExp: shape mismatch %v vs %v", a.Shape(), b.Shape())
	}
	out := tensor.Zeros[T](a.Shape())
	dst := out.Data()

	switch ad := any(a.Data()).(type) {
	case []float32:
		bd := any(b.Data()).([]float32)
		od := any(dst).([]float32)
		for i := range od {
			od[i] = logSumExp32(ad[i], bd[i])
		}
	default:
		ad64, bd := a.Data(), b.Data()
		pair := make([]float64, 2)
		for i := range dst {
			pair[0], pair[1] = float64(ad64[i]), float64(bd[i])
			dst[i] = T(floats.LogSumExp(pair))
		}
	}
	return out
}

func logSumExp32(a, b float32) float32 {
	m := math32.Max(a, b)
	if math32.IsInf(m, 0) {
		return m
	}
	return m + math32.Log1p(math32.Exp(-math32.Abs(a-b)))
}

// SignedLogSumExp returns log(Σ wᵢ·exp(tᵢ)) in the complex domain.
//
// The terms are shifted by the largest real part before exponentiating, the
// weighted sum is taken in complex128 and the shift is added back after the
// complex logarithm:
//
//	s = max(Re tᵢ)
//	SignedLogSumExp(t, w) = s + log(Σ wᵢ·exp(tᵢ - s))
//
// A negative sum yields an imaginary part of π, which is how sign
// cancellation is represented. An exactly zero sum returns
// complex(ZeroLogMagnitude, 0) instead of -Inf. If the largest real part is
// +Inf only the infinite terms count: the result is complex(+Inf, 0) when
// their weights are all positive, complex(+Inf, π) when all negative and NaN
// when the signs conflict (∞ - ∞).
func SignedLogSumExp(terms []complex128, weights []float64) complex128 {
	if len(terms) != len(weights) {
		exceptions.Panicf("SignedLogSumExp: %d terms but %d weights", len(terms), len(weights))
	}

	shift := math.Inf(-1)
	for _, t := range terms {
		shift = math.Max(shift, real(t))
	}
	switch {
	case math.IsInf(shift, 1):
		return infiniteLogSumExp(terms, weights)
	case math.IsInf(shift, -1):
		// Every term is exp(-Inf) = 0, or there are no terms at all.
		return complex(ZeroLogMagnitude, 0)
	}

	var sum complex128
	for i, t := range terms {
		sum += complex(weights[i], 0) * cmplx.Exp(t-complex(shift, 0))
	}
	if sum == 0 {
		return complex(ZeroLogMagnitude, 0)
	}
	return cmplx.Log(sum) + complex(shift, 0)
}

func infiniteLogSumExp(terms []complex128, weights []float64) complex128 {
	var pos, neg bool
	for i, t := range terms {
		if !math.IsInf(real(t), 1) {
			continue
		}
		switch {
		case weights[i] > 0:
			pos = true
		case weights[i] < 0:
			neg = true
		}
	}
	switch {
	case pos && !neg:
		return complex(math.Inf(1), 0)
	case neg && !pos:
		return complex(math.Inf(1), math.Pi)
	default:
		return cmplx.NaN()
	}
}

// PairLogSumExp combines two real tensors of equal shape element-wise as
// log(wa·exp(a) + wb·exp(b)), promoting to complex128.
//
// With weights (+1, -1) this is the antisymmetric combination; the result
// is a flat slice in the row-major order of a.
func PairLogSumExp[T tensor.DType](a, b *tensor.Tensor[T], wa, wb float64) []complex128 {
	if !a.Shape().Equal(b.Shape()) {
		exceptions.Panicf("PairLogSumExp: shape mismatch %v vs %v", a.Shape(), b.Shape())
	}
	ad, bd := a.Data(), b.Data()
	out := make([]complex128, len(ad))
	weights := []float64{wa, wb}
	terms := make([]complex128, 2)
	for i := range ad {
		terms[0] = complex(float64(ad[i]), 0)
		terms[1] = complex(float64(bd[i]), 0)
		out[i] = SignedLogSumExp(terms, weights)
	}
	return out
}
