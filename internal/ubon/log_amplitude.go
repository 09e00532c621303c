package ubon

import (
	"math"
	"math/cmplx"
)

// LogAmplitude holds log ψ for every graph of a batch.
//
// The real part is log|ψ| and the imaginary part its phase: 0 for the
// trivial irrep, 0 or π for the sign-alternating one.
type LogAmplitude []complex128

// Len returns the batch size.
func (la LogAmplitude) Len() int {
	return len(la)
}

// Real returns log|ψ| per graph.
func (la LogAmplitude) Real() []float64 {
	out := make([]float64, len(la))
	for i, v := range la {
		out[i] = real(v)
	}
	return out
}

// Phase returns arg ψ per graph, in (-π, π].
func (la LogAmplitude) Phase() []float64 {
	out := make([]float64, len(la))
	for i, v := range la {
		out[i] = math.Atan2(math.Sin(imag(v)), math.Cos(imag(v)))
	}
	return out
}

// Psi returns ψ = exp(log ψ) per graph. Large real parts overflow to ±Inf.
func (la LogAmplitude) Psi() []complex128 {
	out := make([]complex128, len(la))
	for i, v := range la {
		out[i] = cmplx.Exp(v)
	}
	return out
}
