// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/ubon/backend/cpu"
	"github.com/born-ml/ubon/nn"
	"github.com/born-ml/ubon/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		module nn.Module[float32]
		params int
	}{
		{
			name:   "Linear",
			module: nn.NewLinear[float32](10, 5, rng, backend),
			params: 2,
		},
		{
			name:   "ReLU",
			module: nn.NewReLU[float32](backend),
			params: 0,
		},
		{
			name: "Sequential",
			module: nn.NewSequential[float32](
				nn.NewLinear[float32](10, 5, rng, backend),
				nn.NewReLU[float32](backend),
			),
			params: 2,
		},
		{
			name:   "MLP",
			module: nn.NewMLP[float32](rng, backend, 10, 8, 4),
			params: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tensor.Zeros[float32](tensor.Shape{2, 10})
			output := tt.module.Forward(input)
			assert.Equal(t, 2, output.Shape()[0])

			assert.Len(t, tt.module.Parameters(), tt.params)

			stateDict := tt.module.StateDict()
			require.NotNil(t, stateDict)
			assert.NoError(t, tt.module.LoadStateDict(stateDict))
		})
	}
}

func TestLogSumExpAPI(t *testing.T) {
	a, err := tensor.FromSlice([]float64{0, 1000}, tensor.Shape{2})
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{0, 1000}, tensor.Shape{2})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{math.Ln2, 1000 + math.Ln2}, nn.LogSumExp(a, b).Data(), 1e-9)

	signed := nn.PairLogSumExp(a, b, 1, -1)
	for _, v := range signed {
		assert.Equal(t, float64(nn.ZeroLogMagnitude), real(v))
	}

	v := nn.SignedLogSumExp([]complex128{0, 0}, []float64{-1, -1})
	assert.InDelta(t, math.Ln2, real(v), 1e-12)
	assert.InDelta(t, math.Pi, imag(v), 1e-12)
}
