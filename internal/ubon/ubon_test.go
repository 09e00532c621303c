package ubon_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/ubon/internal/nn"
	"github.com/born-ml/ubon/internal/parallel"
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/born-ml/ubon/internal/ubon"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func features[T tensor.DType](t *testing.T, rows [][]T) *tensor.Tensor[T] {
	t.Helper()
	x, err := tensor.FromRows(rows)
	require.NoError(t, err)
	return x
}

func newModel[T tensor.DType](t *testing.T, n int, trivial bool, aug *ubon.Augmentation[T]) *ubon.SymUBoN[T] {
	t.Helper()
	cfg := ubon.DefaultConfig(n)
	cfg.Trivial = trivial
	cfg.DType = tensor.DataTypeOf[T]()
	cfg.Parallel = parallel.Sequential()
	model, err := ubon.New(cfg, aug)
	require.NoError(t, err)
	return model
}

func randomFeatures(rng *rand.Rand, batch, n int) [][]float64 {
	rows := make([][]float64, batch)
	for b := range rows {
		rows[b] = make([]float64, n)
		for i := range rows[b] {
			rows[b][i] = 2*rng.Float64() - 1
		}
	}
	return rows
}

func TestOutputShapes(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		for _, batch := range []int{1, 5} {
			rng := rand.New(rand.NewSource(int64(n*10 + batch)))
			model := newModel(t, n, true, ubon.RandomAugmentation[float32](n, rng))
			x := tensor.Cast[float32](features(t, randomFeatures(rng, batch, n)))

			assert.True(t, model.Graph().Node().Forward(x).Shape().Equal(tensor.Shape{batch, n, 1}))
			assert.True(t, model.Graph().Node().Augment(x).Shape().Equal(tensor.Shape{batch, n, n + 1}))
			assert.True(t, model.Graph().Forward(x).Shape().Equal(tensor.Shape{batch}))

			logPsi, err := model.Forward(x)
			require.NoError(t, err)
			assert.Equal(t, batch, logPsi.Len())
		}
	}
}

func TestAugment_Layout(t *testing.T) {
	aug, err := ubon.AugmentationFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	model := newModel(t, 2, true, aug)

	x := features(t, [][]float64{{10, 20}, {30, 40}})
	augmented := model.Graph().Node().Augment(x)
	assert.Equal(t, []float64{
		10, 1, 2,
		20, 3, 4,
		30, 1, 2,
		40, 3, 4,
	}, augmented.Data())
}

// Two nodes with the same feature and the same augmentation row must get the
// same score, and the batched path must agree with scoring node by node.
func TestWeightSharing(t *testing.T) {
	aug, err := ubon.AugmentationFromRows([][]float64{
		{0.5, -0.25, 1},
		{0.5, -0.25, 1},
		{-1, 0.75, 0.1},
	})
	require.NoError(t, err)
	model := newModel(t, 3, true, aug)
	node := model.Graph().Node()

	x := features(t, [][]float64{{0.3, 0.3, -0.8}, {-0.6, 0.2, 0.3}, {0.3, 0.9, 0.9}})
	scores := node.Forward(x)
	assert.InDelta(t, scores.At(0, 0, 0), scores.At(0, 1, 0), 1e-12)

	// Same augmented vector in different graphs of the batch.
	assert.InDelta(t, scores.At(0, 0, 0), scores.At(2, 0, 0), 1e-12)

	augmented := node.Augment(x)
	for b := 0; b < 3; b++ {
		for i := 0; i < 3; i++ {
			vec := make([]float64, 4)
			for k := range vec {
				vec[k] = augmented.At(b, i, k)
			}
			assert.InDelta(t, node.Scorer().Score(vec), scores.At(b, i, 0), 1e-9, "graph %d node %d", b, i)
		}
	}
}

func permuteColumns(rows [][]float64, perm []int) [][]float64 {
	out := make([][]float64, len(rows))
	for b, row := range rows {
		out[b] = make([]float64, len(row))
		for i, p := range perm {
			out[b][i] = row[p]
		}
	}
	return out
}

// Permuting the features permutes the node scores only when the
// augmentation rows agree under the permutation.
func TestPermutationCoupling(t *testing.T) {
	const n = 4
	perm := []int{2, 0, 3, 1}
	rng := rand.New(rand.NewSource(7))
	rows := randomFeatures(rng, 2, n)

	nodeScores := func(aug *ubon.Augmentation[float64], rows [][]float64) *tensor.Tensor[float64] {
		return newModel(t, n, true, aug).Graph().Node().Forward(features(t, rows))
	}
	equivariant := func(aug *ubon.Augmentation[float64]) bool {
		scores := nodeScores(aug, rows)
		permuted := nodeScores(aug, permuteColumns(rows, perm))
		for b := range rows {
			for i, p := range perm {
				if math.Abs(permuted.At(b, i, 0)-scores.At(b, p, 0)) > 1e-9 {
					return false
				}
			}
		}
		return true
	}

	random := ubon.RandomAugmentation[float64](n, rng)
	assert.False(t, random.PermutationInvariant(perm))
	assert.False(t, equivariant(random), "node order is visible through the augmentation rows")

	constant, err := ubon.AugmentationFromRows([][]float64{
		{1, 2, 3, 4}, {1, 2, 3, 4}, {1, 2, 3, 4}, {1, 2, 3, 4},
	})
	require.NoError(t, err)
	assert.True(t, constant.PermutationInvariant(perm))
	assert.True(t, equivariant(constant))

	identity := ubon.IdentityAugmentation[float64](n)
	assert.False(t, identity.PermutationInvariant(perm))
	assert.True(t, identity.PermutationInvariant([]int{0, 1, 2, 3}))
	assert.False(t, identity.PermutationInvariant([]int{0, 1}))

	// With identity augmentation and equal features the permuted input is the
	// same input, so the scores match trivially.
	same := [][]float64{{0.4, 0.4, 0.4, 0.4}}
	assert.Equal(t, nodeScores(identity, same).Data(), nodeScores(identity, permuteColumns(same, perm)).Data())
}

func TestTrivialIrrep_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	model := newModel(t, 3, true, ubon.RandomAugmentation[float32](3, rng))

	x0 := features(t, [][]float32{{0.3, -1.2, 0.7}, {2, 0.5, -0.1}})
	logPsi, err := model.Forward(x0)
	require.NoError(t, err)
	logPsiNeg, err := model.Forward(x0.Neg())
	require.NoError(t, err)

	for i := range logPsi {
		assert.InDelta(t, real(logPsi[i]), real(logPsiNeg[i]), 1e-6)
		assert.Zero(t, imag(logPsi[i]))
		assert.Zero(t, imag(logPsiNeg[i]))
	}
}

func TestSignAlternatingIrrep_Antisymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	model := newModel(t, 3, false, ubon.RandomAugmentation[float64](3, rng))

	x0 := features(t, [][]float64{{0.3, -1.2, 0.7}, {2, 0.5, -0.1}, {-0.9, 0.4, 1.5}})
	logPsi, err := model.Forward(x0)
	require.NoError(t, err)
	logPsiNeg, err := model.Forward(x0.Neg())
	require.NoError(t, err)

	psi, psiNeg := logPsi.Psi(), logPsiNeg.Psi()
	for i := range logPsi {
		require.Greater(t, real(logPsi[i]), nn.ZeroLogMagnitude, "branches should not cancel for a generic input")
		assert.InDelta(t, real(logPsi[i]), real(logPsiNeg[i]), 1e-6)
		assert.InDelta(t, -1, math.Cos(imag(logPsiNeg[i])-imag(logPsi[i])), 1e-6, "phases differ by π")

		scale := math.Max(1, math.Abs(real(psi[i])))
		assert.InDelta(t, 0, (real(psiNeg[i])+real(psi[i]))/scale, 1e-6)
		assert.InDelta(t, 0, imag(psiNeg[i])+imag(psi[i]), 1e-6)
	}
}

func TestCombine_LargeMagnitudes(t *testing.T) {
	a := features(t, [][]float64{{1e6, 1e6 - 2, -1e6}})
	b := features(t, [][]float64{{1e6 - 2, 1e6, -1e6 - 3}})
	outX, outInvX := a.Reshape(-1), b.Reshape(-1)

	trivial := newModel(t, 2, true, ubon.IdentityAugmentation[float64](2))
	logPsi, err := trivial.Combine(outX, outInvX)
	require.NoError(t, err)
	assert.InDelta(t, 1e6+math.Log1p(math.Exp(-2)), real(logPsi[0]), 1e-4)
	assert.InDelta(t, 1e6+math.Log1p(math.Exp(-2)), real(logPsi[1]), 1e-4)
	assert.InDelta(t, -1e6+math.Log1p(math.Exp(-3)), real(logPsi[2]), 1e-4)

	signed := newModel(t, 2, false, ubon.IdentityAugmentation[float64](2))
	logPsi, err = signed.Combine(outX, outInvX)
	require.NoError(t, err)
	assert.InDelta(t, 1e6+math.Log(1-math.Exp(-2)), real(logPsi[0]), 1e-4)
	assert.InDelta(t, 0, logPsi.Phase()[0], 1e-9)
	assert.InDelta(t, 1e6+math.Log(1-math.Exp(-2)), real(logPsi[1]), 1e-4)
	assert.InDelta(t, math.Pi, logPsi.Phase()[1], 1e-9)
	assert.InDelta(t, -1e6+math.Log(1-math.Exp(-3)), real(logPsi[2]), 1e-4)

	for _, v := range logPsi {
		assert.False(t, math.IsNaN(real(v)) || math.IsInf(real(v), 0))
	}
}

// The combination is done in complex128, so a float32 model keeps the same
// accuracy at large scores.
func TestCombine_LargeMagnitudesFloat32(t *testing.T) {
	a := features(t, [][]float32{{1e6, 1e6 - 2}})
	b := features(t, [][]float32{{1e6 - 2, 1e6}})
	outX, outInvX := a.Reshape(-1), b.Reshape(-1)

	trivial := newModel(t, 2, true, ubon.IdentityAugmentation[float32](2))
	logPsi, err := trivial.Combine(outX, outInvX)
	require.NoError(t, err)
	for i := range logPsi {
		assert.InDelta(t, 1e6+math.Log1p(math.Exp(-2)), real(logPsi[i]), 1e-4)
		assert.Zero(t, imag(logPsi[i]))
	}
	assert.Equal(t, logPsi[0], logPsi[1])

	signed := newModel(t, 2, false, ubon.IdentityAugmentation[float32](2))
	logPsi, err = signed.Combine(outX, outInvX)
	require.NoError(t, err)
	assert.InDelta(t, 1e6+math.Log(1-math.Exp(-2)), real(logPsi[0]), 1e-4)
	assert.InDelta(t, 1e6+math.Log(1-math.Exp(-2)), real(logPsi[1]), 1e-4)
	assert.InDelta(t, math.Pi, logPsi.Phase()[1], 1e-9)
}

func TestCombine_DegenerateBranches(t *testing.T) {
	model := newModel(t, 2, false, ubon.IdentityAugmentation[float64](2))
	same := features(t, [][]float64{{0.5, -3, 1e6}}).Reshape(-1)

	logPsi, err := model.Combine(same, same.Clone())
	require.NoError(t, err)
	for i, v := range logPsi {
		assert.False(t, math.IsNaN(real(v)) || math.IsNaN(imag(v)))
		assert.Equal(t, nn.ZeroLogMagnitude, real(v))
		assert.Zero(t, logPsi.Psi()[i])
	}
}

// f(0) and f(-0) are the same number, so the sign-alternating ansatz
// vanishes at the origin.
func TestForward_AntisymmetricAtOrigin(t *testing.T) {
	model := newModel(t, 3, false, ubon.RandomAugmentation[float64](3, rand.New(rand.NewSource(11))))
	logPsi, err := model.Forward(features(t, [][]float64{{0, 0, 0}}))
	require.NoError(t, err)
	assert.Equal(t, nn.ZeroLogMagnitude, real(logPsi[0]))
	assert.False(t, math.IsNaN(imag(logPsi[0])))
}

func TestForward_ShapeErrors(t *testing.T) {
	model := newModel(t, 3, true, ubon.IdentityAugmentation[float32](3))

	_, err := model.Forward(features(t, [][]float32{{1, 2, 3, 4}}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))

	_, err = model.Forward(tensor.Zeros[float32](tensor.Shape{2, 3, 1}))
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))

	_, err = model.Forward(nil)
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))

	_, err = model.Combine(tensor.Zeros[float32](tensor.Shape{2}), tensor.Zeros[float32](tensor.Shape{3}))
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))

	scores := tensor.Zeros[float32](tensor.Shape{2})
	_, err = model.Combine(nil, scores)
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))
	_, err = model.Combine(scores, nil)
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))
}

// A batch is at least one graph: tensors have no zero-sized dimensions.
func TestForward_EmptyBatch(t *testing.T) {
	_, err := tensor.FromSlice([]float32{}, tensor.Shape{0, 3})
	require.Error(t, err)

	cfg := ubon.DefaultConfig(3)
	_, err = ubon.Evaluate(cfg, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, [][]float64{})
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))
}

func TestNew_Errors(t *testing.T) {
	_, err := ubon.New(ubon.DefaultConfig(3), ubon.IdentityAugmentation[float32](4))
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))

	_, err = ubon.New(ubon.DefaultConfig(0), ubon.IdentityAugmentation[float32](1))
	assert.True(t, errors.Is(err, ubon.ErrInvalidConfig))

	// DefaultConfig is float32.
	_, err = ubon.New(ubon.DefaultConfig(2), ubon.IdentityAugmentation[float64](2))
	assert.True(t, errors.Is(err, ubon.ErrInvalidConfig))

	_, err = ubon.New[float32](ubon.DefaultConfig(2), nil)
	assert.True(t, errors.Is(err, ubon.ErrInvalidConfig))

	cfg := ubon.DefaultConfig(2)
	cfg.Parallel = parallel.Config{Enabled: true, NumWorkers: 0, MinChunkSize: 1}
	assert.True(t, errors.Is(cfg.Validate(), ubon.ErrInvalidConfig))
}

func TestAugmentation_Immutable(t *testing.T) {
	src, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	aug, err := ubon.NewAugmentation(src)
	require.NoError(t, err)

	src.Set(100, 0, 0)
	aug.Tensor().Set(200, 1, 1)
	aug.Row(0)[1] = 300

	assert.Equal(t, []float64{1, 2, 3, 4}, aug.Tensor().Data())
	assert.Equal(t, 2, aug.Nodes())

	_, err = ubon.AugmentationFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))
	_, err = ubon.AugmentationFromRows([][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ubon.ErrShapeMismatch))
}

func TestParametersAndStateDict(t *testing.T) {
	const n = 3
	model := newModel(t, n, true, ubon.IdentityAugmentation[float32](n))

	scorer := (n+1)*128 + 128 + 128*64 + 64 + 64*32 + 32 + 32 + 1
	head := 64 + 64 + 64 + 1
	assert.Len(t, model.Parameters(), 12)
	assert.Equal(t, scorer+head, nn.CountParameters(model.Parameters()))

	sd := model.StateDict()
	assert.Len(t, sd, 12)
	require.Contains(t, sd, "node.scorer.0.weight")
	assert.True(t, sd["node.scorer.0.weight"].Shape().Equal(tensor.Shape{128, n + 1}))
	require.Contains(t, sd, "node.scorer.6.bias")
	assert.True(t, sd["node.scorer.6.bias"].Shape().Equal(tensor.Shape{1}))
	require.Contains(t, sd, "head.2.weight")
	assert.True(t, sd["head.2.weight"].Shape().Equal(tensor.Shape{1, 64}))
}

func TestLoadStateDict_ReproducesModel(t *testing.T) {
	aug := ubon.RandomAugmentation[float32](3, rand.New(rand.NewSource(1)))
	cfg := ubon.DefaultConfig(3)
	cfg.Trivial = false

	src, err := ubon.New(cfg, aug)
	require.NoError(t, err)
	cfg.Seed = 1234
	dst, err := ubon.New(cfg, aug)
	require.NoError(t, err)

	x := features(t, [][]float32{{0.1, 0.2, -0.3}, {1, -1, 0.5}})
	want, err := src.Forward(x)
	require.NoError(t, err)
	before, err := dst.Forward(x)
	require.NoError(t, err)
	assert.NotEqual(t, want, before)

	require.NoError(t, dst.LoadStateDict(src.StateDict()))
	got, err := dst.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	sd := src.StateDict()
	delete(sd, "head.0.bias")
	assert.Error(t, dst.LoadStateDict(sd))

	sd = src.StateDict()
	sd["node.scorer.2.weight"] = tensor.Zeros[float32](tensor.Shape{3, 3})
	assert.Error(t, dst.LoadStateDict(sd))
}

func TestLoadStateDict_FailureKeepsModel(t *testing.T) {
	aug := ubon.RandomAugmentation[float32](3, rand.New(rand.NewSource(1)))
	cfg := ubon.DefaultConfig(3)
	cfg.Trivial = false

	src, err := ubon.New(cfg, aug)
	require.NoError(t, err)
	cfg.Seed = 1234
	dst, err := ubon.New(cfg, aug)
	require.NoError(t, err)

	x := features(t, [][]float32{{0.1, 0.2, -0.3}, {1, -1, 0.5}})
	before, err := dst.Forward(x)
	require.NoError(t, err)
	other, err := src.Forward(x)
	require.NoError(t, err)
	require.NotEqual(t, other, before)

	for name, corrupt := range map[string]func(map[string]*tensor.Tensor[float32]){
		// The node scorer loads in full before the head fails.
		"missing head bias": func(sd map[string]*tensor.Tensor[float32]) {
			delete(sd, "head.0.bias")
		},
		"wrong scorer shape": func(sd map[string]*tensor.Tensor[float32]) {
			sd["node.scorer.2.weight"] = tensor.Zeros[float32](tensor.Shape{3, 3})
		},
		"wrong last head weight": func(sd map[string]*tensor.Tensor[float32]) {
			sd["head.2.weight"] = tensor.Zeros[float32](tensor.Shape{2, 64})
		},
	} {
		t.Run(name, func(t *testing.T) {
			sd := src.StateDict()
			corrupt(sd)
			require.Error(t, dst.LoadStateDict(sd))

			got, err := dst.Forward(x)
			require.NoError(t, err)
			assert.Equal(t, before, got)
		})
	}
}

func TestSeedDeterminism(t *testing.T) {
	aug := ubon.IdentityAugmentation[float32](4)
	x := features(t, [][]float32{{0.5, -0.5, 0.25, 1}})

	a := newModel(t, 4, true, aug)
	b := newModel(t, 4, true, aug)
	outA, err := a.Forward(x)
	require.NoError(t, err)
	outB, err := b.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, outA, outB)
}

// Weights are drawn as float32 for both precisions, so the two models agree
// up to float32 rounding.
func TestPrecisions_Agree(t *testing.T) {
	aug32 := ubon.RandomAugmentation[float32](3, rand.New(rand.NewSource(9)))
	aug64, err := ubon.NewAugmentation(tensor.Cast[float64](aug32.Tensor()))
	require.NoError(t, err)

	rows := [][]float32{{0.5, -0.25, 1.5}, {-2, 0.75, 0.125}}
	x32 := features(t, rows)
	x64 := tensor.Cast[float64](x32)

	model32 := newModel(t, 3, true, aug32)
	model64 := newModel(t, 3, true, aug64)

	f32, inv32, err := model32.Branches(x32)
	require.NoError(t, err)
	f64, inv64, err := model64.Branches(x64)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		assert.InDelta(t, f64.At(i), float64(f32.At(i)), 1e-4)
		assert.InDelta(t, inv64.At(i), float64(inv32.At(i)), 1e-4)
	}

	out32, err := model32.Forward(x32)
	require.NoError(t, err)
	out64, err := model64.Forward(x64)
	require.NoError(t, err)
	assert.InDeltaSlice(t, out64.Real(), out32.Real(), 1e-4)
}

func TestLogAmplitude(t *testing.T) {
	la := ubon.LogAmplitude{complex(math.Log(2), 0), complex(0, math.Pi), complex(1, 3*math.Pi)}
	assert.Equal(t, 3, la.Len())
	assert.InDeltaSlice(t, []float64{math.Log(2), 0, 1}, la.Real(), 1e-12)
	assert.InDeltaSlice(t, []float64{0, math.Pi, math.Pi}, la.Phase(), 1e-9)

	psi := la.Psi()
	assert.InDelta(t, 2, real(psi[0]), 1e-12)
	assert.InDelta(t, -1, real(psi[1]), 1e-12)
	assert.InDelta(t, -math.E, real(psi[2]), 1e-9)
}

func TestForward_Concurrent(t *testing.T) {
	model := newModel(t, 3, false, ubon.IdentityAugmentation[float32](3))
	x := features(t, [][]float32{{0.1, 0.2, 0.3}})
	want, err := model.Forward(x)
	require.NoError(t, err)

	type result struct {
		logPsi ubon.LogAmplitude
		err    error
	}
	done := make(chan result, 8)
	for range 8 {
		go func() {
			got, err := model.Forward(x)
			done <- result{got, err}
		}()
	}
	for range 8 {
		r := <-done
		require.NoError(t, r.err)
		assert.Equal(t, want, r.logPsi)
	}
}
