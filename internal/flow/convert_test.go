package flow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowml/flowpath/internal/tensor"
)

func TestScoreVectorFieldRoundTrip(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x := tensor.Randn[float64](tensor.Shape{4, 3, 8, 8}, backend)
	score := tensor.Randn[float64](tensor.Shape{4, 3, 8, 8}, backend)
	ts, err := tensor.FromSlice([]float64{0.15, 0.4, 0.6, 0.85}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	vf, err := p.VectorFieldFromScore(score, x, ts)
	require.NoError(t, err)

	back, err := p.ScoreFromVectorField(vf, x, ts)
	require.NoError(t, err)

	require.Equal(t, score.Shape(), back.Shape())
	for i := range score.Data() {
		assert.InDelta(t, score.Data()[i], back.Data()[i], 1e-9)
	}
}

func TestVectorFieldFromScoreWorkedExample(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	// t = 0.5, x = [[1, -1]], score = 0: the vector field reduces to the
	// drift term alpha_ratio * x = [[2, -2]].
	x, err := tensor.FromSlice([]float64{1, -1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	score := tensor.Zeros[float64](tensor.Shape{1, 2}, backend)
	ts, err := tensor.FromSlice([]float64{0.5}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	vf, err := p.VectorFieldFromScore(score, x, ts)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, vf.At(0, 0), 1e-15)
	assert.InDelta(t, -2.0, vf.At(0, 1), 1e-15)
}

// For Gaussian paths the denoiser and the score differ only by the factor
// -beta_t, so converting a score model through the vector-field view must
// land on noise = -beta_t * score.
func TestNoiseScoreRelation(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x := tensor.Randn[float64](tensor.Shape{3, 5}, backend)
	score := tensor.Randn[float64](tensor.Shape{3, 5}, backend)
	ts, err := tensor.FromSlice([]float64{0.2, 0.5, 0.8}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	vf, err := p.VectorFieldFromScore(score, x, ts)
	require.NoError(t, err)

	noise, err := p.NoiseFromVectorField(vf, x, ts)
	require.NoError(t, err)

	te, err := p.ExpandLike(ts, x)
	require.NoError(t, err)
	betaT, _ := p.Beta(te)
	want := score.Mul(betaT.Neg())

	for i := range want.Data() {
		assert.InDelta(t, want.Data()[i], noise.Data()[i], 1e-9)
	}
}

func TestConvertersPreserveShape(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	shape := tensor.Shape{4, 3, 8, 8}
	x := tensor.Randn[float64](shape, backend)
	model := tensor.Randn[float64](shape, backend)
	ts, err := tensor.FromSlice([]float64{0.2, 0.4, 0.6, 0.8}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	score, err := p.ScoreFromVectorField(model, x, ts)
	require.NoError(t, err)
	assert.Equal(t, shape, score.Shape())

	noise, err := p.NoiseFromVectorField(model, x, ts)
	require.NoError(t, err)
	assert.Equal(t, shape, noise.Shape())

	vf, err := p.VectorFieldFromScore(model, x, ts)
	require.NoError(t, err)
	assert.Equal(t, shape, vf.Shape())
}

func TestScoreFromVectorFieldDegenerateVariance(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	// At t = 1 the variance beta^2 + t*beta vanishes; the conversion
	// propagates non-finite values instead of failing.
	x, err := tensor.FromSlice([]float64{1}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)
	vf, err := tensor.FromSlice([]float64{2}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)
	ts, err := tensor.FromSlice([]float64{1}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	score, err := p.ScoreFromVectorField(vf, x, ts)
	require.NoError(t, err)

	v := score.At(0, 0)
	assert.True(t, math.IsInf(v, 0) || math.IsNaN(v), "expected non-finite value, got %v", v)
}

func TestMean(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x0, err := tensor.FromSlice([]float64{0, 4}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	x1, err := tensor.FromSlice([]float64{8, 0}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	ts, err := tensor.FromSlice([]float64{0.25}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	mean, err := p.Mean(ts, x0, x1)
	require.NoError(t, err)

	// 0.25 * x1 + 0.75 * x0.
	assert.InDelta(t, 2.0, mean.At(0, 0), 1e-15)
	assert.InDelta(t, 3.0, mean.At(0, 1), 1e-15)
}

func TestMeanEndpoints(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x0 := tensor.Randn[float64](tensor.Shape{2, 3}, backend)
	x1 := tensor.Randn[float64](tensor.Shape{2, 3}, backend)

	t0 := tensor.Zeros[float64](tensor.Shape{2}, backend)
	mean, err := p.Mean(t0, x0, x1)
	require.NoError(t, err)
	for i := range x0.Data() {
		assert.InDelta(t, x0.Data()[i], mean.Data()[i], 1e-15)
	}

	t1 := tensor.Ones[float64](tensor.Shape{2}, backend)
	mean, err = p.Mean(t1, x0, x1)
	require.NoError(t, err)
	for i := range x1.Data() {
		assert.InDelta(t, x1.Data()[i], mean.Data()[i], 1e-15)
	}
}
