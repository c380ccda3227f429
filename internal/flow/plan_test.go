package flow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowml/flowpath/internal/backend/cpu"
	"github.com/flowml/flowpath/internal/tensor"
)

func newTestPlan() *Plan[float64, *cpu.CPUBackend] {
	return NewPlan[float64](DefaultConfig(), cpu.New())
}

func TestCoefficientIdentity(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	// alpha_t + beta_t == 1 and alpha_dot == -beta_dot == 1 across (0, 1).
	ts := tensor.Linspace[float64](0.01, 0.99, 50, backend)
	alphaT, alphaDot := p.Alpha(ts)
	betaT, betaDot := p.Beta(ts)

	sum := alphaT.Add(betaT)
	for i, v := range sum.Data() {
		assert.InDelta(t, 1.0, v, 1e-15, "alpha+beta at index %d", i)
	}
	for i := range alphaDot.Data() {
		assert.Equal(t, 1.0, alphaDot.Data()[i])
		assert.Equal(t, -1.0, betaDot.Data()[i])
	}
}

func TestAlphaRatio(t *testing.T) {
	p := newTestPlan()

	ts, err := tensor.FromSlice([]float64{0.25, 0.5, 1.0}, tensor.Shape{3}, p.Backend())
	require.NoError(t, err)

	ratio := p.AlphaRatio(ts)
	want := []float64{4, 2, 1}
	for i, w := range want {
		assert.InDelta(t, w, ratio.Data()[i], 1e-15)
	}
}

func TestAlphaRatioAtZeroIsInf(t *testing.T) {
	p := newTestPlan()

	ts, err := tensor.FromSlice([]float64{0}, tensor.Shape{1}, p.Backend())
	require.NoError(t, err)

	ratio := p.AlphaRatio(ts)
	assert.True(t, math.IsInf(ratio.Data()[0], 1), "1/0 should be +Inf, got %v", ratio.Data()[0])
}

func TestExpandLike(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x := tensor.Zeros[float64](tensor.Shape{4, 3, 8, 8}, backend)
	ts, err := tensor.FromSlice([]float64{0.1, 0.2, 0.3, 0.4}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	te, err := p.ExpandLike(ts, x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 1, 1, 1}, te.Shape())
	assert.Equal(t, 0.3, te.At(2, 0, 0, 0))
}

func TestExpandLikeBatchMismatch(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x := tensor.Zeros[float64](tensor.Shape{4, 3}, backend)
	ts, err := tensor.FromSlice([]float64{0.1, 0.2, 0.3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	_, err = p.ExpandLike(ts, x)
	assert.ErrorContains(t, err, "does not match batch dimension")
}

func TestExpandLikeRejectsHigherRankTime(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
	ts := tensor.Zeros[float64](tensor.Shape{2, 1}, backend)

	_, err := p.ExpandLike(ts, x)
	assert.ErrorContains(t, err, "rank 1")
}

func TestDriftWorkedExample(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	// t = 0.5: alpha = beta = 0.5, alpha_ratio = 2.
	x, err := tensor.FromSlice([]float64{1, -1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	ts, err := tensor.FromSlice([]float64{0.5}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	drift, scoreCoef, err := p.Drift(x, ts)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, drift.At(0, 0), 1e-15)
	assert.InDelta(t, -2.0, drift.At(0, 1), 1e-15)

	// scoreCoef = 2 * 0.25 - 0.5 * (-1) = 1.
	assert.InDelta(t, 1.0, scoreCoef.At(0, 0), 1e-15)
}

func TestDriftShapePreservation(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x := tensor.Randn[float64](tensor.Shape{4, 3, 8, 8}, backend)
	ts, err := tensor.FromSlice([]float64{0.2, 0.4, 0.6, 0.8}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	drift, scoreCoef, err := p.Drift(x, ts)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{4, 3, 8, 8}, drift.Shape())
	assert.Equal(t, tensor.Shape{4, 1, 1, 1}, scoreCoef.Shape())
}

func TestPlanConfigIsFixed(t *testing.T) {
	cfg := Config{Sigma: 0.1, DiffusionForm: FormSigma, UseBlurring: true, BlurSigmaMax: 2, BlurUpscale: 4}
	p := NewPlan[float64](cfg, cpu.New())

	assert.Equal(t, cfg, p.Config())
	assert.NotNil(t, p.Blurrer())

	p2 := NewPlan[float64](DefaultConfig(), cpu.New())
	assert.Nil(t, p2.Blurrer())
}

func TestPlanConcurrentUse(t *testing.T) {
	p := newTestPlan()
	backend := p.Backend()

	x := tensor.Randn[float64](tensor.Shape{8, 4}, backend)
	ts := tensor.Full[float64](tensor.Shape{8}, 0.5, backend)

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, _, err := p.Drift(x, ts)
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		require.NoError(t, <-done)
	}
}
