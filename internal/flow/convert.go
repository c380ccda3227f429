package flow

import (
	"github.com/flowml/flowpath/internal/tensor"
)

// Conversions between the three equivalent parametrizations of a trained
// model output: vector field, score function, and noise predictor. They let
// a single network be read under any of the three objectives without
// retraining.

// ScoreFromVectorField transforms a vector-field model output into the score
// function at (x, t):
//
//	reverseRatio = alpha_t / alpha_t_dot
//	variance     = beta_t^2 - reverseRatio * beta_t_dot * beta_t
//	score        = (reverseRatio * vectorField - x) / variance
//
// The variance vanishes on a locus near t = 1; evaluation there produces
// non-finite values rather than an error.
func (p *Plan[T, B]) ScoreFromVectorField(vectorField, x, t *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	te, err := p.ExpandLike(t, x)
	if err != nil {
		return nil, err
	}

	alphaT, alphaDot := p.Alpha(te)
	betaT, betaDot := p.Beta(te)

	reverseRatio := alphaT.Div(alphaDot)
	variance := betaT.Square().Sub(reverseRatio.Mul(betaDot).Mul(betaT))
	return reverseRatio.Mul(vectorField).Sub(x).Div(variance), nil
}

// NoiseFromVectorField transforms a vector-field model output into the noise
// (denoiser) parametrization at (x, t):
//
//	denominator = reverseRatio * beta_t_dot - beta_t
//	noise       = (reverseRatio * vectorField - x) / denominator
//
// Same zero-denominator caveat as ScoreFromVectorField.
func (p *Plan[T, B]) NoiseFromVectorField(vectorField, x, t *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	te, err := p.ExpandLike(t, x)
	if err != nil {
		return nil, err
	}

	alphaT, alphaDot := p.Alpha(te)
	betaT, betaDot := p.Beta(te)

	reverseRatio := alphaT.Div(alphaDot)
	denominator := reverseRatio.Mul(betaDot).Sub(betaT)
	return reverseRatio.Mul(vectorField).Sub(x).Div(denominator), nil
}

// VectorFieldFromScore transforms a score model output into the vector-field
// parametrization, inverting the affine relation established by Drift:
//
//	vectorField = scoreCoef * score + drift
//
// Well-defined for every t where Drift is (t != 0).
func (p *Plan[T, B]) VectorFieldFromScore(score, x, t *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	drift, scoreCoef, err := p.Drift(x, t)
	if err != nil {
		return nil, err
	}
	return scoreCoef.Mul(score).Add(drift), nil
}

// Mean computes the mean of the conditional probability path given its
// endpoints, mu_t = alpha_t * x1 + beta_t * x0.
func (p *Plan[T, B]) Mean(t, x0, x1 *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	te, err := p.ExpandLike(t, x1)
	if err != nil {
		return nil, err
	}

	alphaT, _ := p.Alpha(te)
	betaT, _ := p.Beta(te)
	return alphaT.Mul(x1).Add(betaT.Mul(x0)), nil
}
