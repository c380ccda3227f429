package flow

import (
	"fmt"

	"github.com/flowml/flowpath/internal/blur"
	"github.com/flowml/flowpath/internal/tensor"
)

// Config is the immutable Plan configuration, fixed at construction.
type Config struct {
	// Sigma is the noise floor of the path construction.
	Sigma float64
	// DiffusionForm selects the default diffusion-coefficient schedule.
	DiffusionForm DiffusionForm
	// UseBlurring enables the frequency-domain blurring collaborator.
	UseBlurring bool
	// BlurSigmaMax is the blur width at t = 0.
	BlurSigmaMax float64
	// BlurUpscale is the frequency-grid upscale factor for blurring.
	BlurUpscale int
}

// DefaultConfig returns the configuration used when nothing is specified:
// no noise floor, no diffusion, no blurring.
func DefaultConfig() Config {
	return Config{
		Sigma:         0,
		DiffusionForm: FormNone,
		UseBlurring:   false,
		BlurSigmaMax:  3,
		BlurUpscale:   4,
	}
}

// Plan is the linear-coupling path engine. It holds no state beyond the
// configuration and the compute backend; all methods are pure.
type Plan[T tensor.DType, B tensor.Backend] struct {
	cfg     Config
	backend B
}

// NewPlan creates a Plan from a configuration and a compute backend.
func NewPlan[T tensor.DType, B tensor.Backend](cfg Config, b B) *Plan[T, B] {
	return &Plan[T, B]{cfg: cfg, backend: b}
}

// Config returns the Plan configuration.
func (p *Plan[T, B]) Config() Config {
	return p.cfg
}

// Backend returns the compute backend.
func (p *Plan[T, B]) Backend() B {
	return p.backend
}

// Blurrer constructs the frequency-domain blurring collaborator from the
// Plan configuration. Returns nil when blurring is disabled.
func (p *Plan[T, B]) Blurrer() *blur.Blurrer[T, B] {
	if !p.cfg.UseBlurring {
		return nil
	}
	return blur.New[T, B](p.cfg.BlurSigmaMax, p.cfg.BlurUpscale, p.backend)
}

// ExpandLike reshapes a per-sample time vector t of shape (B,) to
// (B, 1, ..., 1) so it broadcasts against a data tensor x of shape
// (B, d1, ..., dk).
func (p *Plan[T, B]) ExpandLike(t, x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	if len(t.Shape()) != 1 {
		return nil, fmt.Errorf("time tensor must be rank 1, got shape %v", t.Shape())
	}
	if len(x.Shape()) == 0 {
		return nil, fmt.Errorf("data tensor must have a batch dimension, got shape %v", x.Shape())
	}
	if t.Shape()[0] != x.Shape()[0] {
		return nil, fmt.Errorf("time length %d does not match batch dimension %d", t.Shape()[0], x.Shape()[0])
	}

	newShape := make([]int, len(x.Shape()))
	newShape[0] = t.Shape()[0]
	for i := 1; i < len(newShape); i++ {
		newShape[i] = 1
	}
	return t.Reshape(newShape...), nil
}

// Alpha computes the data coefficient along the path and its time
// derivative. CondOT construction: alpha_t = t, alpha_t_dot = 1.
func (p *Plan[T, B]) Alpha(t *tensor.Tensor[T, B]) (alphaT, alphaDot *tensor.Tensor[T, B]) {
	return t, tensor.Ones[T](t.Shape(), p.backend)
}

// Beta computes the noise coefficient along the path and its time
// derivative. CondOT construction: beta_t = 1 - t, beta_t_dot = -1.
func (p *Plan[T, B]) Beta(t *tensor.Tensor[T, B]) (betaT, betaDot *tensor.Tensor[T, B]) {
	return t.Neg().AddScalar(1), tensor.Full[T](t.Shape(), -1, p.backend)
}

// AlphaRatio computes alpha_t_dot / alpha_t, which is 1/t for the CondOT
// construction. Undefined at t = 0: the division yields +Inf there.
func (p *Plan[T, B]) AlphaRatio(t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return tensor.Ones[T](t.Shape(), p.backend).Div(t)
}

// Drift computes the x-linear part of the probability-flow vector field and
// the coefficient of its score-linear part:
//
//	drift      = (alpha_t_dot / alpha_t) * x
//	scoreCoef  = (alpha_t_dot / alpha_t) * beta_t^2 - beta_t * beta_t_dot
//
// so that vectorField = drift + scoreCoef * score. The split lets a
// vector-field model be converted to and from a score model without
// retraining (see VectorFieldFromScore and ScoreFromVectorField).
func (p *Plan[T, B]) Drift(x, t *tensor.Tensor[T, B]) (drift, scoreCoef *tensor.Tensor[T, B], err error) {
	te, err := p.ExpandLike(t, x)
	if err != nil {
		return nil, nil, err
	}

	ratio := p.AlphaRatio(te)
	drift = ratio.Mul(x)
	return drift, p.scoreCoefficient(te), nil
}

// scoreCoefficient computes alpha_ratio * beta_t^2 - beta_t * beta_t_dot for
// an already expanded time tensor.
func (p *Plan[T, B]) scoreCoefficient(te *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	ratio := p.AlphaRatio(te)
	betaT, betaDot := p.Beta(te)
	return ratio.Mul(betaT.Square()).Sub(betaT.Mul(betaDot))
}
