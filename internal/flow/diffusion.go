package flow

import (
	"fmt"
	"math"

	"github.com/flowml/flowpath/internal/tensor"
)

// DiffusionForm names one schedule from the closed set of diffusion
// coefficients. The zero value is FormNone.
type DiffusionForm int

// The recognized diffusion-coefficient schedules.
const (
	FormNone DiffusionForm = iota
	FormConstant
	FormSBDM
	FormSigma
	FormLinear
	FormDecreasing
	FormIncreasingDecreasing
	FormLog
)

var formNames = map[DiffusionForm]string{
	FormNone:                 "none",
	FormConstant:             "constant",
	FormSBDM:                 "SBDM",
	FormSigma:                "sigma",
	FormLinear:               "linear",
	FormDecreasing:           "decreasing",
	FormIncreasingDecreasing: "increasing-decreasing",
	FormLog:                  "log",
}

// String returns the canonical schedule name.
func (f DiffusionForm) String() string {
	if name, ok := formNames[f]; ok {
		return name
	}
	return fmt.Sprintf("DiffusionForm(%d)", int(f))
}

// ParseDiffusionForm maps a canonical schedule name to its DiffusionForm.
// Any other name yields a not-implemented error naming the value.
func ParseDiffusionForm(name string) (DiffusionForm, error) {
	for f, n := range formNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("diffusion form %q is not implemented", name)
}

// Forms returns the recognized schedules in declaration order.
func Forms() []DiffusionForm {
	return []DiffusionForm{
		FormNone, FormConstant, FormSBDM, FormSigma,
		FormLinear, FormDecreasing, FormIncreasingDecreasing, FormLog,
	}
}

// Diffusion computes the diffusion coefficient of the SDE at time t.
//
// The result is either a single-element tensor (forms with no time
// dependence) or shaped (B, 1, ..., 1); both broadcast against x. An
// unrecognized form yields a not-implemented error.
func (p *Plan[T, B]) Diffusion(x, t *tensor.Tensor[T, B], form DiffusionForm, norm float64) (*tensor.Tensor[T, B], error) {
	te, err := p.ExpandLike(t, x)
	if err != nil {
		return nil, err
	}

	switch form {
	case FormNone:
		return tensor.Zeros[T](tensor.Shape{1}, p.backend), nil
	case FormConstant:
		return tensor.Full[T](tensor.Shape{1}, T(norm), p.backend), nil
	case FormSBDM:
		// Reuses the score coefficient from the drift computation.
		return p.scoreCoefficient(te).MulScalar(T(2 * norm)), nil
	case FormSigma:
		betaT, _ := p.Beta(te)
		return betaT.MulScalar(T(norm)), nil
	case FormLinear:
		return te.Neg().AddScalar(1).MulScalar(T(norm)), nil
	case FormDecreasing:
		// 0.25 * (norm * cos(pi*t) + 1)^2
		return te.MulScalar(T(math.Pi)).Cos().MulScalar(T(norm)).AddScalar(1).Square().MulScalar(0.25), nil
	case FormIncreasingDecreasing:
		// norm * sin(pi*t)^2
		return te.MulScalar(T(math.Pi)).Sin().Square().MulScalar(T(norm)), nil
	case FormLog:
		// norm * ln(t - t^2 + 1)
		return te.Sub(te.Square()).AddScalar(1).Log().MulScalar(T(norm)), nil
	default:
		return nil, fmt.Errorf("diffusion form %q is not implemented", form)
	}
}

// DDiffusion computes the exact time derivative of the diffusion schedule.
//
// The SBDM and sigma schedules carry no derivative here; callers needing
// one must differentiate the schedule themselves. Unknown forms fail the
// same way as Diffusion.
func (p *Plan[T, B]) DDiffusion(x, t *tensor.Tensor[T, B], form DiffusionForm, norm float64) (*tensor.Tensor[T, B], error) {
	te, err := p.ExpandLike(t, x)
	if err != nil {
		return nil, err
	}

	switch form {
	case FormNone, FormConstant:
		return tensor.Zeros[T](tensor.Shape{1}, p.backend), nil
	case FormLinear:
		// Negative slope: noise injection tends to zero towards t = 1.
		return tensor.Full[T](tensor.Shape{1}, T(-norm), p.backend), nil
	case FormDecreasing:
		// -0.5 * pi * norm * sin(pi*t) * (norm * cos(pi*t) + 1)
		pt := te.MulScalar(T(math.Pi))
		return pt.Sin().MulScalar(T(-0.5 * math.Pi * norm)).Mul(pt.Cos().MulScalar(T(norm)).AddScalar(1)), nil
	case FormIncreasingDecreasing:
		// 2 * norm * pi * sin(pi*t) * cos(pi*t)
		pt := te.MulScalar(T(math.Pi))
		return pt.Sin().Mul(pt.Cos()).MulScalar(T(2 * norm * math.Pi)), nil
	case FormLog:
		// norm * (1 - 2t) / (t - t^2 + 1)
		numer := te.MulScalar(-2).AddScalar(1).MulScalar(T(norm))
		denom := te.Sub(te.Square()).AddScalar(1)
		return numer.Div(denom), nil
	case FormSBDM, FormSigma:
		return nil, fmt.Errorf("derivative of diffusion form %q is not implemented", form)
	default:
		return nil, fmt.Errorf("diffusion form %q is not implemented", form)
	}
}
