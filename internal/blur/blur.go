package blur

import (
	"fmt"
	"math"

	"github.com/flowml/flowpath/internal/tensor"
)

// Blurrer applies heat-dissipation blurring in the DCT frequency domain.
// Damping frequency (i, j) by exp(-lambda_ij * sigma^2 / 2) is equivalent to
// convolving with a Gaussian of width sigma under reflective boundaries.
type Blurrer[T tensor.DType, B tensor.Backend] struct {
	sigmaMax float64
	upscale  int
	backend  B
}

// New creates a Blurrer. sigmaMax is the blur width at t = 0; upscale is the
// factor by which the frequency grid is refined (larger values weaken
// boundary effects).
func New[T tensor.DType, B tensor.Backend](sigmaMax float64, upscale int, b B) *Blurrer[T, B] {
	if upscale < 1 {
		upscale = 1
	}
	return &Blurrer[T, B]{sigmaMax: sigmaMax, upscale: upscale, backend: b}
}

// SigmaMax returns the maximum blur width.
func (bl *Blurrer[T, B]) SigmaMax() float64 {
	return bl.sigmaMax
}

// SigmaAt maps a path time in [0, 1] to a blur width: maximal at t = 0
// (pure noise side) and vanishing at t = 1 (data side).
func (bl *Blurrer[T, B]) SigmaAt(t float64) float64 {
	return bl.sigmaMax * (1 - t)
}

// Blur applies frequency-domain Gaussian blurring of width sigma over the
// trailing two dimensions of x. sigma = 0 returns an unchanged copy.
func (bl *Blurrer[T, B]) Blur(x *tensor.Tensor[T, B], sigma float64) (*tensor.Tensor[T, B], error) {
	shape := x.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("blur requires rank >= 2, got shape %v", shape)
	}
	if sigma == 0 {
		return x.Clone(), nil
	}

	freq, err := DCT2D(x)
	if err != nil {
		return nil, err
	}

	h := shape[len(shape)-2]
	w := shape[len(shape)-1]
	planes := x.NumElements() / (h * w)
	tau := sigma * sigma / 2

	// Frequencies are measured on the upscale-refined grid.
	damp := make([]float64, h*w)
	for i := 0; i < h; i++ {
		wi := math.Pi * float64(i) / float64(bl.upscale*h)
		for j := 0; j < w; j++ {
			wj := math.Pi * float64(j) / float64(bl.upscale*w)
			damp[i*w+j] = math.Exp(-(wi*wi + wj*wj) * tau)
		}
	}

	data := freq.Data()
	for p := 0; p < planes; p++ {
		base := p * h * w
		for i, d := range damp {
			data[base+i] = T(float64(data[base+i]) * d)
		}
	}

	return IDCT2D(freq)
}
