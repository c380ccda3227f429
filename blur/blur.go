// Copyright 2025 The FlowPath Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package blur provides frequency-domain Gaussian blurring over the
// trailing two dimensions of a tensor, used to dissipate high-frequency
// content along the noise side of a probability path.
package blur

import (
	"github.com/flowml/flowpath/internal/blur"
	"github.com/flowml/flowpath/tensor"
)

// Blurrer applies heat-dissipation blurring in the DCT frequency domain.
type Blurrer[T tensor.DType, B tensor.Backend] = blur.Blurrer[T, B]

// New creates a Blurrer. sigmaMax is the blur width at t = 0; upscale is
// the factor by which the frequency grid is refined.
func New[T tensor.DType, B tensor.Backend](sigmaMax float64, upscale int, b B) *Blurrer[T, B] {
	return blur.New[T, B](sigmaMax, upscale, b)
}

// DCT2D computes the orthonormal type-II discrete cosine transform over
// the trailing two dimensions of x.
func DCT2D[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return blur.DCT2D(x)
}

// IDCT2D computes the orthonormal type-III discrete cosine transform over
// the trailing two dimensions of x, inverting DCT2D.
func IDCT2D[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return blur.IDCT2D(x)
}
