// Package blur provides the frequency-domain transform pair and the
// heat-dissipation blurring collaborator used by blurred probability paths.
package blur

import (
	"fmt"
	"math"

	"github.com/flowml/flowpath/internal/parallel"
	"github.com/flowml/flowpath/internal/tensor"
)

// DCT2D computes the orthonormal type-II discrete cosine transform over the
// trailing two dimensions of x. The input must have rank >= 2; leading
// dimensions are treated as independent planes.
func DCT2D[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return transform2D(x, dct1D)
}

// IDCT2D computes the inverse of DCT2D (the orthonormal type-III DCT) over
// the trailing two dimensions of x.
func IDCT2D[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return transform2D(x, idct1D)
}

func transform2D[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B], axis func(dst, src []float64)) (*tensor.Tensor[T, B], error) {
	shape := x.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("2D transform requires rank >= 2, got shape %v", shape)
	}

	h := shape[len(shape)-2]
	w := shape[len(shape)-1]
	planes := x.NumElements() / (h * w)

	out := tensor.Zeros[T](shape, x.Backend())
	src := x.Data()
	dst := out.Data()

	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1 // planes are coarse-grained work items
	parallel.For(planes, func(p int) {
		plane := make([]float64, h*w)
		base := p * h * w
		for i := range plane {
			plane[i] = float64(src[base+i])
		}

		// Rows, then columns; the 2D transform is separable.
		rowOut := make([]float64, h*w)
		for r := 0; r < h; r++ {
			axis(rowOut[r*w:(r+1)*w], plane[r*w:(r+1)*w])
		}

		colIn := make([]float64, h)
		colOut := make([]float64, h)
		for c := 0; c < w; c++ {
			for r := 0; r < h; r++ {
				colIn[r] = rowOut[r*w+c]
			}
			axis(colOut, colIn)
			for r := 0; r < h; r++ {
				dst[base+r*w+c] = T(colOut[r])
			}
		}
	}, cfg)

	return out, nil
}

// dct1D computes the orthonormal DCT-II of src into dst.
func dct1D(dst, src []float64) {
	n := len(src)
	scale0 := math.Sqrt(1.0 / float64(n))
	scale := math.Sqrt(2.0 / float64(n))

	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += src[i] * math.Cos(math.Pi*(2*float64(i)+1)*float64(k)/(2*float64(n)))
		}
		if k == 0 {
			dst[k] = sum * scale0
		} else {
			dst[k] = sum * scale
		}
	}
}

// idct1D computes the orthonormal DCT-III of src into dst, the exact inverse
// of dct1D.
func idct1D(dst, src []float64) {
	n := len(src)
	scale0 := math.Sqrt(1.0 / float64(n))
	scale := math.Sqrt(2.0 / float64(n))

	for i := 0; i < n; i++ {
		sum := src[0] * scale0
		for k := 1; k < n; k++ {
			sum += src[k] * scale * math.Cos(math.Pi*(2*float64(i)+1)*float64(k)/(2*float64(n)))
		}
		dst[i] = sum
	}
}
