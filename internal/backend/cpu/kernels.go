package cpu

import (
	"github.com/flowml/flowpath/internal/parallel"
	"github.com/flowml/flowpath/internal/tensor"
)

// vectorizedKernel computes dst[i] = op(a[i], b[i]) for same-shape operands.
func vectorizedKernel[E tensor.DType](dst, a, b []E, op func(E, E) E, cfg parallel.Config) {
	parallel.ForChunks(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = op(a[i], b[i])
		}
	}, cfg)
}

// broadcastKernel computes dst = op(a, b) where a and b are indexed through
// broadcast strides (stride 0 along broadcast dimensions).
func broadcastKernel[E tensor.DType](dst, a, b []E, aShape, bShape, outShape tensor.Shape,
	op func(E, E) E, cfg parallel.Config) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStridesFor(aShape, outShape)
	bStrides := broadcastStridesFor(bShape, outShape)

	parallel.ForChunks(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			ai, bi := 0, 0
			rem := i
			for d := 0; d < len(outStrides); d++ {
				coord := rem / outStrides[d]
				rem %= outStrides[d]
				ai += coord * aStrides[d]
				bi += coord * bStrides[d]
			}
			dst[i] = op(a[ai], b[bi])
		}
	}, cfg)
}

// unaryKernel computes dst[i] = op(x[i]).
func unaryKernel[E tensor.DType](dst, x []E, op func(E) E, cfg parallel.Config) {
	parallel.ForChunks(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = op(x[i])
		}
	}, cfg)
}

// broadcastStridesFor computes strides for indexing inShape as broadcast to
// outShape. Padded and size-1 dimensions get stride 0.
func broadcastStridesFor(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	origStrides := inShape.ComputeStrides()
	offset := len(outShape) - len(inShape)

	for i := range outShape {
		j := i - offset
		switch {
		case j < 0 || inShape[j] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[j]
		}
	}
	return strides
}
