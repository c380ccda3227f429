package cpu

import (
	"fmt"

	"github.com/flowml/flowpath/internal/tensor"
)

// Expand broadcasts the tensor to a new shape.
// Each input dimension must equal the target dimension or be 1.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()

	if len(newShape) < len(xShape) {
		panic(fmt.Sprintf("expand: new shape %v has fewer dimensions than input shape %v",
			newShape, xShape))
	}

	offset := len(newShape) - len(xShape)
	for i := 0; i < len(xShape); i++ {
		if xShape[i] != 1 && xShape[i] != newShape[offset+i] {
			panic(fmt.Sprintf("expand: cannot expand dimension %d from %d to %d",
				i, xShape[i], newShape[offset+i]))
		}
	}

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}

	outStrides := newShape.ComputeStrides()
	inStrides := broadcastStridesFor(xShape, newShape)

	switch x.DType() {
	case tensor.Float32:
		expandKernel(result.AsFloat32(), x.AsFloat32(), outStrides, inStrides)
	case tensor.Float64:
		expandKernel(result.AsFloat64(), x.AsFloat64(), outStrides, inStrides)
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %s", x.DType()))
	}

	return result
}

func expandKernel[E tensor.DType](dst, src []E, outStrides, inStrides []int) {
	for i := range dst {
		srcIdx := 0
		rem := i
		for d := 0; d < len(outStrides); d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			srcIdx += coord * inStrides[d]
		}
		dst[i] = src[srcIdx]
	}
}
