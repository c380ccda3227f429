package cpu

import (
	"fmt"
	"math"

	"github.com/flowml/flowpath/internal/tensor"
)

// Element-wise unary math. Domain violations (log of a non-positive value,
// sqrt of a negative value) propagate IEEE-754 non-finite results instead of
// failing: the path formulas are deliberately permissive at the interval
// endpoints and callers are expected to stay inside (0, 1).

// Neg computes element-wise negation: -x.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("neg", x,
		func(v float32) float32 { return -v },
		func(v float64) float64 { return -v })
}

// Sin computes element-wise sine: sin(x).
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sin", x,
		func(v float32) float32 { return float32(math.Sin(float64(v))) },
		math.Sin)
}

// Cos computes element-wise cosine: cos(x).
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("cos", x,
		func(v float32) float32 { return float32(math.Cos(float64(v))) },
		math.Cos)
}

// Log computes element-wise natural logarithm: ln(x).
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("log", x,
		func(v float32) float32 { return float32(math.Log(float64(v))) },
		math.Log)
}

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x,
		func(v float32) float32 { return float32(math.Exp(float64(v))) },
		math.Exp)
}

// Sqrt computes element-wise square root: sqrt(x).
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sqrt", x,
		func(v float32) float32 { return float32(math.Sqrt(float64(v))) },
		math.Sqrt)
}

func (cpu *CPUBackend) unary(name string, x *tensor.RawTensor,
	op32 func(float32) float32, op64 func(float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		unaryKernel(result.AsFloat32(), x.AsFloat32(), op32, cpu.par)
	case tensor.Float64:
		unaryKernel(result.AsFloat64(), x.AsFloat64(), op64, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}
