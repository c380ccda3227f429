// Package cpu implements the pure-Go CPU backend for the FlowPath tensor runtime.
package cpu

import (
	"fmt"

	"github.com/flowml/flowpath/internal/parallel"
	"github.com/flowml/flowpath/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
// Element-wise kernels are chunk-parallel for large tensors.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE-754 and produces Inf or NaN.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binary dispatches an element-wise binary op over the supported dtypes.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor,
	op32 func(float32, float32) float32, op64 func(float64, float64) float64) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		if needsBroadcast {
			broadcastKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(),
				a.Shape(), b.Shape(), outShape, op32, cpu.par)
		} else {
			vectorizedKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), op32, cpu.par)
		}
	case tensor.Float64:
		if needsBroadcast {
			broadcastKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(),
				a.Shape(), b.Shape(), outShape, op64, cpu.par)
		} else {
			vectorizedKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), op64, cpu.par)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

// Reshape returns a zero-copy view of the tensor under a new shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}
