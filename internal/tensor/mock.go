package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// MulScalar multiplies each element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v * s })
}

// AddScalar adds a scalar to each element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from each element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v - s })
}

// DivScalar divides each element by a scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v / s })
}

// Neg negates each element.
func (m *MockBackend) Neg(x *RawTensor) *RawTensor {
	return m.unary(x, func(v float64) float64 { return -v })
}

// Sin computes element-wise sine.
func (m *MockBackend) Sin(x *RawTensor) *RawTensor {
	return m.unary(x, math.Sin)
}

// Cos computes element-wise cosine.
func (m *MockBackend) Cos(x *RawTensor) *RawTensor {
	return m.unary(x, math.Cos)
}

// Log computes element-wise natural logarithm.
func (m *MockBackend) Log(x *RawTensor) *RawTensor {
	return m.unary(x, math.Log)
}

// Exp computes element-wise exponential.
func (m *MockBackend) Exp(x *RawTensor) *RawTensor {
	return m.unary(x, math.Exp)
}

// Sqrt computes element-wise square root.
func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	return m.unary(x, math.Sqrt)
}

// Reshape returns the data under a new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Expand broadcasts the tensor to a new shape.
func (m *MockBackend) Expand(x *RawTensor, shape Shape) *RawTensor {
	zeros, err := NewRaw(shape, x.DType(), m.Device())
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}
	// 0 + x broadcasts x to the target shape.
	return m.Add(zeros, x)
}

func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		ai, bi := 0, 0
		rem := i
		for d := 0; d < len(outShape); d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			ai += coord * aStrides[d]
			bi += coord * bStrides[d]
		}
		setFloat(result, i, op(getFloat(a, ai), getFloat(b, bi)))
	}
	return result
}

func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	for i := 0; i < x.NumElements(); i++ {
		setFloat(result, i, op(getFloat(x, i)))
	}
	return result
}

// broadcastStrides computes strides for indexing inShape as if it were
// broadcast to outShape; broadcast dimensions get stride 0.
func broadcastStrides(inShape, outShape Shape) []int {
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

func getFloat(r *RawTensor, i int) float64 {
	switch r.DType() {
	case Float32:
		return float64(r.AsFloat32()[i])
	case Float64:
		return r.AsFloat64()[i]
	default:
		panic("unsupported dtype")
	}
}

func setFloat(r *RawTensor, i int, v float64) {
	switch r.DType() {
	case Float32:
		r.AsFloat32()[i] = float32(v)
	case Float64:
		r.AsFloat64()[i] = v
	default:
		panic("unsupported dtype")
	}
}

func scalarToFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}
