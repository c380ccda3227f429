package tensor

// Backend defines the interface that compute backends must implement.
// Backends perform the actual arithmetic for tensor operations; the path
// engine is expressed entirely in terms of this op set.
//
// All binary operations follow NumPy broadcasting rules. Backends panic on
// shape or dtype misuse (caller errors), matching the creation functions.
type Backend interface {
	// Element-wise binary operations (broadcasting).
	Add(a, b *RawTensor) *RawTensor // a + b
	Sub(a, b *RawTensor) *RawTensor // a - b
	Mul(a, b *RawTensor) *RawTensor // a * b
	Div(a, b *RawTensor) *RawTensor // a / b

	// Scalar operations (element-wise with a scalar).
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Element-wise unary math.
	Neg(x *RawTensor) *RawTensor  // -x
	Sin(x *RawTensor) *RawTensor  // sine, radians
	Cos(x *RawTensor) *RawTensor  // cosine, radians
	Log(x *RawTensor) *RawTensor  // natural logarithm
	Exp(x *RawTensor) *RawTensor  // exponential
	Sqrt(x *RawTensor) *RawTensor // square root

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor // view under a new shape
	Expand(x *RawTensor, shape Shape) *RawTensor     // broadcast to shape

	// Metadata.
	Name() string
	Device() Device
}
