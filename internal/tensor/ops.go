package tensor

// Typed wrappers over the backend op set. All operations return fresh
// tensors; no wrapper mutates its receiver or arguments.

// Add performs element-wise addition with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE-754 semantics and yields non-finite values.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Div(t.raw, other.raw), t.backend)
}

// MulScalar multiplies each element by a scalar value.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.MulScalar(t.raw, scalar), t.backend)
}

// AddScalar adds a scalar value to each element.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.AddScalar(t.raw, scalar), t.backend)
}

// SubScalar subtracts a scalar value from each element.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.SubScalar(t.raw, scalar), t.backend)
}

// DivScalar divides each element by a scalar value.
func (t *Tensor[T, B]) DivScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.DivScalar(t.raw, scalar), t.backend)
}

// Neg negates each element.
func (t *Tensor[T, B]) Neg() *Tensor[T, B] {
	return New[T, B](t.backend.Neg(t.raw), t.backend)
}

// Sin computes the sine of each element (input in radians).
func (t *Tensor[T, B]) Sin() *Tensor[T, B] {
	return New[T, B](t.backend.Sin(t.raw), t.backend)
}

// Cos computes the cosine of each element (input in radians).
func (t *Tensor[T, B]) Cos() *Tensor[T, B] {
	return New[T, B](t.backend.Cos(t.raw), t.backend)
}

// Log computes the natural logarithm of each element.
// Non-positive inputs yield non-finite values rather than panicking.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	return New[T, B](t.backend.Log(t.raw), t.backend)
}

// Exp computes the exponential (e^x) of each element.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	return New[T, B](t.backend.Exp(t.raw), t.backend)
}

// Sqrt computes the square root of each element.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	return New[T, B](t.backend.Sqrt(t.raw), t.backend)
}

// Square computes the element-wise square.
func (t *Tensor[T, B]) Square() *Tensor[T, B] {
	return t.Mul(t)
}

// Reshape returns a tensor with the same data under a different shape.
// The new shape must have the same number of elements.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Expand broadcasts the tensor to a new shape.
// Dimensions of size 1 can be expanded to any size.
func (t *Tensor[T, B]) Expand(shape Shape) *Tensor[T, B] {
	return New[T, B](t.backend.Expand(t.raw, shape), t.backend)
}
