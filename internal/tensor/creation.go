package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Buffer is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Linspace creates a 1D tensor of n evenly spaced values over [start, end].
// n must be at least 2 so both endpoints are included.
func Linspace[T DType, B Backend](start, end T, n int, b B) *Tensor[T, B] {
	if n < 2 {
		panic("Linspace requires at least 2 points")
	}

	t := Zeros[T, B](Shape{n}, b)
	data := t.Data()
	step := float64(end-start) / float64(n-1)
	for i := range data {
		data[i] = start + T(float64(i)*step)
	}
	data[n-1] = end // avoid accumulation error at the right endpoint
	return t
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = T(rand.Float64()) //nolint:gosec // G404: math/rand is intentional for reproducible numerics
	}
	return t
}

// Randn creates a tensor with values drawn from the standard normal
// distribution N(0, 1), using the Box-Muller transform.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := 0; i < len(data); i += 2 {
		u1 := rand.Float64() //nolint:gosec // G404: math/rand is intentional for reproducible numerics
		u2 := rand.Float64() //nolint:gosec // G404: math/rand is intentional for reproducible numerics
		r := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = T(r * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(r * math.Sin(2.0*math.Pi*u2))
		}
	}
	return t
}
