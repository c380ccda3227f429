// Copyright 2025 The FlowPath Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for FlowPath.
//
// # Overview
//
// Tensors are the numeric substrate of the path engine. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Zero-copy views where possible
//   - A backend interface for the actual arithmetic
//
// # Basic Usage
//
//	import (
//	    "github.com/flowml/flowpath/tensor"
//	    "github.com/flowml/flowpath/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	    _ = z.MulScalar(0.5)
//	}
//
// # Broadcasting
//
// Binary operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float64](tensor.Shape{4, 1, 1, 1}, backend) // time-like
//	b := tensor.Ones[float64](tensor.Shape{4, 3, 8, 8}, backend)  // data-like
//	c := a.Mul(b)                                                 // (4, 3, 8, 8)
//
// This is the shape discipline the path engine relies on: per-sample time
// values reshaped to (B, 1, ..., 1) combine element-wise with per-sample
// data tensors of any trailing shape.
//
// # Supported Element Types
//
// The DType constraint admits float32 and float64. The engine is pure
// floating-point math; there are no integer or boolean tensors.
//
// # Purity
//
// Every operation allocates a fresh result (or a zero-copy view for
// Reshape); no operation mutates its operands. Tensors are therefore safe
// to share across concurrent readers.
package tensor
