// Copyright 2025 The FlowPath Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements the tensor.Backend interface with:
//   - Pure Go element-wise kernels (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - Chunk-parallel execution for large tensors
//
// # Basic Usage
//
//	import (
//	    "github.com/flowml/flowpath/backend/cpu"
//	    "github.com/flowml/flowpath/flow"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    plan := flow.NewPlan[float64](flow.DefaultConfig(), backend)
//	    _ = plan
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// allocates its own result and does not share mutable state.
package cpu
