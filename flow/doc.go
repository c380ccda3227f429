// Copyright 2025 The FlowPath Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package flow provides the coefficient engine for linear-coupling
// probability paths between a noise distribution and a data distribution.
//
// # Overview
//
// A Plan evaluates, for batches of per-sample times t in (0, 1):
//   - the path coefficients alpha_t = t and beta_t = 1 - t with their
//     time derivatives
//   - the drift and score coefficient of the probability-flow vector field
//   - eight diffusion-coefficient schedules and their exact derivatives
//   - conversions between the vector-field, score, and noise
//     parametrizations of a trained model output
//
// # Basic Usage
//
//	import (
//	    "github.com/flowml/flowpath/backend/cpu"
//	    "github.com/flowml/flowpath/flow"
//	    "github.com/flowml/flowpath/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    plan := flow.NewPlan[float64](flow.DefaultConfig(), backend)
//
//	    x := tensor.Randn[float64](tensor.Shape{4, 3, 8, 8}, backend)
//	    t := tensor.Linspace[float64](0.1, 0.9, 4, backend)
//
//	    drift, scoreCoef, err := plan.Drift(x, t)
//	    if err != nil {
//	        panic(err)
//	    }
//	    _, _ = drift, scoreCoef
//	}
//
// # Time Domain
//
// All formulas are defined on the open interval (0, 1). Evaluation at the
// endpoints is permitted and propagates IEEE-754 non-finite values (the
// drift divides by t, the score conversion divides by a variance that
// vanishes near t = 1); no method panics on a degenerate time value.
//
// # Purity
//
// A Plan holds only its configuration and backend. Every method allocates
// fresh result tensors and never mutates its inputs, so a single Plan is
// safe for concurrent use.
package flow
