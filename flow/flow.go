// Copyright 2025 The FlowPath Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package flow

import (
	"github.com/flowml/flowpath/internal/flow"
	"github.com/flowml/flowpath/tensor"
)

// Config is the immutable Plan configuration, fixed at construction.
type Config = flow.Config

// DiffusionForm names one schedule from the closed set of diffusion
// coefficients.
type DiffusionForm = flow.DiffusionForm

// The recognized diffusion-coefficient schedules.
const (
	FormNone                 DiffusionForm = flow.FormNone
	FormConstant             DiffusionForm = flow.FormConstant
	FormSBDM                 DiffusionForm = flow.FormSBDM
	FormSigma                DiffusionForm = flow.FormSigma
	FormLinear               DiffusionForm = flow.FormLinear
	FormDecreasing           DiffusionForm = flow.FormDecreasing
	FormIncreasingDecreasing DiffusionForm = flow.FormIncreasingDecreasing
	FormLog                  DiffusionForm = flow.FormLog
)

// Plan is the linear-coupling path engine.
//
// T is the element type (float32 or float64); B is the backend
// implementation.
//
// Example:
//
//	plan := flow.NewPlan[float64](flow.DefaultConfig(), cpu.New())
//	drift, scoreCoef, err := plan.Drift(x, t)
type Plan[T tensor.DType, B tensor.Backend] = flow.Plan[T, B]

// NewPlan creates a Plan from a configuration and a compute backend.
func NewPlan[T tensor.DType, B tensor.Backend](cfg Config, b B) *Plan[T, B] {
	return flow.NewPlan[T, B](cfg, b)
}

// DefaultConfig returns the configuration used when nothing is specified:
// no noise floor, no diffusion, no blurring.
func DefaultConfig() Config {
	return flow.DefaultConfig()
}

// ParseDiffusionForm maps a canonical schedule name to its DiffusionForm.
// Any other name yields a not-implemented error naming the value.
func ParseDiffusionForm(name string) (DiffusionForm, error) {
	return flow.ParseDiffusionForm(name)
}

// Forms returns the recognized schedules in declaration order.
func Forms() []DiffusionForm {
	return flow.Forms()
}
