// Package flow implements the coefficient engine of a stochastic-interpolant
// (flow matching) generative model.
//
// A Plan fixes the linear (CondOT) probability path
//
//	x_t = alpha_t * x1 + beta_t * x0,  alpha_t = t,  beta_t = 1 - t,
//
// and derives from it the drift of the probability-flow equation, a family of
// diffusion-coefficient schedules for the associated SDE, and the algebraic
// conversions between the three equivalent model parametrizations: vector
// field, score function, and noise predictor.
//
// Every operation is a pure function of its arguments and the immutable Plan
// configuration; a single Plan may be shared across any number of concurrent
// callers without synchronization.
//
// Time values live in the open interval (0, 1). The endpoints are singular
// for some formulas (1/t at t=0, zero variance at t=1); evaluations there
// propagate IEEE-754 non-finite values instead of raising errors.
package flow
