// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goibm/inp"
)

// ConvergedReason codes the outcome of one linear solve. Positive values
// mean success; any negative value is fatal for the run.
type ConvergedReason int

const (

	// ConvergedTol means the monitored residual is within tolerances
	ConvergedTol ConvergedReason = 2

	// ConvergedNoCheck means the solve succeeded with no residual monitor
	// (the assembled matrix is distributed and no process holds all rows)
	ConvergedNoCheck ConvergedReason = 1

	// DivergedFactorization means initialization or factorization failed
	DivergedFactorization ConvergedReason = -1

	// DivergedBreakdown means the back-substitution failed
	DivergedBreakdown ConvergedReason = -2

	// DivergedResidual means the monitored residual exceeds tolerances
	DivergedResidual ConvergedReason = -3

	// DivergedNan means the solution contains NaN or Inf entries
	DivergedNan ConvergedReason = -4
)

// String returns a human readable reason
func (o ConvergedReason) String() string {
	switch o {
	case ConvergedTol:
		return "converged: residual within tolerances"
	case ConvergedNoCheck:
		return "converged: residual not monitored"
	case DivergedFactorization:
		return "diverged: factorization failed"
	case DivergedBreakdown:
		return "diverged: back-substitution failed"
	case DivergedResidual:
		return "diverged: residual above tolerances"
	case DivergedNan:
		return "diverged: solution has NaN or Inf entries"
	}
	return io.Sf("unknown reason (%d)", int(o))
}

// LinSystem wraps one sparse system with the lifecycle initialize,
// factorize, solve and a residual monitor. The sparsity pattern and the
// values are fixed after Init, so the factorization happens exactly once
// and every step reuses it.
type LinSystem struct {

	// input
	Name string  // "velocity" or "poisson"
	Atol float64 // absolute residual tolerance
	Rtol float64 // relative residual tolerance

	// internal
	cfg   *inp.LinSolData
	sol   la.LinSol
	cc    *la.CCMatrix // assembled copy for the monitor; nil when distributed
	res   []float64
	ready bool
	distr bool
}

// NewLinSystem returns a new linear system using the configured solver kind
func NewLinSystem(name string, cfg *inp.LinSolData, atol, rtol float64, distr bool) *LinSystem {
	return &LinSystem{
		Name:  name,
		Atol:  atol,
		Rtol:  rtol,
		cfg:   cfg,
		sol:   la.GetSolver(cfg.Name),
		distr: distr,
	}
}

// Init hands the assembled triplet to the solver and factorizes it. In the
// serial case the triplet is also converted to compressed-column form for
// the residual monitor.
func (o *LinSystem) Init(t *la.Triplet) ConvergedReason {
	if err := o.sol.InitR(t, o.cfg.Symmetric, o.cfg.Verbose, o.cfg.Timing); err != nil {
		return DivergedFactorization
	}
	if err := o.sol.Fact(); err != nil {
		return DivergedFactorization
	}
	if !o.distr {
		o.cc = t.ToMatrix(nil)
	}
	o.ready = true
	return ConvergedTol
}

// Solve computes x from b and reports the convergence reason. The direct
// solve either succeeds or breaks down; the monitor then checks
// |b - A x| <= atol + rtol |b| and NaN contamination of x.
func (o *LinSystem) Solve(x, b []float64) ConvergedReason {
	if !o.ready {
		return DivergedFactorization
	}
	if err := o.sol.SolveR(x, b, false); err != nil {
		return DivergedBreakdown
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return DivergedNan
		}
	}
	if o.cc == nil {
		return ConvergedNoCheck
	}
	if len(o.res) != len(b) {
		o.res = make([]float64, len(b))
	}
	la.VecCopy(o.res, 1, b)
	la.SpMatVecMulAdd(o.res, -1, o.cc, x) // res = b - A*x
	if la.VecNorm(o.res) > o.Atol+o.Rtol*la.VecNorm(b) {
		return DivergedResidual
	}
	return ConvergedTol
}

// Free releases the solver resources
func (o *LinSystem) Free() {
	if o.ready {
		o.sol.Free()
		o.ready = false
	}
}
