// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/goibm/grid"
	"github.com/cpmech/goibm/ibm"
	"github.com/cpmech/goibm/inp"
)

// Solver advances the incompressible Navier-Stokes equations in time with
// the fractional-step method. It owns the flow state, the operators and
// both linear systems; grid and input data are borrowed and must outlive
// the solver. Under MPI every process holds the full vectors but assembles
// only its owned rows; right-hand sides are joined by summation.
type Solver struct {

	// collaborators
	Sim  *inp.Simulation      // input data
	Flow *inp.FlowDescription // derived flow configuration
	Grd  *grid.Grid           // staggered grid
	Lay  *grid.Layout         // row ownership
	Body *ibm.Body            // immersed boundary; nil for plain runs

	// multiprocessing data
	Nproc int  // number of processes
	Proc  int  // this process
	Root  bool // this is process 0
	Distr bool // distributed run

	// variant and sizes
	Var   Variant
	Nq    int // number of flux unknowns
	Np    int // number of pressure unknowns
	Nf    int // number of Lagrangian force unknowns
	Nlam  int // Np + Nf
	Nlamb int // Nlam + 1, with the border unknown

	// operators and systems
	ops  *Operators
	sys1 *LinSystem
	sys2 *LinSystem

	// state
	TimeStep int
	q        []float64 // [Nq] fluxes; mutated only by the projection
	qStar    []float64 // [Nq] intermediate fluxes
	lambda   []float64 // [Nlamb] pressure, forces and border multiplier
	H        []float64 // [Nq] convective term
	Hprev    []float64 // [Nq] convective term of the previous step

	// per-step scratch
	rn, bc1, rhs1  []float64 // velocity system
	r2, rhs2, temp []float64 // pressure/force system
	wsQ, wsL       []float64 // reduction workspaces
	gh             [3]*Field // ghosted velocity components
	firstStep      bool

	// diagnostics
	Stats   *Stats
	ShowMsg bool
	itBuf   bytes.Buffer
}

// New builds a solver from the simulation input: it reads the mesh and body
// files, derives the flow description, assembles all operators and
// factorizes both systems. With StartStep > 0 the state is read back from a
// previous save.
func New(sim *inp.Simulation, verbose bool) (o *Solver, err error) {

	o = &Solver{Sim: sim, Stats: NewStats()}
	defer o.Stats.Stage("initialize")()

	// multiprocessing data
	o.Nproc, o.Proc = 1, 0
	if mpi.IsOn() {
		o.Nproc, o.Proc = mpi.Size(), mpi.Rank()
	}
	o.Distr = o.Nproc > 1
	o.Root = o.Proc == 0
	o.ShowMsg = verbose && o.Root

	// grid and flow
	o.Grd, err = grid.ReadMesh(sim.MshPath())
	if err != nil {
		return nil, err
	}
	o.Flow, err = inp.DeriveFlow(&sim.Flow, sim.Functions, o.Grd.Ndim)
	if err != nil {
		return nil, err
	}

	// immersed body
	if sim.Body != nil {
		o.Body, err = ibm.ReadBody(sim.BodyPath(), o.Grd.Ndim)
		if err != nil {
			return nil, err
		}
	}

	// variant
	o.Var, err = NewVariant(sim.Params.Scheme, o)
	if err != nil {
		return nil, err
	}

	// sizes and layout
	o.Nq = o.Grd.QTotal()
	o.Np = o.Grd.NumCells()
	o.Nf = o.Var.NumForces()
	o.Nlam = o.Np + o.Nf
	o.Nlamb = o.Nlam + 1
	o.Lay, err = grid.NewLayout(o.Nproc, o.Proc, o.Nq, o.Nlam)
	if err != nil {
		return nil, err
	}

	// state and scratch
	o.q = make([]float64, o.Nq)
	o.qStar = make([]float64, o.Nq)
	o.lambda = make([]float64, o.Nlamb)
	o.H = make([]float64, o.Nq)
	o.Hprev = make([]float64, o.Nq)
	o.rn = make([]float64, o.Nq)
	o.bc1 = make([]float64, o.Nq)
	o.rhs1 = make([]float64, o.Nq)
	o.r2 = make([]float64, o.Nlam)
	o.rhs2 = make([]float64, o.Nlamb)
	o.temp = make([]float64, o.Nq)
	o.wsQ = make([]float64, o.Nq)
	o.wsL = make([]float64, o.Nlamb)
	for d := 0; d < o.Grd.Ndim; d++ {
		o.gh[d] = newField(o.Grd.CompSize(d))
	}

	// operators
	done := o.Stats.Stage("assemble")
	o.ops = NewOperators(o.Grd, o.Lay, o.Flow)
	o.ops.BuildBN(sim.Params.Dt)
	o.ops.BuildDivergence()
	if err = o.Var.AssembleCoupling(o); err != nil {
		return nil, err
	}
	var tA, tP la.Triplet
	n1d, n1o := o.ops.BuildA(&tA, o.Flow.Nu, sim.Params.Dt)
	n2d, n2o := o.assembleSystem2(&tP)
	done()

	// linear systems
	done = o.Stats.Stage("factorize")
	o.sys1 = NewLinSystem("velocity", &sim.LinSol, sim.Params.Atol, sim.Params.Rtol, o.Distr)
	if r := o.sys1.Init(&tA); r < 0 {
		return nil, chk.Err("velocity system setup failed: %v", r)
	}
	o.sys2 = NewLinSystem("poisson", &sim.LinSol, sim.Params.Atol, sim.Params.Rtol, o.Distr)
	if r := o.sys2.Init(&tP); r < 0 {
		return nil, chk.Err("poisson system setup failed: %v", r)
	}
	done()

	// initial state
	o.TimeStep = sim.Params.StartStep
	o.firstStep = o.TimeStep == 0
	if o.TimeStep > 0 {
		if err = o.ReadState(o.TimeStep); err != nil {
			return nil, err
		}
	} else {
		o.initialVelocity()
	}
	o.syncVelocity()
	o.updateBoundaryGhosts(float64(o.TimeStep) * sim.Params.Dt)

	// diagnostics
	if o.ShowMsg {
		o.printInfo(n1d, n1o, n2d, n2o)
	}
	if o.Root {
		o.WriteGrid()
	}
	return
}

// initialVelocity fills q from the uniform initial velocity
func (o *Solver) initialVelocity() {
	o.ops.eachFlux(func(f, d int, I [3]int) {
		o.q[f] = o.Flow.Initial[d] / o.ops.RInv[f]
	})
}

// assembleSystem2 assembles the owned rows of the bordered Poisson product
//
//	[ QT BN Q  c ] [ lambda ]   [ rhs2 ]
//	[   c^T    0 ] [   mu   ] = [  0   ]
//
// where c is one on the pressure block and zero on the force block. The
// border pins the free pressure constant of the singular product; for
// compatible right-hand sides the physical solution is unchanged. The
// product rows come from the row and column adjacency of QT; a counting
// pass sizes the triplet exactly.
func (o *Solver) assembleSystem2(T *la.Triplet) (nnzDiag, nnzOff int) {
	lo, hi := o.Lay.LamRange()
	acc := make([]float64, o.Nlam)
	mark := make([]bool, o.Nlam)
	var touched []int
	for r := lo; r < hi; r++ {
		touched = o.ops.QTBNQRow(r, acc, mark, touched)
		dn, on := CountNnzSplit(touched, lo, hi)
		nnzDiag += dn
		nnzOff += on
		for _, j := range touched {
			acc[j] = 0
			mark[j] = false
		}
	}
	nnz := nnzDiag + nnzOff
	if o.Root {
		nnz += 2 * o.Np
	}
	T.Init(o.Nlamb, o.Nlamb, nnz)
	for r := lo; r < hi; r++ {
		touched = o.ops.QTBNQRow(r, acc, mark, touched)
		for _, j := range touched {
			T.Put(r, j, acc[j])
			acc[j] = 0
			mark[j] = false
		}
	}
	if o.Root {
		var cons la.Triplet
		cons.Init(1, o.Nlam, o.Np)
		for j := 0; j < o.Np; j++ {
			cons.Put(0, j, 1.0)
		}
		T.PutMatAndMatT(&cons)
	}
	return
}

// NullVector returns the null-space vector of the unbordered Poisson
// product: ones on the pressure block, zeros on the force block
func (o *Solver) NullVector() []float64 {
	v := make([]float64, o.Nlam)
	for j := 0; j < o.Np; j++ {
		v[j] = 1.0
	}
	return v
}

// join sums the owned contributions of x across all processes
func (o *Solver) join(x, workspace []float64) {
	if o.Distr {
		mpi.AllReduceSum(x, workspace)
	}
}

// generateRHS1 assembles rhs1 = MHat (rn + bc1) over the owned rows and
// joins the full vector
func (o *Solver) generateRHS1() {
	la.VecFill(o.rhs1, 0)
	lo, hi := o.Lay.QRange()
	for f := lo; f < hi; f++ {
		o.rhs1[f] = o.ops.MHat[f] * (o.rn[f] + o.bc1[f])
	}
	o.join(o.rhs1, o.wsQ)
}

// generateRHS2 assembles rhs2 = QT qStar - r2 over the owned rows; the
// border entry stays zero
func (o *Solver) generateRHS2() {
	la.VecFill(o.rhs2, 0)
	lo, hi := o.Lay.LamRange()
	for r := lo; r < hi; r++ {
		o.rhs2[r] = -o.r2[r]
	}
	o.ops.QT.MulVecAdd(o.rhs2, o.qStar, lo, hi)
	o.join(o.rhs2, o.wsL)
}

// projectionStep computes q = qStar - BN Q lambda over the owned fluxes and
// joins the full field. This is the only place where q changes; the
// projected field satisfies the divergence/no-slip constraint to the
// accuracy of the Poisson solve.
func (o *Solver) projectionStep() {
	lo, hi := o.Lay.QRange()
	o.ops.QT.DiagTrMulVec(o.temp, o.ops.BN, o.lambda, lo, hi)
	la.VecFill(o.q, 0)
	for f := lo; f < hi; f++ {
		o.q[f] = o.qStar[f] - o.temp[f]
	}
	o.join(o.q, o.wsQ)
}

// StepTime advances the state by one time step. A negative convergence
// reason from either system is terminal: the error carries the step index
// and the reason, and no further steps may be taken.
func (o *Solver) StepTime() (err error) {
	t1 := float64(o.TimeStep+1) * o.Sim.Params.Dt

	// explicit terms and boundary data
	done := o.Stats.Stage("rhs-velocity")
	o.calcExplicitTerms()
	o.updateBoundaryGhosts(t1)
	o.generateBC1(t1)
	o.generateRHS1()
	done()

	// intermediate velocity
	done = o.Stats.Stage("solve-velocity")
	r1 := o.sys1.Solve(o.qStar, o.rhs1)
	done()
	if r1 < 0 {
		return chk.Err("velocity solve failed at step %d: %v", o.TimeStep+1, r1)
	}

	// pressure and boundary forces
	done = o.Stats.Stage("rhs-poisson")
	o.Var.BoundaryResidual(o, t1)
	o.generateRHS2()
	done()
	done = o.Stats.Stage("solve-poisson")
	r2 := o.sys2.Solve(o.lambda, o.rhs2)
	done()
	if r2 < 0 {
		return chk.Err("poisson solve failed at step %d: %v", o.TimeStep+1, r2)
	}

	// projection
	done = o.Stats.Stage("projection")
	o.projectionStep()
	done()

	o.firstStep = false
	o.TimeStep++
	if o.Root {
		io.Ff(&o.itBuf, "%d %d %d\n", o.TimeStep, int(r1), int(r2))
	}
	return
}

// Finished tells whether the run reached the last step
func (o *Solver) Finished() bool {
	return o.TimeStep >= o.Sim.Params.StartStep+o.Sim.Params.Nt
}

// SavePoint tells whether the current step must be saved
func (o *Solver) SavePoint() bool {
	return o.TimeStep%o.Sim.Params.Nsave == 0
}

// Run advances the simulation to completion, saving the state at every save
// point and at the final step
func (o *Solver) Run() (err error) {
	if o.SavePoint() {
		if err = o.SaveResults(); err != nil {
			return
		}
	}
	for !o.Finished() {
		if err = o.StepTime(); err != nil {
			return
		}
		if o.SavePoint() || o.Finished() {
			if o.ShowMsg {
				io.Pf("step %4d  t=%g\n", o.TimeStep, float64(o.TimeStep)*o.Sim.Params.Dt)
			}
			if err = o.SaveResults(); err != nil {
				return
			}
		}
	}
	return
}

// Lambda returns the physical part of the pressure/force vector
func (o *Solver) Lambda() []float64 {
	return o.lambda[:o.Nlam]
}

// Q returns the flux vector
func (o *Solver) Q() []float64 {
	return o.q
}

// Free releases the linear system handles and flushes the diagnostics
func (o *Solver) Free() {
	if o.sys1 != nil {
		o.sys1.Free()
	}
	if o.sys2 != nil {
		o.sys2.Free()
	}
	if o.Root {
		o.writeDiagnostics()
	}
}
