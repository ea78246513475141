// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goibm/inp"
)

// maxDivergence returns the largest cell-divergence residual |QT q - r2|
func maxDivergence(o *Solver) (max float64) {
	res := make([]float64, o.Nlam)
	for r := 0; r < o.Nlam; r++ {
		res[r] = -o.r2[r]
	}
	o.ops.QT.MulVecAdd(res, o.q, 0, o.Nlam)
	return la.VecLargest(res, 1)
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. lid-driven cavity, plain scheme")

	sim := inp.ReadSim("data/cavity2d.sim", true)
	sol, err := New(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer sol.Free()

	// sizes
	chk.IntAssert(sol.Nq, 112) // 7x8 + 8x7 interior faces
	chk.IntAssert(sol.Np, 64)
	chk.IntAssert(sol.Nf, 0)
	chk.IntAssert(sol.Nlamb, 65)
	chk.String(tst, sol.Var.Name(), "navier-stokes")

	// predicates before stepping
	if sol.Finished() {
		tst.Errorf("run cannot be finished before stepping")
		return
	}
	if !sol.SavePoint() {
		tst.Errorf("step 0 must be a save point with nsave=1")
		return
	}

	// advance and check the projection after every step
	for i := 0; i < sim.Params.Nt; i++ {
		if err = sol.StepTime(); err != nil {
			tst.Errorf("StepTime failed:\n%v", err)
			return
		}
		div := maxDivergence(sol)
		io.Pforan("step %d: max divergence = %v\n", sol.TimeStep, div)
		chk.Float64(tst, io.Sf("divergence after step %d", sol.TimeStep), 1e-9, div, 0)
	}
	chk.IntAssert(sol.TimeStep, 4)
	if !sol.Finished() {
		tst.Errorf("run must be finished after nt steps")
		return
	}

	// the intermediate fluxes solve system 1: A qStar = rhs1
	var tA la.Triplet
	sol.ops.BuildA(&tA, sol.Flow.Nu, sim.Params.Dt)
	cc := tA.ToMatrix(nil)
	res := make([]float64, sol.Nq)
	la.VecCopy(res, 1, sol.rhs1)
	la.SpMatVecMulAdd(res, -1, cc, sol.qStar)
	chk.Float64(tst, "velocity system residual", 1e-9, la.VecLargest(res, 1), 0)

	// the flow moves: the top row of x fluxes picked up lid momentum
	if la.VecLargest(sol.q, 1) < 1e-6 {
		tst.Errorf("flow did not develop")
		return
	}

	// null-space invariance: shifting lambda by the constant-pressure
	// vector does not change the projected field
	qref := make([]float64, sol.Nq)
	la.VecCopy(qref, 1, sol.q)
	for j, v := range sol.NullVector() {
		sol.lambda[j] += 3.7 * v
	}
	sol.projectionStep()
	chk.Array(tst, "q after null-space shift", 1e-12, sol.q, qref)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. restart reproduces the straight run")

	// straight run: 4 steps, saving every step
	simA := inp.ReadSim("data/cavity2d.sim", true)
	solA, err := New(simA, false)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer solA.Free()
	if err = solA.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	qref := make([]float64, solA.Nq)
	la.VecCopy(qref, 1, solA.q)

	// restarted run: read the state saved at step 2 and do the rest
	simB := inp.ReadSim("data/cavity2d.sim", false)
	simB.Params.StartStep = 2
	simB.Params.Nt = 2
	solB, err := New(simB, false)
	if err != nil {
		tst.Errorf("New (restart) failed:\n%v", err)
		return
	}
	defer solB.Free()
	chk.IntAssert(solB.TimeStep, 2)
	if err = solB.Run(); err != nil {
		tst.Errorf("Run (restart) failed:\n%v", err)
		return
	}
	chk.IntAssert(solB.TimeStep, 4)
	chk.Array(tst, "q restart vs straight", 1e-12, solB.q, qref)
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. immersed cylinder, Taira-Colonius scheme")

	sim := inp.ReadSim("data/cylinder.sim", true)
	sol, err := New(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer sol.Free()

	// lambda carries 12 markers x 2 components of forces
	chk.IntAssert(sol.Nf, 24)
	chk.IntAssert(sol.Nlam, sol.Np+24)
	chk.String(tst, sol.Var.Name(), "taira-colonius")

	if err = sol.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// after projection the interpolated velocity at every marker honours
	// the no-slip condition, together with the cell divergences
	div := maxDivergence(sol)
	io.Pforan("max coupled residual = %v\n", div)
	chk.Float64(tst, "coupled residual", 1e-9, div, 0)

	// the immersed boundary exerts force on the fluid
	forces := sol.Lambda()[sol.Np:]
	if la.VecLargest(forces, 1) < 1e-10 {
		tst.Errorf("boundary forces should not vanish in a moving flow")
		return
	}
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04. scheme selection errors")

	// plain scheme rejects a body
	sim := inp.ReadSim("data/cylinder.sim", false)
	sim.Params.Scheme = "navier-stokes"
	if _, err := New(sim, false); err == nil {
		tst.Errorf("plain scheme with a body should have been rejected")
		return
	}

	// unknown scheme
	sim = inp.ReadSim("data/cavity2d.sim", false)
	sim.Params.Scheme = "magic"
	if _, err := New(sim, false); err == nil {
		tst.Errorf("unknown scheme should have been rejected")
		return
	}

	// immersed scheme without a body
	sim = inp.ReadSim("data/cavity2d.sim", false)
	sim.Params.Scheme = "taira-colonius"
	if _, err := New(sim, false); err == nil {
		tst.Errorf("taira-colonius without a body should have been rejected")
		return
	}
}

func Test_solver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver05. save and termination predicates")

	sim := new(inp.Simulation)
	sim.Params.Nsave = 10
	sim.Params.StartStep = 5
	sim.Params.Nt = 7
	sol := &Solver{Sim: sim}
	for step := 0; step <= 30; step++ {
		sol.TimeStep = step
		if sol.SavePoint() != (step%10 == 0) {
			tst.Errorf("save predicate wrong at step %d with nsave=10", step)
			return
		}
		if sol.Finished() != (step >= 12) {
			tst.Errorf("termination predicate wrong at step %d with start=5 nt=7", step)
			return
		}
	}
}

func Test_solver06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver06. a step depends on the flow state only")

	simA := inp.ReadSim("data/cavity2d.sim", true)
	solA, err := New(simA, false)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer solA.Free()

	simB := inp.ReadSim("data/cavity2d.sim", false)
	solB, err := New(simB, false)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer solB.Free()

	// clobbering every stored field value, ghosts included, must not change
	// the advanced fluxes: the step rebuilds the fields from q
	for i := 0; i < simA.Params.Nt; i++ {
		for d := 0; d < solB.Grd.Ndim; d++ {
			for n := range solB.gh[d].v {
				solB.gh[d].v[n] = 99.0
			}
		}
		if err = solA.StepTime(); err != nil {
			tst.Errorf("StepTime failed:\n%v", err)
			return
		}
		if err = solB.StepTime(); err != nil {
			tst.Errorf("StepTime (clobbered) failed:\n%v", err)
			return
		}
	}
	chk.Array(tst, "q with clobbered fields", 1e-15, solB.q, solA.q)
}
