// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goibm/ana"
	"github.com/cpmech/goibm/inp"
)

func Test_couette01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("couette01. started Couette flow against the series solution")

	// neumann ends truncate the channel; the lid at y=1 starts impulsively
	sim := inp.ReadSim("data/couette.sim", true)
	sol, err := New(sim, chk.Verbose)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	defer sol.Free()
	if err = sol.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	g := sol.Grd
	t := float64(sol.TimeStep) * sim.Params.Dt

	// the flow is one-dimensional: v vanishes and u is uniform along x
	qv := sol.q[g.QOffset(1):]
	chk.Float64(tst, "max |v| flux", 1e-10, la.VecLargest(qv, 1), 0)

	cf := ana.CouetteStart{U: 1, H: 1, Nu: sol.Flow.Nu}
	for j := 0; j < g.N[1]; j++ {
		I := [3]int{0, j, 0}
		f := g.QIndex(0, I)
		u0 := sol.q[f] * sol.ops.RInv[f]
		for i := 1; i < g.N[0]-1; i++ {
			I[0] = i
			f = g.QIndex(0, I)
			chk.Float64(tst, io.Sf("uniform u at (%d,%d)", i, j), 1e-10, sol.q[f]*sol.ops.RInv[f], u0)
		}
		want := cf.Ux(g.Xc[1][j], t, 200)
		io.Pforan("y=%8.5f  u=%10.6f  series=%10.6f\n", g.Xc[1][j], u0, want)
		chk.Float64(tst, io.Sf("u profile at y=%g", g.Xc[1][j]), 1e-2, u0, want)
	}
}
