// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read .sim file")

	sim := ReadSim("data/cavity2d.sim", false)
	io.Pforan("sim key = %v\n", sim.Key)

	chk.String(tst, sim.Key, "cavity2d")
	chk.String(tst, sim.EncType, "gob")
	chk.String(tst, sim.Params.Scheme, "navier-stokes")
	chk.Float64(tst, "dt", 1e-15, sim.Params.Dt, 0.005)
	chk.IntAssert(sim.Params.Nt, 4)
	chk.IntAssert(sim.Params.Nsave, 1)
	chk.IntAssert(sim.Params.StartStep, 0)
	chk.String(tst, sim.LinSol.Name, "umfpack")
	if sim.Body != nil {
		tst.Errorf("plain simulation should have no body")
		return
	}
	chk.String(tst, sim.MshPath(), "data/cavity2d.msh")
}

func Test_flow01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flow01. derive flow description")

	sim := ReadSim("data/cavity2d.sim", false)
	flow, err := DeriveFlow(&sim.Flow, sim.Functions, 2)
	if err != nil {
		tst.Errorf("DeriveFlow failed:\n%v", err)
		return
	}
	chk.Float64(tst, "nu", 1e-15, flow.Nu, 0.01)

	// the lid moves with u=1 through the "lid" function; everything else is
	// a resting wall
	chk.Float64(tst, "lid u", 1e-15, flow.Velocity(Ymax, 0, 0.123), 1)
	chk.Float64(tst, "lid v", 1e-15, flow.Velocity(Ymax, 1, 0.123), 0)
	chk.Float64(tst, "xmin u", 1e-15, flow.Velocity(Xmin, 0, 0.123), 0)
	for face := 0; face < 4; face++ {
		for c := 0; c < 2; c++ {
			if flow.Faces[face].Kind[c] != Dirichlet {
				tst.Errorf("face %d comp %d should be dirichlet", face, c)
				return
			}
		}
	}
}

func Test_flow02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flow02. flow contract violations")

	funcs := FuncsData{}

	// negative viscosity
	fd := FlowData{Nu: -1}
	if _, err := DeriveFlow(&fd, funcs, 2); err == nil {
		tst.Errorf("negative viscosity should have been rejected")
		return
	}

	// missing face
	fd = FlowData{Nu: 0.1, Bcs: []*BcData{
		{Face: "xmin", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
	}}
	if _, err := DeriveFlow(&fd, funcs, 2); err == nil {
		tst.Errorf("missing faces should have been rejected")
		return
	}

	// duplicated face
	fd = FlowData{Nu: 0.1, Bcs: []*BcData{
		{Face: "xmin", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
		{Face: "xmin", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
		{Face: "xmax", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
		{Face: "ymin", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
		{Face: "ymax", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
	}}
	if _, err := DeriveFlow(&fd, funcs, 2); err == nil {
		tst.Errorf("duplicated face should have been rejected")
		return
	}

	// unknown kind
	fd = FlowData{Nu: 0.1, Bcs: []*BcData{
		{Face: "xmin", Kinds: []string{"weird", "dirichlet"}, Values: []float64{0, 0}},
		{Face: "xmax", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
		{Face: "ymin", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
		{Face: "ymax", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
	}}
	if _, err := DeriveFlow(&fd, funcs, 2); err == nil {
		tst.Errorf("unknown kind should have been rejected")
		return
	}

	// z face in 2D
	fd = FlowData{Nu: 0.1, Bcs: []*BcData{
		{Face: "zmin", Kinds: []string{"dirichlet", "dirichlet"}, Values: []float64{0, 0}},
	}}
	if _, err := DeriveFlow(&fd, funcs, 2); err == nil {
		tst.Errorf("z face in 2D should have been rejected")
		return
	}
}

func Test_func01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("func01. function database")

	sim := ReadSim("data/cavity2d.sim", false)

	// the zero shortcut needs no entry in the database
	z, err := sim.Functions.Get("zero")
	if err != nil {
		tst.Errorf("Get(zero) failed:\n%v", err)
		return
	}
	chk.Float64(tst, "zero(1.2)", 1e-15, z.F(1.2, nil), 0)

	lid, err := sim.Functions.Get("lid")
	if err != nil {
		tst.Errorf("Get(lid) failed:\n%v", err)
		return
	}
	chk.Float64(tst, "lid(0)", 1e-15, lid.F(0, nil), 1)
	chk.Float64(tst, "lid(9)", 1e-15, lid.F(9, nil), 1)

	if _, err := sim.Functions.Get("nosuch"); err == nil {
		tst.Errorf("unknown function name should have been rejected")
		return
	}
}
