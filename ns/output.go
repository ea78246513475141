// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// State holds the saved flow state of one time step. Hprev rides along so
// that a restarted run continues the Adams-Bashforth extrapolation instead
// of falling back to forward Euler.
type State struct {
	TimeStep int
	Q        []float64
	Lambda   []float64
	Hprev    []float64
}

// resPath returns the results filename of one step
func (o *Solver) resPath(step int) string {
	return io.Sf("%s/%s_%08d.%s", o.Sim.DirOut, o.Sim.Key, step, o.Sim.EncType)
}

// SaveResults writes the flow state of the current step. Only process 0
// writes, since every process holds the full vectors.
func (o *Solver) SaveResults() (err error) {
	if !o.Root {
		return
	}
	done := o.Stats.Stage("save")
	defer done()
	st := State{TimeStep: o.TimeStep, Q: o.q, Lambda: o.Lambda(), Hprev: o.Hprev}
	f, e := os.Create(o.resPath(o.TimeStep))
	if e != nil {
		return chk.Err("cannot create results file: %v", e)
	}
	defer f.Close()
	if o.Sim.EncType == "json" {
		err = json.NewEncoder(f).Encode(&st)
	} else {
		err = gob.NewEncoder(f).Encode(&st)
	}
	if err != nil {
		return chk.Err("cannot encode state at step %d: %v", o.TimeStep, err)
	}
	return
}

// ReadState reads the flow state saved at the given step; every process
// reads the same file
func (o *Solver) ReadState(step int) (err error) {
	f, e := os.Open(o.resPath(step))
	if e != nil {
		return chk.Err("cannot open results file for step %d: %v", step, e)
	}
	defer f.Close()
	var st State
	if o.Sim.EncType == "json" {
		err = json.NewDecoder(f).Decode(&st)
	} else {
		err = gob.NewDecoder(f).Decode(&st)
	}
	if err != nil {
		return chk.Err("cannot decode state at step %d: %v", step, err)
	}
	if len(st.Q) != o.Nq || len(st.Lambda) != o.Nlam || len(st.Hprev) != o.Nq {
		return chk.Err("saved state does not match this run: nq=%d nlam=%d", len(st.Q), len(st.Lambda))
	}
	la.VecCopy(o.q, 1, st.Q)
	copy(o.lambda, st.Lambda)
	la.VecCopy(o.Hprev, 1, st.Hprev)
	return
}

// WriteGrid writes the grid vertex coordinates, one direction per line
func (o *Solver) WriteGrid() {
	var b bytes.Buffer
	io.Ff(&b, "%d\n", o.Grd.Ndim)
	for d := 0; d < o.Grd.Ndim; d++ {
		io.Ff(&b, "%d", o.Grd.N[d])
		for _, x := range o.Grd.X[d] {
			io.Ff(&b, " %g", x)
		}
		io.Ff(&b, "\n")
	}
	io.WriteFile(io.Sf("%s/%s_grid.txt", o.Sim.DirOut, o.Sim.Key), &b)
}

// printInfo prints the run configuration and the exact assembly counts
func (o *Solver) printInfo(n1d, n1o, n2d, n2o int) {
	p := &o.Sim.Params
	io.Pf("scheme     = %s\n", o.Var.Name())
	io.Pf("grid       = %v cells (%dD)\n", o.Grd.N[:o.Grd.Ndim], o.Grd.Ndim)
	io.Pf("unknowns   = %d fluxes, %d pressures, %d forces\n", o.Nq, o.Np, o.Nf)
	io.Pf("nnz A      = %d diag + %d off\n", n1d, n1o)
	io.Pf("nnz QTBNQ  = %d diag + %d off + %d border\n", n2d, n2o, 2*o.Np)
	io.Pf("dt         = %g  nt = %d  nsave = %d\n", p.Dt, p.Nt, p.Nsave)
	io.Pf("linsol     = %s  nproc = %d\n", o.Sim.LinSol.Name, o.Nproc)
}

// writeDiagnostics flushes the convergence log and the stage-time summary
func (o *Solver) writeDiagnostics() {
	if o.itBuf.Len() > 0 {
		io.WriteFile(io.Sf("%s/%s_convergence.txt", o.Sim.DirOut, o.Sim.Key), &o.itBuf)
	}
	var b bytes.Buffer
	io.Ff(&b, "%s", o.Stats.Summary())
	io.WriteFile(io.Sf("%s/%s_stats.txt", o.Sim.DirOut, o.Sim.Key), &b)
}
