// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/goibm
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "mumps" or "umfpack"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Timing    bool   `json:"timing"`    // show timing statistics
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
}

// ParamsData holds the time-advancement parameters
type ParamsData struct {
	Scheme    string  `json:"scheme"`    // solver variant: "navier-stokes" or "taira-colonius"
	Dt        float64 `json:"dt"`        // time-step size
	StartStep int     `json:"startstep"` // first step index; > 0 => restart from saved state
	Nt        int     `json:"nt"`        // number of time steps
	Nsave     int     `json:"nsave"`     // save interval in steps
	Atol      float64 `json:"atol"`      // absolute tolerance for solve monitoring
	Rtol      float64 `json:"rtol"`      // relative tolerance for solve monitoring
}

// SetDefault sets default values
func (o *ParamsData) SetDefault() {
	o.Scheme = "navier-stokes"
	o.Nsave = 1
	o.Atol = 1e-10
	o.Rtol = 1e-8
}

// Validate checks the parameters contract
func (o *ParamsData) Validate() (err error) {
	if o.Dt <= 0 {
		return chk.Err("time-step size must be positive. %g is invalid", o.Dt)
	}
	if o.Nt < 1 {
		return chk.Err("number of time steps must be positive. %d is invalid", o.Nt)
	}
	if o.StartStep < 0 {
		return chk.Err("start step cannot be negative. %d is invalid", o.StartStep)
	}
	if o.Nsave < 1 {
		return chk.Err("save interval must be positive. %d is invalid", o.Nsave)
	}
	return
}

// GridData points to the mesh file
type GridData struct {
	Mshfile string `json:"mshfile"` // file path of YAML mesh file
}

// BodyData points to the immersed-boundary file
type BodyData struct {
	File string `json:"file"` // file path of YAML body file
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data       `json:"data"`      // global data
	Flow      FlowData   `json:"flow"`      // flow description (raw)
	Params    ParamsData `json:"params"`    // time-advancement parameters
	LinSol    LinSolData `json:"linsol"`    // linear solver data
	Grid      GridData   `json:"grid"`      // mesh file
	Body      *BodyData  `json:"body"`      // immersed boundary file; nil for plain runs
	Functions FuncsData  `json:"functions"` // boundary-value time functions

	// derived
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. cavity2d.sim => cavity2d
	EncType string // encoder type
	Dir     string // input directory, for resolving mesh/body paths
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasePrev bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b := io.ReadFile(simfilepath)

	// set default values
	o.LinSol.SetDefault()
	o.Params.SetDefault()

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	o.Dir = os.ExpandEnv(filepath.Dir(simfilepath))
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/goibm/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	err = os.MkdirAll(o.DirOut, 0777)
	if err != nil {
		chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// check parameters
	err = o.Params.Validate()
	if err != nil {
		chk.Panic("ReadSim: invalid parameters:\n%v", err)
	}
	return &o
}

// MshPath returns the mesh file path relative to the input directory
func (o *Simulation) MshPath() string {
	if filepath.IsAbs(o.Grid.Mshfile) {
		return o.Grid.Mshfile
	}
	return filepath.Join(o.Dir, o.Grid.Mshfile)
}

// BodyPath returns the body file path relative to the input directory
func (o *Simulation) BodyPath() string {
	if o.Body == nil {
		return ""
	}
	if filepath.IsAbs(o.Body.File) {
		return o.Body.File
	}
	return filepath.Join(o.Dir, o.Body.File)
}
