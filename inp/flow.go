// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// BcKind defines the type of a boundary condition on a domain face
type BcKind int

const (
	// Dirichlet prescribes the velocity value on the face
	Dirichlet BcKind = iota

	// Neumann prescribes a zero normal gradient on the face
	Neumann
)

// face indices in FlowDescription.Faces
const (
	Xmin = iota
	Xmax
	Ymin
	Ymax
	Zmin
	Zmax
)

// faceNames maps face keys in the .sim file to face indices
var faceNames = map[string]int{
	"xmin": Xmin, "xmax": Xmax,
	"ymin": Ymin, "ymax": Ymax,
	"zmin": Zmin, "zmax": Zmax,
}

// BcData holds the raw boundary condition of one face as read from file
type BcData struct {
	Face   string    `json:"face"`   // "xmin", "xmax", "ymin", "ymax", "zmin", "zmax"
	Kinds  []string  `json:"kinds"`  // [ndim] "dirichlet" or "neumann", per velocity component
	Values []float64 `json:"values"` // [ndim] boundary values, per velocity component
	Funcs  []string  `json:"funcs"`  // [ndim] optional time functions overriding Values
}

// FlowData holds the raw flow description as read from file
type FlowData struct {
	Nu      float64   `json:"nu"`      // kinematic viscosity
	Initial []float64 `json:"initial"` // [ndim] initial velocity
	Bcs     []*BcData `json:"bcs"`     // boundary conditions, one entry per face
}

// FaceBc holds the derived boundary condition of one domain face
type FaceBc struct {
	Kind [3]BcKind  // per velocity component
	Val  [3]float64 // per velocity component
	Fcn  [3]dbf.T   // optional time functions; nil => constant Val
}

// FlowDescription holds the immutable, derived flow configuration. It is
// built once from FlowData and only read afterwards.
type FlowDescription struct {
	Nu      float64    // kinematic viscosity
	Initial [3]float64 // initial velocity
	Faces   [6]FaceBc  // per-face boundary conditions
}

// Velocity returns the boundary velocity of component comp on the given
// face at time t
func (o *FlowDescription) Velocity(face, comp int, t float64) float64 {
	if f := o.Faces[face].Fcn[comp]; f != nil {
		return f.F(t, nil)
	}
	return o.Faces[face].Val[comp]
}

// DeriveFlow builds the FlowDescription from raw data, resolving time
// functions against the function database
func DeriveFlow(fd *FlowData, funcs FuncsData, ndim int) (o *FlowDescription, err error) {
	if fd.Nu <= 0 {
		return nil, chk.Err("kinematic viscosity must be positive. %g is invalid", fd.Nu)
	}
	o = new(FlowDescription)
	o.Nu = fd.Nu
	for i, v := range fd.Initial {
		if i < 3 {
			o.Initial[i] = v
		}
	}
	seen := make(map[int]bool)
	for _, bc := range fd.Bcs {
		idx, ok := faceNames[bc.Face]
		if !ok {
			return nil, chk.Err("unknown face name %q in boundary conditions", bc.Face)
		}
		if idx >= 2*ndim {
			return nil, chk.Err("face %q is not available in %dD", bc.Face, ndim)
		}
		if seen[idx] {
			return nil, chk.Err("face %q has more than one boundary condition", bc.Face)
		}
		seen[idx] = true
		if len(bc.Kinds) != ndim || len(bc.Values) != ndim {
			return nil, chk.Err("face %q: %d kinds and %d values given; %d required", bc.Face, len(bc.Kinds), len(bc.Values), ndim)
		}
		for c := 0; c < ndim; c++ {
			switch bc.Kinds[c] {
			case "dirichlet":
				o.Faces[idx].Kind[c] = Dirichlet
			case "neumann":
				o.Faces[idx].Kind[c] = Neumann
			default:
				return nil, chk.Err("face %q: unknown boundary condition kind %q", bc.Face, bc.Kinds[c])
			}
			o.Faces[idx].Val[c] = bc.Values[c]
			if len(bc.Funcs) == ndim && bc.Funcs[c] != "" && bc.Funcs[c] != "none" {
				o.Faces[idx].Fcn[c], err = funcs.Get(bc.Funcs[c])
				if err != nil {
					return nil, err
				}
			}
		}
	}
	for idx := 0; idx < 2*ndim; idx++ {
		if !seen[idx] {
			return nil, chk.Err("missing boundary condition for face index %d", idx)
		}
	}
	return
}
