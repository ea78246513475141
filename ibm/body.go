// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ibm implements the Lagrangian immersed boundary: marker sets and
// the regularized delta kernel coupling markers to nearby grid fluxes
package ibm

import (
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// BodyFile holds the YAML description of an immersed body
type BodyFile struct {
	Type   string      `yaml:"type"`   // "points" or "circle"
	Points [][]float64 `yaml:"points"` // type=points: marker coordinates
	Center []float64   `yaml:"center"` // type=circle: centre
	Radius float64     `yaml:"radius"` // type=circle: radius
	N      int         `yaml:"n"`      // type=circle: number of markers
}

// Body holds the Lagrangian markers of one immersed boundary. Markers are
// fixed in space; their prescribed velocity comes from the boundary-residual
// assembly of the solver variant.
type Body struct {
	Ndim int         // space dimension
	X    [][]float64 // [nmarkers][ndim] marker coordinates
}

// ReadBody reads a YAML body file
func ReadBody(fname string, ndim int) (b *Body, err error) {
	dat, e := os.ReadFile(fname)
	if e != nil {
		return nil, chk.Err("cannot read body file %q: %v", fname, e)
	}
	var bf BodyFile
	if e := yaml.Unmarshal(dat, &bf); e != nil {
		return nil, chk.Err("cannot unmarshal body file %q: %v", fname, e)
	}
	return NewBody(&bf, ndim)
}

// NewBody builds a marker set from body-file data
func NewBody(bf *BodyFile, ndim int) (b *Body, err error) {
	b = &Body{Ndim: ndim}
	switch bf.Type {
	case "points":
		if len(bf.Points) == 0 {
			return nil, chk.Err("body of type \"points\" has no points")
		}
		for _, p := range bf.Points {
			if len(p) != ndim {
				return nil, chk.Err("body point has %d coordinates; %d required", len(p), ndim)
			}
			b.X = append(b.X, p)
		}
	case "circle":
		if ndim != 2 {
			return nil, chk.Err("body of type \"circle\" requires a 2D grid")
		}
		if bf.N < 3 || bf.Radius <= 0 || len(bf.Center) != 2 {
			return nil, chk.Err("body of type \"circle\" needs n>=3, radius>0 and a 2D centre")
		}
		for i := 0; i < bf.N; i++ {
			t := 2.0 * math.Pi * float64(i) / float64(bf.N)
			b.X = append(b.X, []float64{
				bf.Center[0] + bf.Radius*math.Cos(t),
				bf.Center[1] + bf.Radius*math.Sin(t),
			})
		}
	default:
		return nil, chk.Err("unknown body type %q", bf.Type)
	}
	return
}

// Nmarkers returns the number of Lagrangian markers
func (o *Body) Nmarkers() int {
	return len(o.X)
}
