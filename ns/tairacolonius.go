// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goibm/ibm"
)

// TairaColonius couples a stationary immersed boundary to the fractional
// step: QT gains one interpolation row per marker and component, built from
// the regularized delta kernel, and lambda gains the corresponding force
// unknowns. The interpolation and regularization operators are exact
// transposes of each other, which keeps the coupled Poisson product
// symmetric.
type TairaColonius struct {
	body *ibm.Body
}

// register variant
func init() {
	SetVariant("taira-colonius", func(o *Solver) (Variant, error) {
		if o.Body == nil {
			return nil, chk.Err("scheme \"taira-colonius\" requires a body file")
		}
		return &TairaColonius{body: o.Body}, nil
	})
}

// Name returns the scheme name
func (o *TairaColonius) Name() string { return "taira-colonius" }

// NumForces returns the number of Lagrangian force unknowns
func (o *TairaColonius) NumForces() int { return o.body.Nmarkers() * o.body.Ndim }

// AssembleCoupling appends the marker interpolation rows to QT. The kernel
// width at each marker follows the widths of the cell containing it, so the
// coupling stays consistent on stretched grids.
func (o *TairaColonius) AssembleCoupling(s *Solver) error {
	g := s.Grd
	np := g.NumCells()
	for m, xm := range o.body.X {
		var cell [3]int
		for k := 0; k < g.Ndim; k++ {
			c := locateCell(g.X[k], xm[k])
			if c < 0 {
				return chk.Err("marker %d at %v lies outside the grid", m, xm)
			}
			cell[k] = c
		}
		for c := 0; c < g.Ndim; c++ {
			o.markerRow(s, np+m*g.Ndim+c, c, xm, cell)
		}
	}
	return nil
}

// markerRow fills one interpolation row: component d of the velocity at the
// marker as a weighted sum of nearby fluxes. The MHat weight turns the
// kernel product into a quadrature over the staggered momentum cells.
func (o *TairaColonius) markerRow(s *Solver, row, d int, xm []float64, cell [3]int) {
	g := s.Grd
	msz := g.CompSize(d)
	coord := func(k, i int) float64 {
		if k == d {
			return g.X[k][i+1]
		}
		return g.Xc[k][i]
	}
	var lo, hi [3]int
	for k := 0; k < 3; k++ {
		lo[k], hi[k] = 0, msz[k]
		if k < g.Ndim {
			rad := 1.5 * g.Dx[k][cell[k]]
			lo[k], hi[k] = indexWindow(func(i int) float64 { return coord(k, i) }, msz[k], xm[k], rad)
		}
	}
	var I [3]int
	for I[2] = lo[2]; I[2] < hi[2]; I[2]++ {
		for I[1] = lo[1]; I[1] < hi[1]; I[1]++ {
			for I[0] = lo[0]; I[0] < hi[0]; I[0]++ {
				w := 1.0
				for k := 0; k < g.Ndim; k++ {
					w *= ibm.Delta(coord(k, I[k])-xm[k], g.Dx[k][cell[k]])
				}
				if w == 0 {
					continue
				}
				f := g.QIndex(d, I)
				s.ops.QT.Put(row, f, w*s.ops.MHat[f])
			}
		}
	}
}

// BoundaryResidual fills r2: zero on the pressure block and the prescribed
// marker velocities on the force block. The body is stationary, so the
// no-slip targets are zero.
func (o *TairaColonius) BoundaryResidual(s *Solver, t float64) {
	la.VecFill(s.r2, 0)
}

// locateCell returns the index of the cell whose interval contains v, given
// the vertex coordinates x; -1 means outside
func locateCell(x []float64, v float64) int {
	if v < x[0] || v > x[len(x)-1] {
		return -1
	}
	for i := 0; i < len(x)-2; i++ {
		if v < x[i+1] {
			return i
		}
	}
	return len(x) - 2
}

// indexWindow returns the half-open index range whose coordinates fall
// within rad of x
func indexWindow(coord func(int) float64, n int, x, rad float64) (lo, hi int) {
	lo, hi = n, 0
	for i := 0; i < n; i++ {
		c := coord(i)
		if c >= x-rad && c <= x+rad {
			if i < lo {
				lo = i
			}
			hi = i + 1
		}
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	return
}
