// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ns implements the fractional-step solver for the incompressible
// Navier-Stokes equations on a staggered Cartesian grid, with an optional
// immersed-boundary coupling in the manner of Taira and Colonius
package ns

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goibm/grid"
	"github.com/cpmech/goibm/inp"
)

// SpEntry is one nonzero entry of a sparse operator, holding the partner
// index (column index when stored by rows, row index when stored by columns)
type SpEntry struct {
	Idx int
	Val float64
}

// SpOp is a sparse rectangular operator stored by rows and by columns at the
// same time. The column adjacency makes products of the form op diag(d) op^T
// cheap without a general sparse matrix-matrix multiplication.
type SpOp struct {
	M, N int
	Rows [][]SpEntry // [M] entries (j, v) of row i
	Cols [][]SpEntry // [N] entries (i, v) of column j
}

// NewSpOp returns a new m by n operator with empty adjacency
func NewSpOp(m, n int) *SpOp {
	return &SpOp{M: m, N: n, Rows: make([][]SpEntry, m), Cols: make([][]SpEntry, n)}
}

// Put inserts entry (i, j, v) into both adjacencies
func (o *SpOp) Put(i, j int, v float64) {
	o.Rows[i] = append(o.Rows[i], SpEntry{j, v})
	o.Cols[j] = append(o.Cols[j], SpEntry{i, v})
}

// Nnz returns the number of stored entries
func (o *SpOp) Nnz() (n int) {
	for _, r := range o.Rows {
		n += len(r)
	}
	return
}

// MulVecAdd computes y += op * x for rows [rlo,rhi)
func (o *SpOp) MulVecAdd(y, x []float64, rlo, rhi int) {
	for i := rlo; i < rhi; i++ {
		for _, e := range o.Rows[i] {
			y[i] += e.Val * x[e.Idx]
		}
	}
}

// DiagTrMulVec computes y[j] = d[j] * (op^T x)[j] for columns [clo,chi)
func (o *SpOp) DiagTrMulVec(y, d, x []float64, clo, chi int) {
	for j := clo; j < chi; j++ {
		s := 0.0
		for _, e := range o.Cols[j] {
			s += e.Val * x[e.Idx]
		}
		y[j] = d[j] * s
	}
}

// CountNnzSplit partitions the column indices of one matrix row into those
// inside the owned band [rowStart,rowEnd) and the rest, giving the exact
// per-block preallocation counts of a distributed sparse row
func CountNnzSplit(cols []int, rowStart, rowEnd int) (inside, outside int) {
	for _, j := range cols {
		if j >= rowStart && j < rowEnd {
			inside++
		} else {
			outside++
		}
	}
	return
}

// Operators holds the diagonal and sparse operators of the fractional-step
// method, all expressed in flux variables q = u * faceArea. Every process
// stores the full diagonals and the full divergence/coupling adjacency;
// the implicit operator A and the Poisson product are assembled with owned
// rows only.
type Operators struct {
	Grd  *grid.Grid
	Lay  *grid.Layout
	Flow *inp.FlowDescription

	MHat []float64 // [nq] pressure-node distances straddling each flux
	RInv []float64 // [nq] inverse face areas
	BN   []float64 // [nq] dt * inverse of the time-diagonal of A

	QT *SpOp // [nlam x nq] divergence rows plus variant coupling rows
}

// NewOperators allocates the operators and builds the diagonals MHat and
// RInv; BN and the sparse operators are built separately
func NewOperators(g *grid.Grid, lay *grid.Layout, flow *inp.FlowDescription) (o *Operators) {
	o = &Operators{Grd: g, Lay: lay, Flow: flow}
	nq := g.QTotal()
	o.MHat = make([]float64, nq)
	o.RInv = make([]float64, nq)
	o.BN = make([]float64, nq)
	o.eachFlux(func(f, d int, I [3]int) {
		o.MHat[f] = g.MHat(d, I[d])
		o.RInv[f] = 1.0 / g.FaceArea(d, I)
	})
	o.QT = NewSpOp(lay.Nlam, nq)
	return
}

// eachFlux calls fn for every flux unknown in packed order
func (o *Operators) eachFlux(fn func(f, d int, I [3]int)) {
	g := o.Grd
	f := 0
	for d := 0; d < g.Ndim; d++ {
		m := g.CompSize(d)
		var I [3]int
		for I[2] = 0; I[2] < m[2]; I[2]++ {
			for I[1] = 0; I[1] < m[1]; I[1]++ {
				for I[0] = 0; I[0] < m[0]; I[0]++ {
					fn(f, d, I)
					f++
				}
			}
		}
	}
}

// BuildBN fills BN = dt / (MHat * RInv); applying BN after the implicit
// solve inverts the time-derivative block of A to first order in dt
func (o *Operators) BuildBN(dt float64) {
	for f := range o.BN {
		o.BN[f] = dt / (o.MHat[f] * o.RInv[f])
	}
}

// BuildDivergence fills the pressure rows of QT. In flux variables the
// discrete divergence of each cell is the sum of outgoing minus incoming
// fluxes, so every entry is +1 or -1; boundary faces are not unknowns and
// contribute to the right-hand side instead.
func (o *Operators) BuildDivergence() {
	g := o.Grd
	var I [3]int
	for I[2] = 0; I[2] < g.N[2]; I[2]++ {
		for I[1] = 0; I[1] < g.N[1]; I[1]++ {
			for I[0] = 0; I[0] < g.N[0]; I[0]++ {
				r := g.PIndex(I)
				for d := 0; d < g.Ndim; d++ {
					if I[d] < g.N[d]-1 {
						o.QT.Put(r, g.QIndex(d, I), 1.0)
					}
					if I[d] > 0 {
						J := I
						J[d]--
						o.QT.Put(r, g.QIndex(d, J), -1.0)
					}
				}
			}
		}
	}
}

// transArea returns the area of the momentum control-volume face transverse
// to the flux direction d along direction e
func (o *Operators) transArea(d, e int, I [3]int) (a float64) {
	a = o.Grd.MHat(d, I[d])
	for k := 0; k < 3; k++ {
		if k != d && k != e {
			a *= o.Grd.Dx[k][I[k]]
		}
	}
	return
}

// aLinks visits the viscous links of flux (d, I). For each link it reports
// the packed neighbour index fg (-1 when the neighbour carries a boundary
// value), the conductance s = area/distance, the coefficient cP multiplying
// the centre velocity, the coefficient cB multiplying the boundary value,
// and the domain face the link crosses (meaningful only when fg < 0).
//
// A Dirichlet wall transverse to d couples through a mirrored ghost at one
// cell width, which doubles both coefficients; a Neumann wall decouples.
func (o *Operators) aLinks(d int, I [3]int, link func(fg int, s, cP, cB float64, face int)) {
	g := o.Grd
	af := g.FaceArea(d, I)
	for e := 0; e < g.Ndim; e++ {
		for _, side := range [2]int{-1, 1} {
			face := 2 * e
			if side > 0 {
				face++
			}
			J := I
			J[e] += side
			if e == d {
				s := af / g.DistNormal(d, I[d], side)
				if J[d] >= 0 && J[d] <= g.N[d]-2 {
					link(g.QIndex(d, J), s, 1, 0, face)
				} else if o.Flow.Faces[face].Kind[d] == inp.Dirichlet {
					link(-1, s, 1, 1, face)
				} else {
					link(-1, s, 0, 0, face)
				}
				continue
			}
			s := o.transArea(d, e, I) / g.DistTrans(e, I[e], side)
			if J[e] >= 0 && J[e] <= g.N[e]-1 {
				link(g.QIndex(d, J), s, 1, 0, face)
			} else if o.Flow.Faces[face].Kind[d] == inp.Dirichlet {
				link(-1, s, 2, 2, face)
			} else {
				link(-1, s, 0, 0, face)
			}
		}
	}
}

// BuildA assembles the owned rows of the implicit velocity operator
//
//	A = MHat RInv / dt - (nu/2) L
//
// where L is the viscous operator in flux variables. A counting pass sizes
// the triplet exactly before any entry is put; the returned counts split the
// nonzeros into the owned diagonal block and the off-process block. The
// scaling by face areas on both sides keeps A symmetric on stretched grids.
func (o *Operators) BuildA(A *la.Triplet, nu, dt float64) (nnzDiag, nnzOff int) {
	lo, hi := o.Lay.QRange()
	cols := make([]int, 0, 6)
	o.eachFlux(func(f, d int, I [3]int) {
		if f < lo || f >= hi {
			return
		}
		cols = cols[:0]
		o.aLinks(d, I, func(fg int, s, cP, cB float64, face int) {
			if fg >= 0 {
				cols = append(cols, fg)
			}
		})
		dn, on := CountNnzSplit(cols, lo, hi)
		nnzDiag += dn + 1 // the diagonal entry is always owned
		nnzOff += on
	})
	A.Init(o.Lay.Nq, o.Lay.Nq, nnzDiag+nnzOff)
	o.eachFlux(func(f, d int, I [3]int) {
		if f < lo || f >= hi {
			return
		}
		af := 1.0 / o.RInv[f]
		diag := o.MHat[f] / (af * dt)
		o.aLinks(d, I, func(fg int, s, cP, cB float64, face int) {
			if fg >= 0 {
				A.Put(f, fg, -0.5*nu*s*o.RInv[fg]/af)
			}
			diag += 0.5 * nu * cP * s / (af * af)
		})
		A.Put(f, f, diag)
	})
	return
}

// QTBNQRow accumulates row r of QT BN Q into the scratch vector acc and
// returns the touched column indices. mark must be all-false on entry; the
// caller clears acc and mark over touched before the next call.
func (o *Operators) QTBNQRow(r int, acc []float64, mark []bool, touched []int) []int {
	touched = touched[:0]
	for _, ef := range o.QT.Rows[r] {
		w := ef.Val * o.BN[ef.Idx]
		for _, er := range o.QT.Cols[ef.Idx] {
			if !mark[er.Idx] {
				mark[er.Idx] = true
				touched = append(touched, er.Idx)
			}
			acc[er.Idx] += w * er.Val
		}
	}
	return touched
}
