// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goibm/inp"
)

// Field stores one velocity component on its staggered positions plus one
// ring of ghost values used by the explicit terms. The ghost ring carries
// boundary information: the boundary-face value in the component's own
// direction, a mirrored value across transverse Dirichlet walls and a
// copied value across Neumann walls.
type Field struct {
	m [3]int // interior sizes
	p [3]int // padded sizes
	v []float64
}

func newField(m [3]int) *Field {
	f := &Field{m: m}
	for k := 0; k < 3; k++ {
		f.p[k] = m[k] + 2
	}
	f.v = make([]float64, f.p[0]*f.p[1]*f.p[2])
	return f
}

func (o *Field) idx(i, j, k int) int {
	return ((k+1)*o.p[1]+(j+1))*o.p[0] + i + 1
}

// At returns the value at (i,j,k); indices may be -1 or m[·] to reach ghosts
func (o *Field) At(i, j, k int) float64 { return o.v[o.idx(i, j, k)] }

// Set stores the value at (i,j,k)
func (o *Field) Set(i, j, k int, v float64) { o.v[o.idx(i, j, k)] = v }

// syncVelocity copies the interior velocities u = q/area from the packed
// flux vector into the ghosted component fields
func (o *Solver) syncVelocity() {
	o.ops.eachFlux(func(f, d int, I [3]int) {
		o.gh[d].Set(I[0], I[1], I[2], o.q[f]*o.ops.RInv[f])
	})
}

// updateBoundaryGhosts refreshes the ghost ring of every component field
// from the boundary conditions at time t. Dirichlet values in the
// component's own direction sit exactly on the domain face; across
// transverse walls the ghost mirrors the interior value so that linear
// interpolation hits the wall value at the wall.
func (o *Solver) updateBoundaryGhosts(t float64) {
	g := o.Grd
	for d := 0; d < g.Ndim; d++ {
		m := g.CompSize(d)
		fld := o.gh[d]
		for e := 0; e < g.Ndim; e++ {
			a, b := (e+1)%3, (e+2)%3
			for _, side := range [2]int{-1, 1} {
				face := 2 * e
				gslot, near := -1, 0
				if side > 0 {
					face++
					gslot, near = m[e], m[e]-1
				}
				kind := o.Flow.Faces[face].Kind[d]
				vb := o.Flow.Velocity(face, d, t)
				var I [3]int
				for I[a] = 0; I[a] < m[a]; I[a]++ {
					for I[b] = 0; I[b] < m[b]; I[b]++ {
						I[e] = near
						ui := fld.At(I[0], I[1], I[2])
						var gv float64
						switch {
						case kind == inp.Neumann:
							gv = ui
						case e == d:
							gv = vb
						default:
							gv = 2.0*vb - ui
						}
						I[e] = gslot
						fld.Set(I[0], I[1], I[2], gv)
					}
				}
			}
		}
	}
}

// cornerVel interpolates the transverse component e at a corner of the
// momentum cell of flux (d, I): e-face index I[e]+off along e, averaged
// over the two cells straddling the d-face
func (o *Solver) cornerVel(e, d int, I [3]int, off int) float64 {
	fe := o.gh[e]
	J := I
	J[e] = I[e] + off
	J[d] = I[d]
	va := fe.At(J[0], J[1], J[2])
	J[d] = I[d] + 1
	vb := fe.At(J[0], J[1], J[2])
	return 0.5 * (va + vb)
}

// calcExplicitTerms evaluates the conservative convection term and the
// explicit half of the diffusion for the owned fluxes, accumulating
//
//	rn = u/dt + (nu/2) lap(u) + gamma H + zeta Hprev
//
// with Adams-Bashforth coefficients gamma=3/2, zeta=-1/2, falling back to
// forward Euler on the first step after a cold start. The component fields
// and their ghost ring are rebuilt here from the current q, so the
// evaluation is a function of q, Hprev and the boundary data at the current
// time only; a restarted run therefore reproduces the straight run exactly.
func (o *Solver) calcExplicitTerms() {
	o.syncVelocity()
	o.updateBoundaryGhosts(float64(o.TimeStep) * o.Sim.Params.Dt)
	g := o.Grd
	nu := o.Flow.Nu
	dt := o.Sim.Params.Dt
	gamma, zeta := 1.5, -0.5
	if o.firstStep {
		gamma, zeta = 1.0, 0.0
	}
	lo, hi := o.Lay.QRange()
	o.ops.eachFlux(func(f, d int, I [3]int) {
		if f < lo || f >= hi {
			o.H[f] = 0
			o.rn[f] = 0
			return
		}
		fld := o.gh[d]
		uP := fld.At(I[0], I[1], I[2])
		mh := o.ops.MHat[f]
		af := 1.0 / o.ops.RInv[f]

		// convection: difference of momentum fluxes across the cell
		var ed [3]int
		ed[d] = 1
		uE := fld.At(I[0]+ed[0], I[1]+ed[1], I[2]+ed[2])
		uW := fld.At(I[0]-ed[0], I[1]-ed[1], I[2]-ed[2])
		adv := (0.25*(uP+uE)*(uP+uE) - 0.25*(uW+uP)*(uW+uP)) / mh
		for e := 0; e < g.Ndim; e++ {
			if e == d {
				continue
			}
			var ee [3]int
			ee[e] = 1
			uN := 0.5 * (uP + fld.At(I[0]+ee[0], I[1]+ee[1], I[2]+ee[2]))
			uS := 0.5 * (uP + fld.At(I[0]-ee[0], I[1]-ee[1], I[2]-ee[2]))
			vN := o.cornerVel(e, d, I, 0)
			vS := o.cornerVel(e, d, I, -1)
			adv += (uN*vN - uS*vS) / g.Dx[e][I[e]]
		}
		h := -adv

		// explicit diffusion through the ghost ring; the wall distances and
		// ghost values reproduce exactly the couplings of the implicit half
		lap := 0.0
		for e := 0; e < g.Ndim; e++ {
			var ee [3]int
			ee[e] = 1
			uPl := fld.At(I[0]+ee[0], I[1]+ee[1], I[2]+ee[2])
			uMi := fld.At(I[0]-ee[0], I[1]-ee[1], I[2]-ee[2])
			var sPl, sMi float64
			if e == d {
				sPl = af / g.DistNormal(d, I[d], 1)
				sMi = af / g.DistNormal(d, I[d], -1)
			} else {
				area := o.ops.transArea(d, e, I)
				sPl = area / g.DistTrans(e, I[e], 1)
				sMi = area / g.DistTrans(e, I[e], -1)
			}
			lap += sPl*(uPl-uP) + sMi*(uMi-uP)
		}
		lap /= mh * af

		o.H[f] = h
		o.rn[f] = uP/dt + 0.5*nu*lap + gamma*h + zeta*o.Hprev[f]
	})
	la.VecCopy(o.Hprev, 1, o.H)
	o.join(o.Hprev, o.wsQ)
}

// generateBC1 collects the boundary contributions of the implicit diffusion
// at time t into bc1
func (o *Solver) generateBC1(t float64) {
	la.VecFill(o.bc1, 0)
	nu := o.Flow.Nu
	lo, hi := o.Lay.QRange()
	o.ops.eachFlux(func(f, d int, I [3]int) {
		if f < lo || f >= hi {
			return
		}
		mh := o.ops.MHat[f]
		af := 1.0 / o.ops.RInv[f]
		o.ops.aLinks(d, I, func(fg int, s, cP, cB float64, face int) {
			if fg >= 0 || cB == 0 {
				return
			}
			vb := o.Flow.Velocity(face, d, t)
			o.bc1[f] += 0.5 * nu * cB * s * vb / (mh * af)
		})
	})
}
