// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// PlainNS is the plain fractional-step scheme without an immersed boundary:
// lambda holds pressure only, QT reduces to the discrete divergence and the
// boundary residual is identically zero
type PlainNS struct{}

// register variant
func init() {
	SetVariant("navier-stokes", func(o *Solver) (Variant, error) {
		if o.Body != nil {
			return nil, chk.Err("scheme \"navier-stokes\" cannot take an immersed body; use \"taira-colonius\"")
		}
		return &PlainNS{}, nil
	})
}

// Name returns the scheme name
func (o *PlainNS) Name() string { return "navier-stokes" }

// NumForces returns zero: there are no Lagrangian unknowns
func (o *PlainNS) NumForces() int { return 0 }

// AssembleCoupling does nothing: the divergence rows are all there is
func (o *PlainNS) AssembleCoupling(s *Solver) error { return nil }

// BoundaryResidual zeroes r2
func (o *PlainNS) BoundaryResidual(s *Solver, t float64) {
	la.VecFill(s.r2, 0)
}
