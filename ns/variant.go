// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import "github.com/cpmech/gosl/chk"

// Variant customizes the two points where the solver schemes differ: the
// coupling rows appended to QT during assembly and the boundary residual r2
// of the pressure/force system. Every other substep of the time advancement
// is shared.
type Variant interface {

	// Name returns the scheme name
	Name() string

	// NumForces returns the number of Lagrangian force unknowns appended
	// after the pressure block of lambda
	NumForces() int

	// AssembleCoupling appends the variant rows to QT; the divergence rows
	// are already in place when this is called
	AssembleCoupling(o *Solver) error

	// BoundaryResidual fills r2 with the prescribed boundary residual at
	// time t
	BoundaryResidual(o *Solver, t float64)
}

// AllocatorType defines a function that allocates a solver variant
type AllocatorType func(o *Solver) (Variant, error)

// variants holds the registered variant allocators, keyed by scheme name
var variants = make(map[string]AllocatorType)

// SetVariant registers a new variant allocator
func SetVariant(scheme string, fcn AllocatorType) {
	if _, ok := variants[scheme]; ok {
		chk.Panic("cannot register variant %q twice", scheme)
	}
	variants[scheme] = fcn
}

// NewVariant allocates a variant from the factory
func NewVariant(scheme string, o *Solver) (Variant, error) {
	fcn, ok := variants[scheme]
	if !ok {
		return nil, chk.Err("cannot find scheme named %q", scheme)
	}
	return fcn(o)
}
