// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form flow solutions used to verify the solver
package ana

import "math"

// TaylorGreen is the decaying vortex array on the periodic square
// [0,2pi) x [0,2pi), a classical accuracy benchmark for incompressible
// solvers. The velocity field is divergence free at every instant.
type TaylorGreen struct {
	Nu float64 // kinematic viscosity
}

// decay returns the viscous amplitude at time t
func (o TaylorGreen) decay(t float64) float64 {
	return math.Exp(-2.0 * o.Nu * t)
}

// U returns the x velocity at (x, y, t)
func (o TaylorGreen) U(x, y, t float64) float64 {
	return math.Cos(x) * math.Sin(y) * o.decay(t)
}

// V returns the y velocity at (x, y, t)
func (o TaylorGreen) V(x, y, t float64) float64 {
	return -math.Sin(x) * math.Cos(y) * o.decay(t)
}

// P returns the pressure at (x, y, t), zero-mean over the square
func (o TaylorGreen) P(x, y, t float64) float64 {
	d := o.decay(t)
	return -0.25 * (math.Cos(2.0*x) + math.Cos(2.0*y)) * d * d
}

// CouetteStart is the impulsively started plane Couette flow between a
// fixed wall at y=0 and a wall moving with velocity U at y=H. The series
// converges quickly for nu t / H^2 above a few percent.
type CouetteStart struct {
	U  float64 // velocity of the moving wall
	H  float64 // gap height
	Nu float64 // kinematic viscosity
}

// Ux returns the x velocity at height y and time t, summing nterms of the
// eigenfunction expansion
func (o CouetteStart) Ux(y, t float64, nterms int) float64 {
	u := o.U * y / o.H
	for n := 1; n <= nterms; n++ {
		k := float64(n) * math.Pi / o.H
		u -= 2.0 * o.U / (float64(n) * math.Pi) * math.Pow(-1, float64(n+1)) *
			math.Sin(k*y) * math.Exp(-o.Nu*k*k*t)
	}
	return u
}
