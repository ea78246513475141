// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibm

import "math"

// Phi implements the 3-point regularized kernel of Roma, Peskin and Berger.
// Support is |r| <= 1.5 grid cells.
func Phi(r float64) float64 {
	a := math.Abs(r)
	switch {
	case a <= 0.5:
		return (1.0 + math.Sqrt(1.0-3.0*a*a)) / 3.0
	case a <= 1.5:
		b := 1.0 - a
		return (5.0 - 3.0*a - math.Sqrt(1.0-3.0*b*b)) / 6.0
	}
	return 0
}

// Delta returns the one-dimensional discrete delta function with grid
// spacing h evaluated at distance dist
func Delta(dist, h float64) float64 {
	return Phi(dist/h) / h
}
