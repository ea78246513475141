// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhiProperties(t *testing.T) {

	// compact support
	assert.Zero(t, Phi(1.5001))
	assert.Zero(t, Phi(-2))

	// even
	for _, r := range []float64{0.1, 0.49, 0.8, 1.2} {
		assert.InDelta(t, Phi(r), Phi(-r), 1e-15)
	}

	// continuous across the breakpoints
	assert.InDelta(t, Phi(0.5-1e-9), Phi(0.5+1e-9), 1e-6)
	assert.InDelta(t, Phi(1.5-1e-9), 0, 1e-4)

	// partition of unity: the grid points within support of any offset sum
	// to one, which is what makes regularization conserve momentum
	for _, r := range []float64{0, 0.13, 0.25, 0.4999, 0.77} {
		sum := 0.0
		for i := -2; i <= 2; i++ {
			sum += Phi(r + float64(i))
		}
		assert.InDelta(t, 1.0, sum, 1e-14)
	}
}

func TestDeltaScaling(t *testing.T) {
	h := 0.05
	assert.InDelta(t, Phi(0.2)/h, Delta(0.2*h, h), 1e-13)

	// quadrature of the kernel over the grid is one for any offset
	for _, off := range []float64{0, 0.3 * h, 0.5 * h} {
		sum := 0.0
		for i := -3; i <= 3; i++ {
			sum += Delta(float64(i)*h-off, h) * h
		}
		assert.InDelta(t, 1.0, sum, 1e-14)
	}
}

func TestBodyCircle(t *testing.T) {
	bf := &BodyFile{Type: "circle", Center: []float64{0.5, 0.5}, Radius: 0.2, N: 16}
	b, err := NewBody(bf, 2)
	if assert.NoError(t, err) {
		assert.Equal(t, 16, b.Nmarkers())
		for _, x := range b.X {
			r := math.Hypot(x[0]-0.5, x[1]-0.5)
			assert.InDelta(t, 0.2, r, 1e-14)
		}
		// first marker sits on the positive x axis of the circle
		assert.InDelta(t, 0.7, b.X[0][0], 1e-14)
		assert.InDelta(t, 0.5, b.X[0][1], 1e-14)
	}

	// circles are 2D only
	_, err = NewBody(bf, 3)
	assert.Error(t, err)
}

func TestBodyPoints(t *testing.T) {
	bf := &BodyFile{Type: "points", Points: [][]float64{{0, 0}, {1, 2}}}
	b, err := NewBody(bf, 2)
	if assert.NoError(t, err) {
		assert.Equal(t, 2, b.Nmarkers())
		assert.Equal(t, 2, b.Ndim)
	}

	// wrong dimensionality
	_, err = NewBody(bf, 3)
	assert.Error(t, err)

	// empty set
	_, err = NewBody(&BodyFile{Type: "points"}, 2)
	assert.Error(t, err)

	// unknown type
	_, err = NewBody(&BodyFile{Type: "blob"}, 2)
	assert.Error(t, err)
}
