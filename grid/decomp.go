// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/cpmech/gosl/chk"

// Layout holds the contiguous decomposition of the packed flux range and the
// pressure/force (lambda) range across cooperating processes. Every process
// sees the full vectors; ownership controls which rows it assembles and which
// explicit-term entries it computes. The partition covers each range exactly
// once with no overlap.
type Layout struct {
	Nproc int // number of processes
	Proc  int // this process
	Nq    int // length of packed flux vector
	Nlam  int // length of lambda vector (pressure + forces, without border)
}

// NewLayout returns a layout, checking the decomposition contract
func NewLayout(nproc, proc, nq, nlam int) (o *Layout, err error) {
	if nproc < 1 {
		return nil, chk.Err("number of processes must be positive. %d is invalid", nproc)
	}
	if proc < 0 || proc >= nproc {
		return nil, chk.Err("process id must be within [0,%d). %d is invalid", nproc, proc)
	}
	if nq < 1 || nlam < 1 {
		return nil, chk.Err("flux and lambda ranges must be non-empty. nq=%d nlam=%d", nq, nlam)
	}
	return &Layout{Nproc: nproc, Proc: proc, Nq: nq, Nlam: nlam}, nil
}

// chunk returns the owned sub-range of [0,n) for process p
func chunk(n, nproc, p int) (lo, hi int) {
	lo = p * n / nproc
	hi = (p + 1) * n / nproc
	return
}

// QRange returns this process' owned range [lo,hi) of packed flux rows
func (o *Layout) QRange() (lo, hi int) {
	return chunk(o.Nq, o.Nproc, o.Proc)
}

// LamRange returns this process' owned range [lo,hi) of lambda rows
func (o *Layout) LamRange() (lo, hi int) {
	return chunk(o.Nlam, o.Nproc, o.Proc)
}

// OwnsQ tells whether flux row i belongs to this process
func (o *Layout) OwnsQ(i int) bool {
	lo, hi := o.QRange()
	return i >= lo && i < hi
}

// OwnsLam tells whether lambda row i belongs to this process
func (o *Layout) OwnsLam(i int) bool {
	lo, hi := o.LamRange()
	return i >= lo && i < hi
}
