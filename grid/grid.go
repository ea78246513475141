// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements the staggered Cartesian grid and its
// contiguous per-process decomposition
package grid

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// SubDomain holds one segment of a grid direction read from the mesh file
type SubDomain struct {
	End          float64 `yaml:"end"`          // end coordinate of segment
	Cells        int     `yaml:"cells"`        // number of cells in segment
	StretchRatio float64 `yaml:"stretchRatio"` // ratio between consecutive cell widths; 1 => uniform
}

// DirData holds the mesh-file description of one direction
type DirData struct {
	Direction  string      `yaml:"direction"`  // "x", "y" or "z"
	Start      float64     `yaml:"start"`      // start coordinate
	SubDomains []SubDomain `yaml:"subDomains"` // segments
}

// MeshFile holds the full mesh-file contents
type MeshFile struct {
	Mesh []DirData `yaml:"mesh"`
}

// Grid holds the staggered Cartesian grid: vertex coordinates, cell widths
// and cell-centre positions per direction. In 2D the z direction collapses
// to a single unit cell so that all metric formulae work unchanged.
//
// Staggering: the velocity component along direction d lives at the
// interior faces normal to d; component d therefore has N[d]-1 entries in
// direction d and N[k] entries in directions k != d. Pressure lives at cell
// centres. Fluxes on the domain boundary are not unknowns; they carry the
// boundary-condition values.
type Grid struct {
	Ndim  int          // space dimension: 2 or 3
	N     [3]int       // number of cells per direction (N[2]=1 in 2D)
	X     [3][]float64 // [N[d]+1] vertex coordinates
	Dx    [3][]float64 // [N[d]] cell widths
	Xc    [3][]float64 // [N[d]] cell-centre coordinates
	DxMid [3][]float64 // [N[d]-1] distances between adjacent cell centres
}

// ReadMesh reads a YAML mesh file and builds the grid
func ReadMesh(fname string) (g *Grid, err error) {
	b, e := os.ReadFile(fname)
	if e != nil {
		return nil, chk.Err("cannot read mesh file %q: %v", fname, e)
	}
	var mf MeshFile
	if e := yaml.Unmarshal(b, &mf); e != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q: %v", fname, e)
	}
	return NewGrid(&mf)
}

// NewGrid builds a grid from mesh-file data, checking the mesh contract:
// directions given in x,y[,z] order, monotonically increasing coordinates
// and strictly positive spacings
func NewGrid(mf *MeshFile) (g *Grid, err error) {
	ndim := len(mf.Mesh)
	if ndim != 2 && ndim != 3 {
		return nil, chk.Err("mesh must define 2 or 3 directions. %d is invalid", ndim)
	}
	g = new(Grid)
	g.Ndim = ndim
	names := []string{"x", "y", "z"}
	for d, dd := range mf.Mesh {
		if dd.Direction != names[d] {
			return nil, chk.Err("directions must appear in x,y,z order. got %q at position %d", dd.Direction, d)
		}
		x := []float64{dd.Start}
		for _, sub := range dd.SubDomains {
			if sub.Cells < 1 {
				return nil, chk.Err("direction %q: number of cells must be positive. %d is invalid", dd.Direction, sub.Cells)
			}
			if sub.End <= x[len(x)-1] {
				return nil, chk.Err("direction %q: segment end %g does not increase from %g", dd.Direction, sub.End, x[len(x)-1])
			}
			if sub.StretchRatio <= 0 {
				return nil, chk.Err("direction %q: stretch ratio must be positive. %g is invalid", dd.Direction, sub.StretchRatio)
			}
			x = appendSegment(x, sub.End, sub.Cells, sub.StretchRatio)
		}
		g.N[d] = len(x) - 1
		if g.N[d] < 2 {
			return nil, chk.Err("direction %q: at least 2 cells are required. %d is invalid", dd.Direction, g.N[d])
		}
		g.X[d] = x
	}
	if ndim == 2 {
		g.N[2] = 1
		g.X[2] = []float64{0, 1}
	}
	for d := 0; d < 3; d++ {
		g.Dx[d] = make([]float64, g.N[d])
		g.Xc[d] = make([]float64, g.N[d])
		for i := 0; i < g.N[d]; i++ {
			g.Dx[d][i] = g.X[d][i+1] - g.X[d][i]
			g.Xc[d][i] = 0.5 * (g.X[d][i] + g.X[d][i+1])
		}
		if g.N[d] > 1 {
			g.DxMid[d] = make([]float64, g.N[d]-1)
			for i := 0; i < g.N[d]-1; i++ {
				g.DxMid[d][i] = g.Xc[d][i+1] - g.Xc[d][i]
			}
		}
	}
	return
}

// appendSegment appends the vertices of one segment; geometric stretching
// with ratio r: h[i+1] = r * h[i] and sum of widths matching the segment length
func appendSegment(x []float64, end float64, cells int, ratio float64) []float64 {
	start := x[len(x)-1]
	length := end - start
	h0 := length / float64(cells)
	if ratio != 1.0 {
		s := 0.0
		p := 1.0
		for i := 0; i < cells; i++ {
			s += p
			p *= ratio
		}
		h0 = length / s
	}
	h := h0
	pos := start
	for i := 0; i < cells-1; i++ {
		pos += h
		x = append(x, pos)
		h *= ratio
	}
	return append(x, end) // exact end, avoiding accumulation error
}

// NumCells returns the total number of pressure unknowns
func (o *Grid) NumCells() int {
	return o.N[0] * o.N[1] * o.N[2]
}

// CompSize returns the shape of the staggered velocity component d
func (o *Grid) CompSize(d int) (m [3]int) {
	m = o.N
	m[d] = o.N[d] - 1
	return
}

// NumFlux returns the number of flux unknowns of component d
func (o *Grid) NumFlux(d int) int {
	m := o.CompSize(d)
	return m[0] * m[1] * m[2]
}

// QOffset returns the offset of component d in the packed flux vector
func (o *Grid) QOffset(d int) (off int) {
	for e := 0; e < d; e++ {
		off += o.NumFlux(e)
	}
	return
}

// QTotal returns the length of the packed flux vector
func (o *Grid) QTotal() (n int) {
	for d := 0; d < o.Ndim; d++ {
		n += o.NumFlux(d)
	}
	return
}

// QIndex returns the packed global index of flux (d, I)
func (o *Grid) QIndex(d int, I [3]int) int {
	m := o.CompSize(d)
	return o.QOffset(d) + (I[2]*m[1]+I[1])*m[0] + I[0]
}

// PIndex returns the global index of the pressure at cell I
func (o *Grid) PIndex(I [3]int) int {
	return (I[2]*o.N[1]+I[1])*o.N[0] + I[0]
}

// FaceArea returns the area of the staggered face holding flux (d, I):
// the product of the cell widths in the directions transverse to d
func (o *Grid) FaceArea(d int, I [3]int) (a float64) {
	a = 1.0
	for k := 0; k < 3; k++ {
		if k != d {
			a *= o.Dx[k][I[k]]
		}
	}
	return
}

// MHat returns the distance between the two pressure nodes straddling
// flux (d, i) where i is the index along direction d
func (o *Grid) MHat(d, i int) float64 {
	return o.DxMid[d][i]
}

// FaceCenter returns the physical position of flux (d, I)
func (o *Grid) FaceCenter(d int, I [3]int) (x [3]float64) {
	for k := 0; k < 3; k++ {
		if k == d {
			x[k] = o.X[k][I[k]+1]
		} else {
			x[k] = o.Xc[k][I[k]]
		}
	}
	return
}

// DistNormal returns the distance from flux (d, i) to its neighbour along d
// on the given side (-1 or +1); at the ends the neighbour is the boundary face
func (o *Grid) DistNormal(d, i, side int) float64 {
	if side > 0 {
		return o.Dx[d][i+1]
	}
	return o.Dx[d][i]
}

// DistTrans returns the distance from flux (d, ·) to its neighbour along the
// transverse direction e on the given side, where j is the index along e.
// At walls the distance to the mirrored ghost equals the boundary cell width.
func (o *Grid) DistTrans(e, j, side int) float64 {
	if side > 0 {
		if j == o.N[e]-1 {
			return o.Dx[e][j]
		}
		return o.DxMid[e][j]
	}
	if j == 0 {
		return o.Dx[e][j]
	}
	return o.DxMid[e][j-1]
}
