// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the Grid & Decomposition component: global
// dimensions, spacings, and the uniform 1-D (x-axis) domain decomposition
// across ranks.
package grid

import (
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gosl/chk"
)

// Grid owns the global dimensions, spacings, and this rank's x-slab.
type Grid struct {
	Nx, Ny, Nz int     // global dimensions
	Dx, Dy, Dz float64 // cell spacings
	Dt         float64 // time step

	Size int // communicator size
	Rank int // this rank

	MyNx  int // x-cells owned by this rank
	X0    int // global x-index of this rank's first cell
	X1    int // global x-index one past this rank's last cell (X0+MyNx)

	HasPrev bool // false only for rank 0
	HasNext bool // false only for rank Size-1
	Prev    int  // previous rank id (meaningful only if HasPrev)
	Next    int  // next rank id (meaningful only if HasNext)
}

// New builds the Grid & Decomposition for the given configuration and
// communicator rank/size. Construction fails fatally (chk.Panic) if Nx is
// not divisible by size, mirroring gofem's partition-count check in
// fem.NewDomains.
func New(cfg *inp.Config, rank, size int) (g *Grid) {
	if cfg.Nx%size != 0 {
		chk.Panic("Nx=%d must be divisible by communicator size=%d", cfg.Nx, size)
	}
	myNx := cfg.Nx / size
	g = &Grid{
		Nx: cfg.Nx, Ny: cfg.Ny, Nz: cfg.Nz,
		Dx: cfg.Dx, Dy: cfg.Dy, Dz: cfg.Dz,
		Dt:   cfg.Dt,
		Size: size, Rank: rank,
		MyNx: myNx, X0: rank * myNx, X1: (rank + 1) * myNx,
	}
	g.HasPrev = rank > 0
	g.HasNext = rank < size-1
	if g.HasPrev {
		g.Prev = rank - 1
	}
	if g.HasNext {
		g.Next = rank + 1
	}
	return g
}

// IsFirstRank reports whether this rank owns the global x=0 face.
func (g *Grid) IsFirstRank() bool { return g.Rank == 0 }

// IsLastRank reports whether this rank owns the global x=Nx-1 face.
func (g *Grid) IsLastRank() bool { return g.Rank == g.Size-1 }

// SlabOf returns the global [x0,x1) range owned by the given rank, for any
// rank in the decomposition, without needing that rank's own Grid.
func (g *Grid) SlabOf(rank int) (x0, x1 int) {
	myNx := g.Nx / g.Size
	return rank * myNx, (rank + 1) * myNx
}

// RankOfX returns the rank owning the given global x index.
func (g *Grid) RankOfX(x int) int {
	myNx := g.Nx / g.Size
	r := x / myNx
	if r >= g.Size {
		r = g.Size - 1
	}
	return r
}

// ToLocal converts a global x index into this rank's local index; the
// caller must ensure x lies within [X0,X1).
func (g *Grid) ToLocal(x int) int { return x - g.X0 }
