// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gosl/chk"
)

func testCfg() *inp.Config {
	return &inp.Config{
		Nx: 8, Ny: 4, Nz: 4,
		Dx: 1e-3, Dy: 1e-3, Dz: 1e-3,
		Dt: 1e-13,
	}
}

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. partition a uniform grid across ranks")

	cfg := testCfg()
	g := New(cfg, 1, 4)
	chk.IntAssert(g.MyNx, 2)
	chk.IntAssert(g.X0, 2)
	chk.IntAssert(g.X1, 4)
	if g.IsFirstRank() || g.IsLastRank() {
		tst.Errorf("rank 1 of 4 is neither first nor last")
	}
	if !g.HasPrev || !g.HasNext {
		tst.Errorf("rank 1 of 4 must have both neighbours")
	}
	chk.IntAssert(g.Prev, 0)
	chk.IntAssert(g.Next, 2)
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. first and last ranks have no outward neighbour")

	cfg := testCfg()

	g0 := New(cfg, 0, 4)
	if !g0.IsFirstRank() || g0.HasPrev {
		tst.Errorf("rank 0 must be first and have no prev")
	}
	if !g0.HasNext {
		tst.Errorf("rank 0 of 4 must have a next")
	}

	g3 := New(cfg, 3, 4)
	if !g3.IsLastRank() || g3.HasNext {
		tst.Errorf("last rank must be last and have no next")
	}
	if !g3.HasPrev {
		tst.Errorf("last rank must have a prev")
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. SlabOf and RankOfX agree with each rank's own X0/X1")

	cfg := testCfg()
	size := 4
	for r := 0; r < size; r++ {
		g := New(cfg, r, size)
		x0, x1 := g.SlabOf(r)
		if x0 != g.X0 || x1 != g.X1 {
			tst.Errorf("SlabOf(%d)=(%d,%d), want (%d,%d)", r, x0, x1, g.X0, g.X1)
		}
		for x := x0; x < x1; x++ {
			if g.RankOfX(x) != r {
				tst.Errorf("RankOfX(%d)=%d, want %d", x, g.RankOfX(x), r)
			}
		}
	}
}

func Test_grid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid04. ToLocal maps this rank's global range onto [0,MyNx)")

	cfg := testCfg()
	g := New(cfg, 2, 4)
	for x := g.X0; x < g.X1; x++ {
		loc := g.ToLocal(x)
		if loc < 0 || loc >= g.MyNx {
			tst.Errorf("ToLocal(%d)=%d out of [0,%d)", x, loc, g.MyNx)
		}
	}
	chk.IntAssert(g.ToLocal(g.X0), 0)
}

func Test_grid05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid05. Nx not divisible by size panics")

	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("New should have panicked on Nx=9, size=4")
		}
	}()

	cfg := testCfg()
	cfg.Nx = 9
	New(cfg, 0, 4)
}
