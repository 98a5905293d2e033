// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"testing"

	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gosl/chk"
)

func testGrid() *grid.Grid {
	cfg := &inp.Config{
		Nx: 8, Ny: 2, Nz: 2,
		Dx: 1e-3, Dy: 1e-3, Dz: 1e-3,
		Dt: 1e-13,
	}
	return grid.New(cfg, 1, 4) // rank 1 of 4: owns global x in [2,4)
}

func Test_injector01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("injector01. empty field spec yields an inert, non-owning injector")

	g := testGrid()
	inj, err := New(g, inp.SourceSpec{}, nil)
	if err != nil {
		tst.Errorf("New failed: %v", err)
	}
	if inj.Owns {
		tst.Errorf("an unconfigured source must not own any region")
	}
	if inj.OwnsH() || inj.OwnsE() {
		tst.Errorf("an unconfigured source must not claim H or E ownership")
	}
}

func Test_injector02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("injector02. a region outside this rank's slab is not owned")

	g := testGrid() // slab is global x in [2,4)
	spec := inp.SourceSpec{Srt: [3]int{5, 0, 0}, End: [3]int{6, 2, 2}, Field: "Ez", Mode: "Hard"}
	inj, err := New(g, spec, func(step int, t float64) complex128 { return 1 })
	if err != nil {
		tst.Errorf("New failed: %v", err)
	}
	if inj.Owns {
		tst.Errorf("a region outside [2,4) must not be owned by rank 1")
	}
}

func Test_injector03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("injector03. an intersecting region is clipped to this rank's slab")

	g := testGrid() // slab is global x in [2,4)
	spec := inp.SourceSpec{Srt: [3]int{0, 0, 0}, End: [3]int{8, 2, 2}, Field: "Ex", Mode: "Soft"}
	inj, err := New(g, spec, func(step int, t float64) complex128 { return 1 })
	if err != nil {
		tst.Errorf("New failed: %v", err)
	}
	if !inj.Owns {
		tst.Errorf("a region spanning the whole grid must be owned by every rank")
	}
	if inj.srt[0] != 0 || inj.end[0] != g.MyNx {
		tst.Errorf("local x range must be clipped to [0,MyNx), got [%d,%d)", inj.srt[0], inj.end[0])
	}
	if !inj.OwnsE() || inj.OwnsH() {
		tst.Errorf("an Ex source must claim E ownership only")
	}
}

func Test_injector04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("injector04. hard mode overwrites, soft mode accumulates")

	g := testGrid()
	spec := inp.SourceSpec{Srt: [3]int{2, 0, 0}, End: [3]int{3, 2, 2}, Field: "Ez", Mode: "Hard"}
	inj, err := New(g, spec, func(step int, t float64) complex128 { return complex(2, 0) })
	if err != nil {
		tst.Errorf("New failed: %v", err)
	}
	s := field.New(g)
	idx := s.Idx(0, 0, 0)
	s.Ez[idx] = complex(10, 0)
	inj.Inject(s, 0)
	if s.Ez[idx] != complex(2, 0) {
		tst.Errorf("hard injection must overwrite: got %v, want 2", s.Ez[idx])
	}

	spec.Mode = "Soft"
	inj2, _ := New(g, spec, func(step int, t float64) complex128 { return complex(2, 0) })
	s2 := field.New(g)
	s2.Ez[idx] = complex(10, 0)
	inj2.Inject(s2, 0)
	if s2.Ez[idx] != complex(12, 0) {
		tst.Errorf("soft injection must accumulate: got %v, want 12", s2.Ez[idx])
	}
}
