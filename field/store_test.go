// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/phys"
	"github.com/cpmech/gofdtd/tags"
	"github.com/cpmech/gosl/chk"
)

func testGrid() *grid.Grid {
	cfg := &inp.Config{
		Nx: 4, Ny: 3, Nz: 2,
		Dx: 1e-3, Dy: 1e-3, Dz: 1e-3,
		Dt: 1e-13,
	}
	return grid.New(cfg, 0, 1)
}

func Test_store01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store01. allocation sizes and initial values")

	g := testGrid()
	s := New(g)
	n := g.MyNx * g.Ny * g.Nz
	chk.IntAssert(len(s.Ex), n)
	chk.IntAssert(len(s.Hz), n)
	chk.IntAssert(len(s.EpsEx), n)
	chk.IntAssert(len(s.SigHz), n)
	chk.IntAssert(len(s.DxHy), n)

	for i := 0; i < n; i++ {
		if s.Ex[i] != 0 || s.Hz[i] != 0 {
			tst.Errorf("fields must start at zero")
		}
		if s.EpsEx[i] != phys.Eps0 || s.MuHz[i] != phys.Mu0 {
			tst.Errorf("materials must start at vacuum values")
		}
		if s.SigEx[i] != 0 {
			tst.Errorf("conductivity must start at zero")
		}
	}
}

func Test_store02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store02. Idx is row-major with x slowest, z fastest")

	g := testGrid()
	s := New(g)
	chk.IntAssert(s.Idx(0, 0, 0), 0)
	chk.IntAssert(s.Idx(0, 0, 1), 1)
	chk.IntAssert(s.Idx(0, 1, 0), g.Nz)
	chk.IntAssert(s.Idx(1, 0, 0), g.Ny*g.Nz)
}

func Test_store03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store03. Field/Material/Conductivity accessors dispatch on tag")

	g := testGrid()
	s := New(g)

	s.Ey[3] = complex(1, 2)
	if s.Field(tags.Ey)[3] != complex(1, 2) {
		tst.Errorf("Field(Ey) mismatch")
	}

	s.MuHx[0] = 5.0
	if s.Material(tags.Hx)[0] != 5.0 {
		tst.Errorf("Material(Hx) mismatch")
	}

	s.SigEz[0] = 0.1
	if s.Conductivity(tags.Ez)[0] != 0.1 {
		tst.Errorf("Conductivity(Ez) mismatch")
	}
}

func Test_store04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store04. IsPEC triggers at phys.PECThreshold")

	g := testGrid()
	s := New(g)

	if s.IsPEC(tags.Ex, 0) {
		tst.Errorf("vacuum cell must not be PEC")
	}
	s.EpsEx[0] = phys.PECThreshold
	if !s.IsPEC(tags.Ex, 0) {
		tst.Errorf("cell at PECThreshold must be PEC")
	}
}
