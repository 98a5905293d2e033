// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boundary

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/tags"
	"github.com/cpmech/gofdtd/update"
	"github.com/cpmech/gosl/chk"
)

func testGrid() *grid.Grid {
	cfg := &inp.Config{
		Nx: 4, Ny: 2, Nz: 2,
		Dx: 1e-3, Dy: 1e-3, Dz: 1e-3,
		Dt: 1e-13,
	}
	return grid.New(cfg, 0, 1)
}

func Test_phaseForward01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("phaseForward01. inactive Bloch axis contributes a unit phase")

	ph := phaseForward(inp.BlochAxis{Active: false})
	if ph != 1 {
		tst.Errorf("inactive Bloch phase must be 1, got %v", ph)
	}
}

func Test_phaseForward02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("phaseForward02. active Bloch axis gives exp(i*k*L), and ApplyE uses its inverse")

	b := inp.BlochAxis{Active: true, K: 2e3, L: 1e-3}
	ph := phaseForward(b)
	want := complex(math.Cos(2.0), math.Sin(2.0))
	if cmplx.Abs(ph-want) > 1e-12 {
		tst.Errorf("phaseForward=%v, want %v", ph, want)
	}
	if cmplx.Abs(ph*cmplx.Conj(ph)-complex(1, 0)) > 1e-9 {
		tst.Errorf("phase factor must have unit modulus")
	}
	inv := 1 / ph
	if cmplx.Abs(inv-cmplx.Conj(ph)) > 1e-9 {
		tst.Errorf("inverse of a unit-modulus phase must equal its conjugate")
	}
}

func Test_xengine01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xengine01. an inactive PBC/BBC engine leaves fields untouched")

	g := testGrid()
	s := field.New(g)
	co := update.NewCoeffs(s, g.Dt)
	e := New(g, s, co, nil, inp.PBCRegion{}, inp.BBCRegion{})

	for i := range s.Hy {
		s.Hy[i] = complex(1, 1)
	}
	before := make([]complex128, len(s.Hy))
	copy(before, s.Hy)

	e.ExchangeH(0)
	e.ApplyH()
	e.ExchangeE(0)
	e.ApplyE()

	for i := range s.Hy {
		if s.Hy[i] != before[i] {
			tst.Errorf("inactive XEngine must not modify fields, idx %d", i)
		}
	}
}

func Test_xengine02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xengine02. single-rank periodic wrap feeds the last plane from x=0")

	g := testGrid() // single rank: IsFirstRank==IsLastRank==true
	s := field.New(g)
	co := update.NewCoeffs(s, g.Dt)
	side, err := tags.ParseSide("+-")
	if err != nil {
		tst.Fatalf("ParseSide failed: %v", err)
	}
	e := New(g, s, co, nil, inp.PBCRegion{X: side}, inp.BBCRegion{})

	if !e.active {
		tst.Errorf("engine must be active for pbc.x=\"+-\"")
	}

	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			s.Ey[s.Idx(0, j, k)] = complex(3, 0)
			s.Ez[s.Idx(0, j, k)] = complex(5, 0)
		}
	}

	e.ExchangeH(0)
	for i := range e.bufEy {
		if e.bufEy[i] != complex(3, 0) || e.bufEz[i] != complex(5, 0) {
			tst.Errorf("ExchangeH must buffer the x=0 E planes verbatim on a single rank")
		}
	}
}
