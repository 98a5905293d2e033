// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gofdtd/backend"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gosl/chk"
)

func testBackend() backend.Backend { return backend.New(inp.EngineHost) }

func Test_fftfreq01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fftfreq01. angular wavenumbers follow the numpy fftfreq ordering")

	k := fftfreqAngular(4, 1.0)
	want := []float64{0, math.Pi / 2, -math.Pi, -math.Pi / 2}
	for i := range want {
		if math.Abs(k[i]-want[i]) > 1e-12 {
			tst.Errorf("k[%d]=%v, want %v", i, k[i], want[i])
		}
	}
}

func Test_derivative01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("derivative01. spectral y-derivative is exact on a single Fourier mode")

	cfg := &inp.Config{Nx: 1, Ny: 8, Nz: 1, Dx: 1e-3, Dy: 1e-3, Dz: 1e-3, Dt: 1e-13}
	g := grid.New(cfg, 0, 1)
	e := New(g, testBackend())

	k0 := e.ky[1]
	F := make([]complex128, g.Ny)
	for j := 0; j < g.Ny; j++ {
		y := float64(j) * g.Dy
		F[j] = cmplx.Exp(complex(0, k0*y))
	}

	dst := make([]complex128, g.Ny)
	e.Derivative(F, dst, Diff(false), None())

	for j := 0; j < g.Ny; j++ {
		want := complex(0, k0) * F[j]
		if cmplx.Abs(dst[j]-want) > 1e-9 {
			tst.Errorf("d/dy F[%d] = %v, want %v", j, dst[j], want)
		}
	}
}

func Test_derivative02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("derivative02. RoleNone axis is left untouched")

	cfg := &inp.Config{Nx: 1, Ny: 4, Nz: 4, Dx: 1e-3, Dy: 1e-3, Dz: 1e-3, Dt: 1e-13}
	g := grid.New(cfg, 0, 1)
	e := New(g, testBackend())

	n := g.Ny * g.Nz
	F := make([]complex128, n)
	for i := range F {
		F[i] = complex(float64(i), 0)
	}
	dst := make([]complex128, n)
	e.Derivative(F, dst, None(), None())

	for i := range F {
		if cmplx.Abs(dst[i]-F[i]) > 1e-9 {
			tst.Errorf("RoleNone/RoleNone must be a copy: dst[%d]=%v, want %v", i, dst[i], F[i])
		}
	}
}
