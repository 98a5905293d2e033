// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spectral implements the Derivative Engine: spectral
// differentiation along y and z via the configured numeric backend's 1-D
// FFT, with half-cell phase shifters for the Yee stagger, and explicit
// finite differences along x (computed by package update, which owns the
// halo exchange).
package spectral

import (
	"math"

	"github.com/cpmech/gofdtd/backend"
	"github.com/cpmech/gofdtd/grid"
)

// AxisRole tags how one axis participates in a spectral derivative call.
type AxisRole int

const (
	RoleNone   AxisRole = iota // axis left untouched (no transform needed)
	RoleDiff                   // this is the differentiated axis: multiply i*k (and shift if requested)
	RoleInterp                 // axis only needs the half-cell phase correction, no i*k factor
)

// AxisSpec configures one axis's role in a Derivative call.
type AxisSpec struct {
	Role  AxisRole
	Shift bool // apply the half-cell shifter (s=1 in spec §4.3's "Y_shift^s")
}

// Diff builds a RoleDiff spec with the given shift flag.
func Diff(shift bool) AxisSpec { return AxisSpec{Role: RoleDiff, Shift: shift} }

// Interp builds a RoleInterp spec (always shifted; the shift IS the
// interpolation).
func Interp() AxisSpec { return AxisSpec{Role: RoleInterp, Shift: true} }

// None builds a RoleNone spec.
func None() AxisSpec { return AxisSpec{Role: RoleNone} }

// Engine holds the precomputed wavenumbers and half-cell shifters reused
// every step, per spec §3 ("Stored once; reused every step"), and drives
// every transform through the configured numeric backend (spec §9) so no
// kernel here hard-codes gonum's FFT directly.
type Engine struct {
	g  *grid.Grid
	bk backend.Backend

	ky, kz         []float64
	yShift, zShift []complex128
}

// New precomputes wavenumbers and shifters for g, and binds the engine to
// bk for every 1-D FFT/IFFT it performs.
func New(g *grid.Grid, bk backend.Backend) *Engine {
	e := &Engine{g: g, bk: bk}
	e.ky = fftfreqAngular(g.Ny, g.Dy)
	e.kz = fftfreqAngular(g.Nz, g.Dz)
	e.yShift = make([]complex128, g.Ny)
	for j, k := range e.ky {
		e.yShift[j] = cmplxExp(k * g.Dy / 2)
	}
	e.zShift = make([]complex128, g.Nz)
	for k, kk := range e.kz {
		e.zShift[k] = cmplxExp(kk * g.Dz / 2)
	}
	return e
}

func cmplxExp(theta float64) complex128 {
	return complex(math.Cos(theta), math.Sin(theta))
}

// fftfreqAngular returns 2*pi*fftfreq(n,d), matching numpy's fftfreq
// convention: frequencies 0..n/2-1 positive (or 0..(n-1)/2 for odd n),
// then the negative frequencies, from -1/(2d) (even n) up to -1/(n*d).
func fftfreqAngular(n int, d float64) []float64 {
	k := make([]float64, n)
	half := (n - 1) / 2
	for i := 0; i <= half; i++ {
		k[i] = 2 * math.Pi * float64(i) / (float64(n) * d)
	}
	for i := half + 1; i < n; i++ {
		k[i] = 2 * math.Pi * float64(i-n) / (float64(n) * d)
	}
	return k
}

// Derivative computes the spectral derivative of F (local shape
// MyNx x Ny x Nz, row-major, x slowest) according to ySpec/zSpec, writing
// the result into dst (same shape, may not alias F). Exactly one of
// ySpec, zSpec must have Role==RoleDiff; the other is either RoleNone
// (plain 1-D derivative) or RoleInterp (the "2-D FFT with shifters" case
// of spec §4.3, used when F is staggered along both transformed axes).
func (e *Engine) Derivative(F, dst []complex128, ySpec, zSpec AxisSpec) {
	nx, ny, nz := e.g.MyNx, e.g.Ny, e.g.Nz
	copy(dst, F)

	doY := ySpec.Role != RoleNone
	doZ := zSpec.Role != RoleNone

	buf := make([]complex128, ny)
	bufz := make([]complex128, nz)

	if doY {
		for i := 0; i < nx; i++ {
			for k := 0; k < nz; k++ {
				for j := 0; j < ny; j++ {
					buf[j] = dst[(i*ny+j)*nz+k]
				}
				coef := e.bk.FFT1D(buf)
				for j := 0; j < ny; j++ {
					factor := complex(1, 0)
					if ySpec.Role == RoleDiff {
						factor = complex(0, e.ky[j])
						if ySpec.Shift {
							factor *= e.yShift[j]
						}
					} else { // RoleInterp
						factor = e.yShift[j]
					}
					coef[j] *= factor
				}
				seq := e.bk.IFFT1D(coef)
				for j := 0; j < ny; j++ {
					dst[(i*ny+j)*nz+k] = seq[j]
				}
			}
		}
	}

	if doZ {
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					bufz[k] = dst[(i*ny+j)*nz+k]
				}
				coef := e.bk.FFT1D(bufz)
				for k := 0; k < nz; k++ {
					factor := complex(1, 0)
					if zSpec.Role == RoleDiff {
						factor = complex(0, e.kz[k])
						if zSpec.Shift {
							factor *= e.zShift[k]
						}
					} else { // RoleInterp
						factor = e.zShift[k]
					}
					coef[k] *= factor
				}
				seq := e.bk.IFFT1D(coef)
				for k := 0; k < nz; k++ {
					dst[(i*ny+j)*nz+k] = seq[k]
				}
			}
		}
	}
}
