// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package update implements the Update Kernels: the leapfrog H-update and
// E-update with lossy-dielectric/lossy-magnetic constitutive
// coefficients and PEC masking, per spec §4.4, plus the x-axis finite
// difference derivatives and their halo exchange (spec §4.3, §5).
package update

import (
	"github.com/cpmech/gofdtd/comm"
	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/spectral"
)

// Kernels owns the precomputed coefficients and halo scratch buffers
// needed to advance one leapfrog step in the interior of the domain
// (CPML and PBC/BBC patches run afterward, see packages cpml/boundary).
type Kernels struct {
	g      *grid.Grid
	s      *field.Store
	se     *spectral.Engine
	cm     *comm.Communicator
	Coeffs *Coeffs

	haloNextEy, haloNextEz []complex128 // Ey/Ez[local 0,:,:] of the next rank
	haloPrevHy, haloPrevHz []complex128 // Hy/Hz[local myNx-1,:,:] of the previous rank
}

// New builds the update kernels for the given grid/store/communicator.
func New(g *grid.Grid, s *field.Store, se *spectral.Engine, cm *comm.Communicator) *Kernels {
	plane := g.Ny * g.Nz
	return &Kernels{
		g: g, s: s, se: se, cm: cm,
		Coeffs:     NewCoeffs(s, g.Dt),
		haloNextEy: make([]complex128, plane),
		haloNextEz: make([]complex128, plane),
		haloPrevHy: make([]complex128, plane),
		haloPrevHz: make([]complex128, plane),
	}
}

func planeOf(s *field.Store, arr []complex128, i int) []complex128 {
	g := s.G
	out := make([]complex128, g.Ny*g.Nz)
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			out[j*g.Nz+k] = arr[s.Idx(i, j, k)]
		}
	}
	return out
}

// ExchangeForH sends/receives the E-field planes needed by the x-derivatives
// of the H-update, per spec §5 step 1-2 (tags 9,11).
func (k *Kernels) ExchangeForH(step int) {
	if k.g.HasPrev {
		k.cm.SendComplex(planeOf(k.s, k.s.Ey, 0), k.g.Prev, comm.Tag(step, comm.CodeEyToPrev))
		k.cm.SendComplex(planeOf(k.s, k.s.Ez, 0), k.g.Prev, comm.Tag(step, comm.CodeEzToPrev))
	}
	if k.g.HasNext {
		k.cm.RecvComplex(k.haloNextEy, k.g.Next, comm.Tag(step, comm.CodeEyToPrev))
		k.cm.RecvComplex(k.haloNextEz, k.g.Next, comm.Tag(step, comm.CodeEzToPrev))
	}
}

// ExchangeForE sends/receives the H-field planes needed by the x-derivatives
// of the E-update, per spec §5 step 1-2 (tags 3,5).
func (k *Kernels) ExchangeForE(step int) {
	if k.g.HasNext {
		k.cm.SendComplex(planeOf(k.s, k.s.Hy, k.g.MyNx-1), k.g.Next, comm.Tag(step, comm.CodeHyToNext))
		k.cm.SendComplex(planeOf(k.s, k.s.Hz, k.g.MyNx-1), k.g.Next, comm.Tag(step, comm.CodeHzToNext))
	}
	if k.g.HasPrev {
		k.cm.RecvComplex(k.haloPrevHy, k.g.Prev, comm.Tag(step, comm.CodeHyToNext))
		k.cm.RecvComplex(k.haloPrevHz, k.g.Prev, comm.Tag(step, comm.CodeHzToNext))
	}
}

// xForward computes (arr[i+1]-arr[i])/dx into dst for i in [0,myNx-1), and
// for i=myNx-1 uses halo if present, else leaves dst[myNx-1] untouched
// (that plane is not updated on the last rank, per spec §4.4).
func (k *Kernels) xForward(arr []complex128, halo []complex128, dst []complex128) {
	g := k.g
	s := k.s
	dx := complex(g.Dx, 0)
	for i := 0; i < g.MyNx-1; i++ {
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(i, j, z)
				dst[idx] = (arr[s.Idx(i+1, j, z)] - arr[idx]) / dx
			}
		}
	}
	if g.HasNext {
		i := g.MyNx - 1
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(i, j, z)
				dst[idx] = (halo[j*g.Nz+z] - arr[idx]) / dx
			}
		}
	}
}

// xBackward computes (arr[i]-arr[i-1])/dx into dst for i in [1,myNx), and
// for i=0 uses halo if present, else leaves dst[0] untouched (that plane
// is not updated on the first rank, per spec §4.4).
func (k *Kernels) xBackward(arr []complex128, halo []complex128, dst []complex128) {
	g := k.g
	s := k.s
	dx := complex(g.Dx, 0)
	for i := 1; i < g.MyNx; i++ {
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(i, j, z)
				dst[idx] = (arr[idx] - arr[s.Idx(i-1, j, z)]) / dx
			}
		}
	}
	if g.HasPrev {
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(0, j, z)
				dst[idx] = (arr[idx] - halo[j*g.Nz+z]) / dx
			}
		}
	}
}

// DerivativesForH computes the six curl-component scratch arrays the
// H-update consumes, per the table in spec §4.3. Call after ExchangeForH
// and before UpdateH.
func (k *Kernels) DerivativesForH() {
	s, se := k.s, k.se
	se.Derivative(s.Ez, s.DyEz, spectral.Diff(true), spectral.Interp())
	se.Derivative(s.Ey, s.DzEy, spectral.Interp(), spectral.Diff(true))
	se.Derivative(s.Ex, s.DzEx, spectral.None(), spectral.Diff(true))
	se.Derivative(s.Ex, s.DyEx, spectral.Diff(true), spectral.None())
	k.xForward(s.Ey, k.haloNextEy, s.DxEy)
	k.xForward(s.Ez, k.haloNextEz, s.DxEz)
}

// DerivativesForE computes the six curl-component scratch arrays the
// E-update consumes, per the table in spec §4.3. Call after ExchangeForE
// and UpdateH (it needs the just-updated H) and before UpdateE.
func (k *Kernels) DerivativesForE() {
	s, se := k.s, k.se
	se.Derivative(s.Hz, s.DyHz, spectral.Diff(false), spectral.None())
	se.Derivative(s.Hy, s.DzHy, spectral.None(), spectral.Diff(false))
	se.Derivative(s.Hx, s.DzHx, spectral.Interp(), spectral.Diff(false))
	se.Derivative(s.Hx, s.DyHx, spectral.Diff(false), spectral.Interp())
	k.xBackward(s.Hy, k.haloPrevHy, s.DxHy)
	k.xBackward(s.Hz, k.haloPrevHz, s.DxHz)
}

// UpdateH advances Hx,Hy,Hz in the interior, per spec §4.4's leapfrog
// H-update formula, cyclic over (x,y,z).
func (k *Kernels) UpdateH() {
	g, s, c := k.g, k.s, k.Coeffs
	for i := 0; i < g.MyNx; i++ {
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(i, j, z)
				s.Hx[idx] = complex(c.CH1x[idx], 0)*s.Hx[idx] + complex(c.CH2x[idx], 0)*(s.DyEz[idx]-s.DzEy[idx])
			}
		}
	}
	iMax := g.MyNx
	if !g.HasNext {
		iMax = g.MyNx - 1 // last local plane not updated here; boundary.XEngine.ApplyH updates it under an x PBC/BBC
	}
	for i := 0; i < iMax; i++ {
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(i, j, z)
				s.Hy[idx] = complex(c.CH1y[idx], 0)*s.Hy[idx] + complex(c.CH2y[idx], 0)*(s.DzEx[idx]-s.DxEz[idx])
				s.Hz[idx] = complex(c.CH1z[idx], 0)*s.Hz[idx] + complex(c.CH2z[idx], 0)*(s.DxEy[idx]-s.DyEx[idx])
			}
		}
	}
}

// UpdateE advances Ex,Ey,Ez in the interior, per spec §4.4's leapfrog
// E-update formula, cyclic over (x,y,z).
func (k *Kernels) UpdateE() {
	g, s, c := k.g, k.s, k.Coeffs
	for i := 0; i < g.MyNx; i++ {
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(i, j, z)
				s.Ex[idx] = complex(c.CE1x[idx], 0)*s.Ex[idx] + complex(c.CE2x[idx], 0)*(s.DyHz[idx]-s.DzHy[idx])
			}
		}
	}
	iStart := 0
	if !g.HasPrev {
		iStart = 1 // x=0 plane not updated here; boundary.XEngine.ApplyE updates it under an x PBC/BBC
	}
	for i := iStart; i < g.MyNx; i++ {
		for j := 0; j < g.Ny; j++ {
			for z := 0; z < g.Nz; z++ {
				idx := s.Idx(i, j, z)
				s.Ey[idx] = complex(c.CE1y[idx], 0)*s.Ey[idx] + complex(c.CE2y[idx], 0)*(s.DzHx[idx]-s.DxHz[idx])
				s.Ez[idx] = complex(c.CE1z[idx], 0)*s.Ez[idx] + complex(c.CE2z[idx], 0)*(s.DxHy[idx]-s.DyHx[idx])
			}
		}
	}
}
