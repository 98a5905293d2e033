// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boundary implements the Periodic/Bloch Boundary Engine, spec
// §4.6. Periodicity along y and z falls out of the Derivative Engine's
// spectral differentiation for free (an FFT-based derivative is exact
// only for a periodic signal, so the y and z halves of the scheme are
// always periodic regardless of whether PBC/BBC is configured there);
// this package therefore only has real work to do along x, where the
// domain is decomposed and periodicity must be carried by an explicit
// rank0<->rank(size-1) exchange.
package boundary

import (
	"math"

	"github.com/cpmech/gofdtd/comm"
	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/update"
)

// XEngine carries the x-axis PBC/BBC wrap between rank 0 and rank
// size-1, per spec §4.6: the last rank receives the global x=0 Ey/Ez
// planes (the ghost plane of its forward x-difference in the H-update),
// and rank 0 receives the global x=Nx-1 Hy/Hz planes (the ghost plane of
// its backward x-difference in the E-update).
type XEngine struct {
	g  *grid.Grid
	s  *field.Store
	co *update.Coeffs
	cm *comm.Communicator

	active bool
	bloch  inp.BlochAxis

	bufEy, bufEz []complex128
	bufHy, bufHz []complex128
}

// New builds the x PBC/BBC engine. It is a no-op (Exchange/Apply do
// nothing) unless x is configured as periodic ("+-") or Bloch-active.
func New(g *grid.Grid, s *field.Store, co *update.Coeffs, cm *comm.Communicator, pbc inp.PBCRegion, bbc inp.BBCRegion) *XEngine {
	e := &XEngine{g: g, s: s, co: co, cm: cm}
	e.active = pbc.X.Active() || bbc.X.Active
	e.bloch = bbc.X
	if e.active {
		plane := g.Ny * g.Nz
		e.bufEy, e.bufEz = make([]complex128, plane), make([]complex128, plane)
		e.bufHy, e.bufHz = make([]complex128, plane), make([]complex128, plane)
	}
	return e
}

func phaseForward(b inp.BlochAxis) complex128 {
	if !b.Active {
		return 1
	}
	theta := b.K * b.L
	return complex(math.Cos(theta), math.Sin(theta))
}

func plane(s *field.Store, arr []complex128, i int) []complex128 {
	g := s.G
	out := make([]complex128, g.Ny*g.Nz)
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			out[j*g.Nz+k] = arr[s.Idx(i, j, k)]
		}
	}
	return out
}

// ExchangeH moves the wrapped E planes (Ey,Ez at global x=0, representing
// the x=Nx ghost plane) toward the last rank, ahead of ApplyH.
func (e *XEngine) ExchangeH(step int) {
	if !e.active {
		return
	}
	g := e.g
	if g.Size == 1 {
		copy(e.bufEy, plane(e.s, e.s.Ey, 0))
		copy(e.bufEz, plane(e.s, e.s.Ez, 0))
		return
	}
	if g.IsFirstRank() {
		e.cm.SendComplex(plane(e.s, e.s.Ey, 0), g.Size-1, comm.Tag(step, comm.CodePBCEyWrap))
		e.cm.SendComplex(plane(e.s, e.s.Ez, 0), g.Size-1, comm.Tag(step, comm.CodePBCEzWrap))
	}
	if g.IsLastRank() {
		e.cm.RecvComplex(e.bufEy, 0, comm.Tag(step, comm.CodePBCEyWrap))
		e.cm.RecvComplex(e.bufEz, 0, comm.Tag(step, comm.CodePBCEzWrap))
	}
}

// ApplyH finishes the H-update at the last rank's x=myNx-1 plane (left
// unset by the ordinary interior update, spec §4.4), using the wrapped E
// data and, under BBC, the configured Bloch phase.
func (e *XEngine) ApplyH() {
	if !e.active || !e.g.IsLastRank() {
		return
	}
	g, s, c := e.g, e.s, e.co
	i := g.MyNx - 1
	dx := complex(g.Dx, 0)
	ph := phaseForward(e.bloch)
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			idx := s.Idx(i, j, k)
			wrappedEy := e.bufEy[j*g.Nz+k] * ph
			wrappedEz := e.bufEz[j*g.Nz+k] * ph
			dxEy := (wrappedEy - s.Ey[idx]) / dx
			dxEz := (wrappedEz - s.Ez[idx]) / dx
			s.Hy[idx] = complex(c.CH1y[idx], 0)*s.Hy[idx] + complex(c.CH2y[idx], 0)*(s.DzEx[idx]-dxEz)
			s.Hz[idx] = complex(c.CH1z[idx], 0)*s.Hz[idx] + complex(c.CH2z[idx], 0)*(dxEy-s.DyEx[idx])
		}
	}
}

// ExchangeE moves the wrapped H planes (Hy,Hz at global x=Nx-1,
// representing the x=-1 ghost plane) toward rank 0, ahead of ApplyE.
func (e *XEngine) ExchangeE(step int) {
	if !e.active {
		return
	}
	g := e.g
	if g.Size == 1 {
		copy(e.bufHy, plane(e.s, e.s.Hy, g.MyNx-1))
		copy(e.bufHz, plane(e.s, e.s.Hz, g.MyNx-1))
		return
	}
	if g.IsLastRank() {
		e.cm.SendComplex(plane(e.s, e.s.Hy, g.MyNx-1), 0, comm.Tag(step, comm.CodePBCHyWrap))
		e.cm.SendComplex(plane(e.s, e.s.Hz, g.MyNx-1), 0, comm.Tag(step, comm.CodePBCHzWrap))
	}
	if g.IsFirstRank() {
		e.cm.RecvComplex(e.bufHy, g.Size-1, comm.Tag(step, comm.CodePBCHyWrap))
		e.cm.RecvComplex(e.bufHz, g.Size-1, comm.Tag(step, comm.CodePBCHzWrap))
	}
}

// ApplyE finishes the E-update at rank 0's x=0 plane (left unset by the
// ordinary interior update, spec §4.4), using the wrapped H data and,
// under BBC, the inverse Bloch phase (the wrap now runs the other way
// around the ring).
func (e *XEngine) ApplyE() {
	if !e.active || !e.g.IsFirstRank() {
		return
	}
	g, s, c := e.g, e.s, e.co
	dx := complex(g.Dx, 0)
	ph := 1 / phaseForward(e.bloch)
	for j := 0; j < g.Ny; j++ {
		for k := 0; k < g.Nz; k++ {
			idx := s.Idx(0, j, k)
			wrappedHy := e.bufHy[j*g.Nz+k] * ph
			wrappedHz := e.bufHz[j*g.Nz+k] * ph
			dxHy := (s.Hy[idx] - wrappedHy) / dx
			dxHz := (s.Hz[idx] - wrappedHz) / dx
			s.Ey[idx] = complex(c.CE1y[idx], 0)*s.Ey[idx] + complex(c.CE2y[idx], 0)*(s.DzHx[idx]-dxHz)
			s.Ez[idx] = complex(c.CE1z[idx], 0)*s.Ez[idx] + complex(c.CE2z[idx], 0)*(dxHy-s.DyHx[idx])
		}
	}
}
