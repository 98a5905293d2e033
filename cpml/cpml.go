// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpml

import (
	"bytes"
	"encoding/gob"
	"path/filepath"

	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/tags"
	"github.com/cpmech/gofdtd/update"
	"github.com/cpmech/gosl/io"
)

// faceKey identifies one (axis, side, affected component) psi block.
type faceKey struct {
	axis  tags.Axis
	minus bool
	comp  tags.Field
}

// Engine owns the per-axis profiles and every active face's psi blocks,
// and applies the CPML patches to H and E after the interior update, per
// spec §4.5.
type Engine struct {
	g  *grid.Grid
	s  *field.Store
	co *update.Coeffs

	region inp.PMLRegion

	profX, profY, profZ *Profile
	npmlX, npmlY, npmlZ int // effective depth, capped to the local extent

	psi map[faceKey][]complex128

	xMinusActive, xPlusActive bool // rank-gated, per spec §4.5
	yMinusActive, yPlusActive bool
	zMinusActive, zPlusActive bool
}

// New builds the CPML engine for the given grid/store/coefficients and
// PML region spec. Only the first rank owns the -x face and only the
// last rank owns the +x face (the single rank owns both if size==1); ±y
// and ±z faces are owned by every rank.
func New(g *grid.Grid, s *field.Store, co *update.Coeffs, region inp.PMLRegion) *Engine {
	e := &Engine{g: g, s: s, co: co, region: region, psi: make(map[faceKey][]complex128)}

	if region.X.Active() {
		e.profX = NewProfile(g.Dx, region.Npml, g.Dt)
		e.npmlX = cap_(region.Npml, g.MyNx)
		e.xMinusActive = region.X.HasMinus() && g.IsFirstRank()
		e.xPlusActive = region.X.HasPlus() && g.IsLastRank()
	}
	if region.Y.Active() {
		e.profY = NewProfile(g.Dy, region.Npml, g.Dt)
		e.npmlY = cap_(region.Npml, g.Ny)
		e.yMinusActive = region.Y.HasMinus()
		e.yPlusActive = region.Y.HasPlus()
	}
	if region.Z.Active() {
		e.profZ = NewProfile(g.Dz, region.Npml, g.Dt)
		e.npmlZ = cap_(region.Npml, g.Nz)
		e.zMinusActive = region.Z.HasMinus()
		e.zPlusActive = region.Z.HasPlus()
	}

	e.allocPsi()
	return e
}

func cap_(npml, extent int) int {
	if npml > extent {
		return extent
	}
	return npml
}

func (e *Engine) allocPsi() {
	g := e.g
	if e.xMinusActive || e.xPlusActive {
		n := e.npmlX * g.Ny * g.Nz
		for _, comp := range []tags.Field{tags.Hy, tags.Hz, tags.Ey, tags.Ez} {
			if e.xMinusActive {
				e.psi[faceKey{tags.AxisX, true, comp}] = make([]complex128, n)
			}
			if e.xPlusActive {
				e.psi[faceKey{tags.AxisX, false, comp}] = make([]complex128, n)
			}
		}
	}
	if e.yMinusActive || e.yPlusActive {
		n := g.MyNx * e.npmlY * g.Nz
		for _, comp := range []tags.Field{tags.Hx, tags.Hz, tags.Ex, tags.Ez} {
			if e.yMinusActive {
				e.psi[faceKey{tags.AxisY, true, comp}] = make([]complex128, n)
			}
			if e.yPlusActive {
				e.psi[faceKey{tags.AxisY, false, comp}] = make([]complex128, n)
			}
		}
	}
	if e.zMinusActive || e.zPlusActive {
		n := g.MyNx * g.Ny * e.npmlZ
		for _, comp := range []tags.Field{tags.Hx, tags.Hy, tags.Ex, tags.Ey} {
			if e.zMinusActive {
				e.psi[faceKey{tags.AxisZ, true, comp}] = make([]complex128, n)
			}
			if e.zPlusActive {
				e.psi[faceKey{tags.AxisZ, false, comp}] = make([]complex128, n)
			}
		}
	}
}

// affect describes one of the four field components touched by a given
// active axis's CPML patch, and the derivative/sign/coefficient it uses,
// following the cyclic curl rule of spec §4.4: an axis-a face only
// touches the two H (resp. E) components whose curl formula has an ∂a
// term, with sign + when a is the curl's first (β) term and - when a is
// the second (γ) term.
type affect struct {
	comp  tags.Field
	deriv []complex128
	sign  float64
	coeff []float64
}

func (e *Engine) affectsX() []affect {
	s, c := e.s, e.co
	return []affect{
		{tags.Hy, s.DxEz, -1, c.CH2y},
		{tags.Hz, s.DxEy, +1, c.CH2z},
		{tags.Ey, s.DxHz, -1, c.CE2y},
		{tags.Ez, s.DxHy, +1, c.CE2z},
	}
}

func (e *Engine) affectsY() []affect {
	s, c := e.s, e.co
	return []affect{
		{tags.Hx, s.DyEz, +1, c.CH2x},
		{tags.Hz, s.DyEx, -1, c.CH2z},
		{tags.Ex, s.DyHz, +1, c.CE2x},
		{tags.Ez, s.DyHx, -1, c.CE2z},
	}
}

func (e *Engine) affectsZ() []affect {
	s, c := e.s, e.co
	return []affect{
		{tags.Hx, s.DzEy, -1, c.CH2x},
		{tags.Hy, s.DzEx, +1, c.CH2y},
		{tags.Ex, s.DzHy, -1, c.CE2x},
		{tags.Ey, s.DzHx, +1, c.CE2y},
	}
}

func filterH(affs []affect) []affect {
	out := make([]affect, 0, 2)
	for _, a := range affs {
		if a.comp.IsH() {
			out = append(out, a)
		}
	}
	return out
}

func filterE(affs []affect) []affect {
	out := make([]affect, 0, 2)
	for _, a := range affs {
		if a.comp.IsE() {
			out = append(out, a)
		}
	}
	return out
}

// ApplyH runs the CPML patch on the two H components of every active
// face, per spec §4.5:
//   psi = b*psi + a*(∂aF)
//   F  += C2 * ( sign*(1/kappa - 1)*(∂aF) + sign*psi )
// Call after UpdateH (∂E inputs are current) and before ApplyE.
func (e *Engine) ApplyH() {
	if e.xMinusActive {
		e.applyX(true, e.npmlX, filterH(e.affectsX()))
	}
	if e.xPlusActive {
		e.applyX(false, e.npmlX, filterH(e.affectsX()))
	}
	if e.yMinusActive {
		e.applyY(true, e.npmlY, filterH(e.affectsY()))
	}
	if e.yPlusActive {
		e.applyY(false, e.npmlY, filterH(e.affectsY()))
	}
	if e.zMinusActive {
		e.applyZ(true, e.npmlZ, filterH(e.affectsZ()))
	}
	if e.zPlusActive {
		e.applyZ(false, e.npmlZ, filterH(e.affectsZ()))
	}
}

// ApplyE runs the CPML patch on the two E components of every active
// face. Call after UpdateE, once the curl-of-H scratch arrays it reads
// have been recomputed from the new H.
func (e *Engine) ApplyE() {
	if e.xMinusActive {
		e.applyX(true, e.npmlX, filterE(e.affectsX()))
	}
	if e.xPlusActive {
		e.applyX(false, e.npmlX, filterE(e.affectsX()))
	}
	if e.yMinusActive {
		e.applyY(true, e.npmlY, filterE(e.affectsY()))
	}
	if e.yPlusActive {
		e.applyY(false, e.npmlY, filterE(e.affectsY()))
	}
	if e.zMinusActive {
		e.applyZ(true, e.npmlZ, filterE(e.affectsZ()))
	}
	if e.zPlusActive {
		e.applyZ(false, e.npmlZ, filterE(e.affectsZ()))
	}
}

func (e *Engine) applyX(minus bool, npml int, affs []affect) {
	g, s, prof := e.g, e.s, e.profX
	for _, af := range affs {
		psi := e.psi[faceKey{tags.AxisX, minus, af.comp}]
		for depth := 0; depth < npml; depth++ {
			var i, profIdx int
			if minus {
				i, profIdx = depth, MinusIndex(depth)
			} else {
				i, profIdx = g.MyNx-1-depth, PlusIndex(depth)
			}
			b, a, kappa := prof.B[profIdx], prof.A[profIdx], prof.Kappa[profIdx]
			for j := 0; j < g.Ny; j++ {
				for k := 0; k < g.Nz; k++ {
					fidx := s.Idx(i, j, k)
					pidx := (depth*g.Ny+j)*g.Nz + k
					d := af.deriv[fidx]
					psi[pidx] = complex(b, 0)*psi[pidx] + complex(a, 0)*d
					corr := complex(af.sign*(1/kappa-1), 0)*d + complex(af.sign, 0)*psi[pidx]
					addTo(s.Field(af.comp), fidx, complex(af.coeff[fidx], 0)*corr)
				}
			}
		}
	}
}

func (e *Engine) applyY(minus bool, npml int, affs []affect) {
	g, s, prof := e.g, e.s, e.profY
	for _, af := range affs {
		psi := e.psi[faceKey{tags.AxisY, minus, af.comp}]
		for depth := 0; depth < npml; depth++ {
			var j, profIdx int
			if minus {
				j, profIdx = depth, MinusIndex(depth)
			} else {
				j, profIdx = g.Ny-1-depth, PlusIndex(depth)
			}
			b, a, kappa := prof.B[profIdx], prof.A[profIdx], prof.Kappa[profIdx]
			for i := 0; i < g.MyNx; i++ {
				for k := 0; k < g.Nz; k++ {
					fidx := s.Idx(i, j, k)
					pidx := (i*npml+depth)*g.Nz + k
					d := af.deriv[fidx]
					psi[pidx] = complex(b, 0)*psi[pidx] + complex(a, 0)*d
					corr := complex(af.sign*(1/kappa-1), 0)*d + complex(af.sign, 0)*psi[pidx]
					addTo(s.Field(af.comp), fidx, complex(af.coeff[fidx], 0)*corr)
				}
			}
		}
	}
}

func (e *Engine) applyZ(minus bool, npml int, affs []affect) {
	g, s, prof := e.g, e.s, e.profZ
	for _, af := range affs {
		psi := e.psi[faceKey{tags.AxisZ, minus, af.comp}]
		for depth := 0; depth < npml; depth++ {
			var k, profIdx int
			if minus {
				k, profIdx = depth, MinusIndex(depth)
			} else {
				k, profIdx = g.Nz-1-depth, PlusIndex(depth)
			}
			b, a, kappa := prof.B[profIdx], prof.A[profIdx], prof.Kappa[profIdx]
			for i := 0; i < g.MyNx; i++ {
				for j := 0; j < g.Ny; j++ {
					fidx := s.Idx(i, j, k)
					pidx := (i*g.Ny+j)*npml + depth
					d := af.deriv[fidx]
					psi[pidx] = complex(b, 0)*psi[pidx] + complex(a, 0)*d
					corr := complex(af.sign*(1/kappa-1), 0)*d + complex(af.sign, 0)*psi[pidx]
					addTo(s.Field(af.comp), fidx, complex(af.coeff[fidx], 0)*corr)
				}
			}
		}
	}
}

func addTo(arr []complex128, idx int, v complex128) { arr[idx] += v }

// DumpParameters gob-encodes the sigma/kappa/alpha/b/a arrays of every
// active axis into a single container keyed "PMLsigma{a}", "PMLkappa{a}",
// … ("x","y","z"), matching space.py's save_pml_parameters, and writes it
// to path/pml_parameters.gob, per spec §6. Only the first rank writes,
// since the profile is identical on every rank; path=="" or an I/O
// failure is logged, not fatal, per spec §7.
func (e *Engine) DumpParameters(path string) {
	if path == "" || !e.g.IsFirstRank() {
		return
	}
	dump := map[string][]float64{}
	put := func(axis string, p *Profile) {
		if p == nil {
			return
		}
		dump["PMLsigma"+axis] = p.Sigma
		dump["PMLkappa"+axis] = p.Kappa
		dump["PMLalpha"+axis] = p.Alpha
		dump["PMLb"+axis] = p.B
		dump["PMLa"+axis] = p.A
	}
	put("x", e.profX)
	put("y", e.profY)
	put("z", e.profZ)
	if len(dump) == 0 {
		return
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dump); err != nil {
		io.Pfred("cpml: cannot encode pml parameters: %v\n", err)
		return
	}
	full := filepath.Join(path, "pml_parameters.gob")
	if err := io.WriteFile(full, &buf); err != nil {
		io.Pfred("cpml: cannot write pml parameters %q: %v\n", full, err)
	}
}
