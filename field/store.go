// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements the Field Store: the six field arrays, six
// material arrays, six conductivity arrays and twelve curl-component
// scratch arrays owned by each rank, per spec §4.2.
package field

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"path/filepath"

	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/phys"
	"github.com/cpmech/gofdtd/tags"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Store allocates and owns every per-rank numeric array. Internally all
// field components are carried as complex128 regardless of the
// configured dtype: the spectral (y,z) half of the scheme always needs
// complex arithmetic, and a real32/real64 configuration is simply one
// whose imaginary parts stay at zero throughout the run. This collapses
// four dtype-specific kernel variants into one, at the cost of 2x memory
// for pure-FDTD (real) configurations; see DESIGN.md.
type Store struct {
	G *grid.Grid

	// field components, shape (MyNx, Ny, Nz), row-major with x slowest
	Ex, Ey, Ez []complex128
	Hx, Hy, Hz []complex128

	// material arrays, same shape as the field they modulate
	EpsEx, EpsEy, EpsEz []float64
	MuHx, MuHy, MuHz    []float64

	// conductivity arrays, same shape as the field they modulate
	SigEx, SigEy, SigEz []float64
	SigHx, SigHy, SigHz []float64

	// curl-component scratch arrays used by the Derivative Engine;
	// H-update consumes DxEy,DxEz,DyEx,DyEz,DzEx,DzEy;
	// E-update consumes DxHy,DxHz,DyHx,DyHz,DzHx,DzHy.
	DxEy, DxEz, DyEx, DyEz, DzEx, DzEy []complex128
	DxHy, DxHz, DyHx, DyHz, DzHx, DzHy []complex128
}

// New allocates a Store sized to g's slab, with E=H=0, eps=Eps0, mu=Mu0,
// sigma=0, per spec §3.
func New(g *grid.Grid) *Store {
	n := g.MyNx * g.Ny * g.Nz
	s := &Store{G: g}
	s.Ex, s.Ey, s.Ez = make([]complex128, n), make([]complex128, n), make([]complex128, n)
	s.Hx, s.Hy, s.Hz = make([]complex128, n), make([]complex128, n), make([]complex128, n)

	s.EpsEx, s.EpsEy, s.EpsEz = constFloats(n, phys.Eps0), constFloats(n, phys.Eps0), constFloats(n, phys.Eps0)
	s.MuHx, s.MuHy, s.MuHz = constFloats(n, phys.Mu0), constFloats(n, phys.Mu0), constFloats(n, phys.Mu0)

	s.SigEx, s.SigEy, s.SigEz = make([]float64, n), make([]float64, n), make([]float64, n)
	s.SigHx, s.SigHy, s.SigHz = make([]float64, n), make([]float64, n), make([]float64, n)

	s.DxEy, s.DxEz = make([]complex128, n), make([]complex128, n)
	s.DyEx, s.DyEz = make([]complex128, n), make([]complex128, n)
	s.DzEx, s.DzEy = make([]complex128, n), make([]complex128, n)
	s.DxHy, s.DxHz = make([]complex128, n), make([]complex128, n)
	s.DyHx, s.DyHz = make([]complex128, n), make([]complex128, n)
	s.DzHx, s.DzHy = make([]complex128, n), make([]complex128, n)
	return s
}

// constFloats allocates n values initialized to v, via gosl/la.VecFill,
// the same fill primitive fem/domain.go uses for its Jacobian scratch.
func constFloats(n int, v float64) []float64 {
	a := make([]float64, n)
	la.VecFill(a, v)
	return a
}

// Idx maps a local (i,j,k) cell into the flat row-major offset used by
// every array in the Store.
func (s *Store) Idx(i, j, k int) int {
	return (i*s.G.Ny+j)*s.G.Nz + k
}

// Field returns the array backing the given component.
func (s *Store) Field(f tags.Field) []complex128 {
	switch f {
	case tags.Ex:
		return s.Ex
	case tags.Ey:
		return s.Ey
	case tags.Ez:
		return s.Ez
	case tags.Hx:
		return s.Hx
	case tags.Hy:
		return s.Hy
	case tags.Hz:
		return s.Hz
	}
	chk.Panic("field.Store.Field: unknown component %v", f)
	return nil
}

// Material returns the epsilon (for E components) or mu (for H
// components) array modulating the given field.
func (s *Store) Material(f tags.Field) []float64 {
	switch f {
	case tags.Ex:
		return s.EpsEx
	case tags.Ey:
		return s.EpsEy
	case tags.Ez:
		return s.EpsEz
	case tags.Hx:
		return s.MuHx
	case tags.Hy:
		return s.MuHy
	case tags.Hz:
		return s.MuHz
	}
	chk.Panic("field.Store.Material: unknown component %v", f)
	return nil
}

// Conductivity returns the sigmaE (for E components) or sigmaH (for H
// components) array modulating the given field.
func (s *Store) Conductivity(f tags.Field) []float64 {
	switch f {
	case tags.Ex:
		return s.SigEx
	case tags.Ey:
		return s.SigEy
	case tags.Ez:
		return s.SigEz
	case tags.Hx:
		return s.SigHx
	case tags.Hy:
		return s.SigHy
	case tags.Hz:
		return s.SigHz
	}
	chk.Panic("field.Store.Conductivity: unknown component %v", f)
	return nil
}

// DumpMaterial gob-encodes this rank's relative permittivity/permeability
// arrays (eps_Ex, eps_Ey, eps_Ez, mu_Hx, mu_Hy, mu_Hz, normalized by
// phys.Eps0/phys.Mu0) and writes them to
// path/eps_mu/eps_r_mu_r_rank{RR}.gob, matching space.py's save_eps_mu,
// per spec §6. path=="" or an I/O failure is logged, not fatal, per
// spec §7.
func (s *Store) DumpMaterial(path string, rank int) {
	if path == "" {
		return
	}
	dump := map[string][]float64{
		"eps_Ex": relativeOf(s.EpsEx, phys.Eps0),
		"eps_Ey": relativeOf(s.EpsEy, phys.Eps0),
		"eps_Ez": relativeOf(s.EpsEz, phys.Eps0),
		"mu_Hx":  relativeOf(s.MuHx, phys.Mu0),
		"mu_Hy":  relativeOf(s.MuHy, phys.Mu0),
		"mu_Hz":  relativeOf(s.MuHz, phys.Mu0),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dump); err != nil {
		io.Pfred("field: cannot encode material dump: %v\n", err)
		return
	}
	full := filepath.Join(path, "eps_mu", fmt.Sprintf("eps_r_mu_r_rank%02d.gob", rank))
	if err := io.WriteFile(full, &buf); err != nil {
		io.Pfred("field: cannot write material dump %q: %v\n", full, err)
	}
}

func relativeOf(a []float64, base float64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = v / base
	}
	return out
}

// IsPEC reports whether cell idx of the given component lies inside a
// perfect-electric-conductor region, i.e. its material value is at or
// above phys.PECThreshold, per spec §4.4.
func (s *Store) IsPEC(f tags.Field, idx int) bool {
	return s.Material(f)[idx] >= phys.PECThreshold
}
