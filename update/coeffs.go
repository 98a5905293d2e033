// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package update

import (
	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/tags"
)

// Coeffs holds the six pairs of leapfrog constitutive coefficients
// (CE1,CE2 for each E component; CH1,CH2 for each H component),
// precomputed once at setup rather than every step — spec §9 flags
// per-step recomputation as "a known performance bug" in the original
// reference.
type Coeffs struct {
	CE1x, CE2x []float64
	CE1y, CE2y []float64
	CE1z, CE2z []float64
	CH1x, CH2x []float64
	CH1y, CH2y []float64
	CH1z, CH2z []float64
}

// NewCoeffs computes every coefficient array from the Store's material
// and conductivity arrays and the given dt, masking PEC cells to zero
// per spec §4.4.
func NewCoeffs(s *field.Store, dt float64) *Coeffs {
	c := &Coeffs{}
	c.CE1x, c.CE2x = eCoeffs(s, tags.Ex, dt)
	c.CE1y, c.CE2y = eCoeffs(s, tags.Ey, dt)
	c.CE1z, c.CE2z = eCoeffs(s, tags.Ez, dt)
	c.CH1x, c.CH2x = hCoeffs(s, tags.Hx, dt)
	c.CH1y, c.CH2y = hCoeffs(s, tags.Hy, dt)
	c.CH1z, c.CH2z = hCoeffs(s, tags.Hz, dt)
	return c
}

func eCoeffs(s *field.Store, f tags.Field, dt float64) (ce1, ce2 []float64) {
	eps := s.Material(f)
	sig := s.Conductivity(f)
	n := len(eps)
	ce1, ce2 = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		if s.IsPEC(f, i) {
			continue // ce1=ce2=0: field pinned to its initial value
		}
		den := 2*eps[i] + sig[i]*dt
		ce1[i] = (2*eps[i] - sig[i]*dt) / den
		ce2[i] = (2 * dt) / den
	}
	return
}

func hCoeffs(s *field.Store, f tags.Field, dt float64) (ch1, ch2 []float64) {
	mu := s.Material(f)
	sig := s.Conductivity(f)
	n := len(mu)
	ch1, ch2 = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		if s.IsPEC(f, i) {
			continue
		}
		den := 2*mu[i] + sig[i]*dt
		ch1[i] = (2*mu[i] - sig[i]*dt) / den
		ch2[i] = (-2 * dt) / den
	}
	return
}
