// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpml implements the Convolutional Perfectly Matched Layer
// absorbing boundary engine: profile construction and the per-face H/E
// patches, per spec §4.5 and §3.
package cpml

import (
	"math"

	"github.com/cpmech/gofdtd/phys"
)

// grading/loss-tangent constants, per spec §3.
const (
	gradingOrder = 3.0
	alphaOrder   = 3.0
	rc0          = 1e-16
	kappaMax     = 1.0
	alphaMax     = 0.02
)

// Profile holds the five 1-D arrays (sigma,kappa,alpha,b,a), each of
// length 2*npml, for one active axis.
type Profile struct {
	Npml  int
	Sigma []float64
	Kappa []float64
	Alpha []float64
	B     []float64
	A     []float64
}

// NewProfile builds the CPML profile for an axis with cell spacing da,
// npml cells per face and time step dt, following spec §3's formulas.
func NewProfile(da float64, npml int, dt float64) *Profile {
	n := 2 * npml
	p := &Profile{
		Npml:  npml,
		Sigma: make([]float64, n),
		Kappa: make([]float64, n),
		Alpha: make([]float64, n),
		B:     make([]float64, n),
		A:     make([]float64, n),
	}
	bdw := float64(n-1) * da
	sigmaMax := -(gradingOrder + 1) * math.Log(rc0) / (2 * phys.Eta * bdw)
	for i := 0; i < n; i++ {
		loc := float64(i) * da / bdw
		p.Sigma[i] = sigmaMax * math.Pow(loc, gradingOrder)
		p.Kappa[i] = 1 + (kappaMax-1)*math.Pow(loc, gradingOrder)
		p.Alpha[i] = alphaMax * math.Pow(1-loc, alphaOrder)
		p.B[i] = math.Exp(-(p.Sigma[i]/p.Kappa[i] + p.Alpha[i]) * dt / phys.Eps0)
		denom := p.Sigma[i]*p.Kappa[i] + p.Alpha[i]*p.Kappa[i]*p.Kappa[i]
		if denom != 0 {
			p.A[i] = p.Sigma[i] / denom * (p.B[i] - 1)
		}
	}
	return p
}

// MinusIndex returns the profile index for the cell "depth" cells inside
// the minus (lower-coordinate) face, depth=0 being the outermost cell.
func MinusIndex(depth int) int { return 2 * depth }

// PlusIndex returns the profile index for the cell "depth" cells inside
// the plus (upper-coordinate) face, depth=0 being the outermost cell.
func PlusIndex(depth int) int { return 2*depth + 1 }
