// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phys holds the physical constants shared by every solver component.
package phys

import "math"

// vacuum electromagnetic constants
const (
	Eps0 = 8.8541878128e-12 // vacuum permittivity [F/m]
	Mu0  = 1.25663706212e-6 // vacuum permeability [H/m]
)

// C is the speed of light in vacuum, derived from Eps0 and Mu0.
var C = 1.0 / math.Sqrt(Eps0*Mu0)

// Eta is the vacuum impedance, sqrt(Mu0/Eps0).
var Eta = math.Sqrt(Mu0 / Eps0)

// PECThreshold is the sentinel material value (epsilon or mu) above which a
// cell is treated as a perfect electric conductor; see update kernel masking.
const PECThreshold = 1e3
