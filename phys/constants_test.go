// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_constants01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constants01. speed of light and impedance from eps0/mu0")

	chk.Scalar(tst, "c", 1e3, C, 2.99792458e8)
	chk.Scalar(tst, "eta", 1e-6, Eta, 376.730313668)

	if math.IsNaN(C) || math.IsInf(C, 0) {
		tst.Errorf("C must be finite")
	}
	if PECThreshold <= 1.0 {
		tst.Errorf("PECThreshold must be well above any physical permittivity/permeability")
	}
}
