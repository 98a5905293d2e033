// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func baseData() *Data {
	d := &Data{
		Grid:    [3]int{8, 8, 8},
		GridGap: [3]float64{1e-3, 1e-3, 1e-3},
		Dt:      1e-13,
		TSteps:  10,
		DType:   "complex128",
		Engine:  "host",
	}
	return d
}

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01. valid configuration decodes without error")

	d := baseData()
	cfg, err := NewConfig(d, 2)
	if err != nil {
		tst.Errorf("NewConfig failed: %v", err)
		return
	}
	chk.IntAssert(cfg.Nx, 8)
	chk.IntAssert(cfg.Ny, 8)
	chk.IntAssert(cfg.Nz, 8)
	if cfg.DType != Complex128 {
		tst.Errorf("dtype mismatch")
	}
	if cfg.Engine != EngineHost {
		tst.Errorf("engine mismatch")
	}
}

func Test_config02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config02. Nx not divisible by communicator size is rejected")

	d := baseData()
	d.Grid[0] = 9
	if _, err := NewConfig(d, 2); err == nil {
		tst.Errorf("NewConfig should reject Nx=9 with size=2")
	}
}

func Test_config03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config03. dt violating the Courant condition is rejected")

	d := baseData()
	d.Dt = 1.0 // far beyond the Courant limit for mm-scale cells
	if _, err := NewConfig(d, 1); err == nil {
		tst.Errorf("NewConfig should reject a Courant-violating dt")
	}
}

func Test_config04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config04. PML active face requires npml > 0")

	d := baseData()
	d.PML.XSpec = "+-"
	d.PML.Npml = 0
	if _, err := NewConfig(d, 1); err == nil {
		tst.Errorf("NewConfig should reject an active PML face with npml=0")
	}
}

func Test_config05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config05. collector thickness must be exactly 1 along one axis")

	d := baseData()
	d.Collectors = []CollectorSpec{
		{Name: "Sx0", SrtRaw: [3]int{2, 0, 0}, EndRaw: [3]int{3, 8, 8}, Freqs: []float64{1e9}},
	}
	if _, err := NewConfig(d, 1); err != nil {
		tst.Errorf("valid thin-x collector rejected: %v", err)
	}

	d.Collectors[0].EndRaw = [3]int{4, 8, 8} // thickness 2 along x now
	if _, err := NewConfig(d, 1); err == nil {
		tst.Errorf("NewConfig should reject a collector with no thin axis")
	}
}

func Test_config06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config06. pbc.x only accepts the empty or \"+-\" spec")

	d := baseData()
	minus := "-"
	d.PBC.X = &minus
	if _, err := NewConfig(d, 1); err == nil {
		tst.Errorf("NewConfig should reject pbc.x=\"-\"")
	}

	both := "+-"
	d.PBC.X = &both
	if _, err := NewConfig(d, 1); err != nil {
		tst.Errorf("NewConfig should accept pbc.x=\"+-\": %v", err)
	}
}
