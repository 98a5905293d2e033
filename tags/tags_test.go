// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tags

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_field01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field01. parse and classify field components")

	for _, name := range []string{"Ex", "ey", "EZ", "hx", "Hy", "HZ"} {
		f, err := ParseField(name)
		if err != nil {
			tst.Errorf("ParseField(%q) failed: %v", name, err)
		}
		if f.IsE() == f.IsH() {
			tst.Errorf("field %v must be exactly one of E or H", f)
		}
	}

	if _, err := ParseField("bogus"); err == nil {
		tst.Errorf("ParseField(bogus) should have failed")
	}

	chk.IntAssert(int(Ex), 0)
	if Ex.String() != "Ex" || Hz.String() != "Hz" {
		tst.Errorf("String() mismatch")
	}
}

func Test_mode01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mode01. parse injection mode")

	m, err := ParseMode("Soft")
	if err != nil || m != Soft {
		tst.Errorf("ParseMode(Soft) failed: %v", err)
	}
	m, err = ParseMode("HARD")
	if err != nil || m != Hard {
		tst.Errorf("ParseMode(HARD) failed: %v", err)
	}
	if _, err := ParseMode("maybe"); err == nil {
		tst.Errorf("ParseMode(maybe) should have failed")
	}
}

func Test_side01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("side01. parse PML/PBC region sides")

	cases := map[string]Side{"": SideNone, "-": SideMinus, "+": SidePlus, "+-": SideBoth, "-+": SideBoth}
	for spec, want := range cases {
		got, err := ParseSide(spec)
		if err != nil {
			tst.Errorf("ParseSide(%q) failed: %v", spec, err)
		}
		if got != want {
			tst.Errorf("ParseSide(%q)=%v, want %v", spec, got, want)
		}
	}

	if _, err := ParseSide("x"); err == nil {
		tst.Errorf("ParseSide(x) should have failed")
	}

	if !SideBoth.HasMinus() || !SideBoth.HasPlus() {
		tst.Errorf("SideBoth must have both faces")
	}
	if SideMinus.HasPlus() || SidePlus.HasMinus() {
		tst.Errorf("SideMinus/SidePlus must not cross-report")
	}
	if SideNone.Active() {
		tst.Errorf("SideNone must not be active")
	}
}
