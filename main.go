// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"math"

	"github.com/cpmech/gofdtd/comm"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/solver"
	"github.com/cpmech/gofdtd/source"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

func main() {

	verbose := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)
	cm := comm.World()

	// message
	if cm.Rank() == 0 {
		io.PfWhite("\ngofdtd -- hybrid PSTD/FDTD electromagnetic solver\n\n")
	}

	// configuration filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a filename. Ex.: run.json")
	}

	// other options
	if len(flag.Args()) > 1 {
		verbose = io.Atob(flag.Arg(1))
	}

	// profiling?
	defer utl.DoProf(false)()

	cfg := inp.ReadConfig(fnamepath, cm.Size())
	cfg.EnsureDirOut()

	sol, err := solver.New(cfg, cm, defaultPulse(cfg), verbose)
	if err != nil {
		chk.Panic("%v", err)
	}
	if err := sol.Run(); err != nil {
		chk.Panic("%v", err)
	}
}

// defaultPulse builds the ValueFunc this binary injects when a source is
// configured: a single-frequency sine carrier whose frequency follows
// the configured time step, a stand-in for the external pulse generator
// spec §1 leaves out of scope. Returns nil if no source is configured.
func defaultPulse(cfg *inp.Config) source.ValueFunc {
	if cfg.Source.Field == "" {
		return nil
	}
	freq := 1.0 / (20 * cfg.Dt)
	return func(step int, t float64) complex128 {
		return complex(math.Sin(2*math.Pi*freq*t), 0)
	}
}
