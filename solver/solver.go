// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the Orchestrator: wires every component
// together and runs the leapfrog time-stepping loop, per spec §2 and §5.
package solver

import (
	"time"

	"github.com/cpmech/gofdtd/backend"
	"github.com/cpmech/gofdtd/boundary"
	"github.com/cpmech/gofdtd/comm"
	"github.com/cpmech/gofdtd/cpml"
	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/flux"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/source"
	"github.com/cpmech/gofdtd/spectral"
	"github.com/cpmech/gofdtd/update"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Solver owns every per-rank component and advances the leapfrog scheme.
type Solver struct {
	Cfg *inp.Config
	G   *grid.Grid
	S   *field.Store
	Cm  *comm.Communicator

	se  *spectral.Engine
	ke  *update.Kernels
	cp  *cpml.Engine
	xb  *boundary.XEngine
	inj *source.Injector
	col []*flux.Collector

	backend backend.Backend

	Verbose bool
}

// New builds the solver from a validated configuration, resolving
// ownership/activation of every boundary and I/O component against this
// rank's slab. value is the source's per-step value generator (spec §1,
// §4.7); it may be nil if cfg has no source configured.
func New(cfg *inp.Config, cm *comm.Communicator, value source.ValueFunc, verbose bool) (*Solver, error) {
	bk := backend.New(cfg.Engine)
	g := grid.New(cfg, cm.Rank(), cm.Size())
	s := field.New(g)
	se := spectral.New(g, bk)
	ke := update.New(g, s, se, cm)
	cp := cpml.New(g, s, ke.Coeffs, cfg.PML)
	xb := boundary.New(g, s, ke.Coeffs, cm, cfg.PBC, cfg.BBC)

	inj, err := source.New(g, cfg.Source, value)
	if err != nil {
		return nil, err
	}

	cols := make([]*flux.Collector, len(cfg.Collectors))
	for i, spec := range cfg.Collectors {
		cols[i] = flux.New(g, s, cm, bk, spec)
	}

	cp.DumpParameters(cfg.DirOut)
	s.DumpMaterial(cfg.DirOut, cm.Rank())

	return &Solver{
		Cfg: cfg, G: g, S: s, Cm: cm,
		se: se, ke: ke, cp: cp, xb: xb, inj: inj, col: cols,
		backend: bk,
		Verbose: verbose && cm.Rank() == 0,
	}, nil
}

// Step advances the scheme by one full leapfrog cycle (H then E), per
// spec §5's step order: halo exchange, spectral+finite derivatives,
// interior update, CPML patch, PBC/BBC patch, source injection.
func (o *Solver) Step(step int) {
	o.ke.ExchangeForH(step)
	o.xb.ExchangeH(step)
	o.ke.DerivativesForH()
	o.ke.UpdateH()
	o.cp.ApplyH()
	o.xb.ApplyH()
	if o.inj.OwnsH() {
		o.inj.Inject(o.S, step)
	}

	o.ke.ExchangeForE(step)
	o.xb.ExchangeE(step)
	o.ke.DerivativesForE()
	o.ke.UpdateE()
	o.cp.ApplyE()
	o.xb.ApplyE()
	if o.inj.OwnsE() {
		o.inj.Inject(o.S, step)
	}

	for _, c := range o.col {
		c.Kick()
	}
}

// Run executes cfg.TSteps leapfrog steps and assembles every collector
// at the end, mirroring fem.FEM.Run's defer-wrapped, rank-0-gated
// time-step loop.
func (o *Solver) Run() (err error) {
	cputime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("solver: panic during run: %v", r)
		}
		if o.Verbose {
			io.Pf("> elapsed time = %v\n", time.Since(cputime))
		}
	}()

	if o.Verbose {
		io.Pf("> starting %d leapfrog steps on %d rank(s)\n", o.Cfg.TSteps, o.Cm.Size())
	}

	for step := 0; step < o.Cfg.TSteps; step++ {
		o.Step(step)
		if o.Verbose && step%100 == 0 {
			io.Pf("> step %d/%d\n", step, o.Cfg.TSteps)
		}
	}

	for _, c := range o.col {
		c.Get()
	}
	if o.Verbose {
		io.Pf("> done\n")
	}
	return nil
}
