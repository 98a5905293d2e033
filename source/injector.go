// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source implements the Source Injector, spec §4.7. The actual
// per-step pulse value is supplied by an external, out-of-scope pulse
// generator (spec §1); this package only resolves ownership of the
// source region and writes the generator's value into the chosen field
// component each step.
package source

import (
	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/tags"
)

// ValueFunc supplies the per-step injected value. It takes the step
// index and the elapsed time (step*dt) so a caller can build it from
// either a tabulated time series or a closed-form pulse shape; deriving
// that shape is the external pulse generator's job, not this package's.
type ValueFunc func(step int, t float64) complex128

// Injector owns the source region if and only if it intersects this
// rank's x-slab; non-owning ranks are a complete no-op every step, per
// spec §4.7 and §7's "out-of-slab writes are silently skipped".
type Injector struct {
	Owns  bool
	field tags.Field
	mode  tags.Mode
	dt    float64
	value ValueFunc

	srt, end [3]int // local index range, valid only if Owns
}

// New resolves ownership of the configured source region against g's
// slab and returns the Injector; value may be nil on non-owning ranks.
func New(g *grid.Grid, spec inp.SourceSpec, value ValueFunc) (*Injector, error) {
	inj := &Injector{dt: g.Dt, value: value}

	if spec.Field == "" {
		return inj, nil // no source configured
	}
	f, err := tags.ParseField(spec.Field)
	if err != nil {
		return nil, err
	}
	m, err := tags.ParseMode(spec.Mode)
	if err != nil {
		return nil, err
	}
	inj.field, inj.mode = f, m

	x0, x1 := spec.Srt[0], spec.End[0]
	if x1 <= g.X0 || x0 >= g.X1 {
		return inj, nil // region does not intersect this rank's slab
	}
	inj.Owns = true
	lx0, lx1 := x0, x1
	if lx0 < g.X0 {
		lx0 = g.X0
	}
	if lx1 > g.X1 {
		lx1 = g.X1
	}
	inj.srt = [3]int{g.ToLocal(lx0), spec.Srt[1], spec.Srt[2]}
	inj.end = [3]int{g.ToLocal(lx1), spec.End[1], spec.End[2]}
	return inj, nil
}

// Inject writes the generator's value for this step into the owned
// region, per spec §4.7's soft ("+=") / hard ("=") modes. The caller runs
// this after the E-update for E-field sources and after the H-update for
// H-field sources, per spec §4.7.
func (o *Injector) Inject(s *field.Store, step int) {
	if !o.Owns || o.value == nil {
		return
	}
	v := complex(1, 0) * o.value(step, float64(step)*o.dt)
	arr := s.Field(o.field)
	for i := o.srt[0]; i < o.end[0]; i++ {
		for j := o.srt[1]; j < o.end[1]; j++ {
			for k := o.srt[2]; k < o.end[2]; k++ {
				idx := s.Idx(i, j, k)
				if o.mode == tags.Hard {
					arr[idx] = v
				} else {
					arr[idx] += v
				}
			}
		}
	}
}

// OwnsH reports whether this injector should run after the H-update this
// step (i.e. it targets an H component).
func (o *Injector) OwnsH() bool { return o.Owns && o.field.IsH() }

// OwnsE reports whether this injector should run after the E-update this
// step (i.e. it targets an E component).
func (o *Injector) OwnsE() bool { return o.Owns && o.field.IsE() }
