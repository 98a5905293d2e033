// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flux implements the Sx/Sy/Sz running-DFT Poynting flux
// collectors, spec §4.8.
package flux

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"path/filepath"

	"github.com/cpmech/gofdtd/backend"
	"github.com/cpmech/gofdtd/comm"
	"github.com/cpmech/gofdtd/field"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/tags"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// shard is the on-disk, self-describing payload for one rank's
// accumulator, per spec §6: "{path}/{name}_DFT_{Comp}_rank{RR}.{ext}".
type shard struct {
	Freqs      []float64
	Dim1, Dim2 int
	X0, X1     int // global tangential-x sub-range this shard covers (Sy/Sz only)
	Data       []complex128
}

// Collector accumulates the running DFT of the four tangential field
// components on a fixed plane, per spec §4.8.
type Collector struct {
	Name, Path string
	Normal     tags.Axis
	Freqs      []float64

	g  *grid.Grid
	s  *field.Store
	cm *comm.Communicator
	bk backend.Backend

	participates bool
	planeIndex   int // global coordinate along the normal axis

	// local accumulator shape: (Nf, dim1, dim2)
	dim1, dim2 int
	x0, x1     int // global tangential-x sub-range covered by this rank (Sy/Sz); unused for Sx

	off1 int // global start offset of the dim1 axis when it is not x (Sx's y axis)
	off2 int // global start offset of the dim2 axis (Sx's z axis; Sy/Sz's non-x tangential axis)

	compA, compB, compC, compD tags.Field // (Ea,Eb,Ha,Hb) per spec §4.8
	accumA, accumB, accumC, accumD []complex128

	phasor []complex128 // current exp(2*pi*i*f*n*dt) per frequency
	rotor  []complex128 // per-step multiplier exp(2*pi*i*f*dt) per frequency
}

// New builds the collector for spec, intersecting its configured plane
// against g's slab. A collector whose plane lies entirely outside this
// rank's slab is a no-op on this rank, per spec §7.
func New(g *grid.Grid, s *field.Store, cm *comm.Communicator, bk backend.Backend, spec inp.CollectorSpec) *Collector {
	c := &Collector{Name: spec.Name, Path: spec.Path, Freqs: spec.Freqs, g: g, s: s, cm: cm, bk: bk}
	nf := len(spec.Freqs)

	c.rotor = make([]complex128, nf)
	c.phasor = make([]complex128, nf)
	for i, f := range spec.Freqs {
		theta := 2 * math.Pi * f * g.Dt
		c.rotor[i] = complex(math.Cos(theta), math.Sin(theta))
		c.phasor[i] = 1
	}

	switch {
	case spec.End[0]-spec.Srt[0] == 1:
		c.Normal = tags.AxisX
		c.planeIndex = spec.Srt[0]
		c.compA, c.compB, c.compC, c.compD = tags.Ey, tags.Ez, tags.Hy, tags.Hz
		c.setupX(spec, nf)
	case spec.End[1]-spec.Srt[1] == 1:
		c.Normal = tags.AxisY
		c.planeIndex = spec.Srt[1]
		c.compA, c.compB, c.compC, c.compD = tags.Ez, tags.Ex, tags.Hz, tags.Hx
		c.setupTangentialX(spec, nf, spec.Srt[2], spec.End[2])
	case spec.End[2]-spec.Srt[2] == 1:
		c.Normal = tags.AxisZ
		c.planeIndex = spec.Srt[2]
		c.compA, c.compB, c.compC, c.compD = tags.Ex, tags.Ey, tags.Hx, tags.Hy
		c.setupTangentialX(spec, nf, spec.Srt[1], spec.End[1])
	default:
		chk.Panic("collector %q: thickness must be 1 along exactly one axis", spec.Name)
	}
	return c
}

func (c *Collector) allocAccums(nf int) {
	n := nf * c.dim1 * c.dim2
	c.accumA = make([]complex128, n)
	c.accumB = make([]complex128, n)
	c.accumC = make([]complex128, n)
	c.accumD = make([]complex128, n)
}

// setupX handles the Sx case: the plane lies entirely on at most one
// rank, since x is the decomposed axis.
func (c *Collector) setupX(spec inp.CollectorSpec, nf int) {
	g := c.g
	if c.planeIndex < g.X0 || c.planeIndex >= g.X1 {
		return // no-op on this rank
	}
	c.participates = true
	c.dim1, c.dim2 = spec.End[1]-spec.Srt[1], spec.End[2]-spec.Srt[2]
	c.off1, c.off2 = spec.Srt[1], spec.Srt[2]
	c.allocAccums(nf)
}

// setupTangentialX handles the Sy/Sz case: the plane spans every rank's
// x-slab, so each participating rank owns the sub-range of x (tan1) that
// overlaps its slab, and the full other-tangential extent (tan2).
func (c *Collector) setupTangentialX(spec inp.CollectorSpec, nf, tan2Srt, tan2End int) {
	g := c.g
	x0, x1 := spec.Srt[0], spec.End[0]
	lo, hi := x0, x1
	if lo < g.X0 {
		lo = g.X0
	}
	if hi > g.X1 {
		hi = g.X1
	}
	if lo >= hi {
		return // no-op on this rank
	}
	c.participates = true
	c.x0, c.x1 = lo, hi
	c.dim1, c.dim2 = hi-lo, tan2End-tan2Srt
	c.off2 = tan2Srt
	c.allocAccums(nf)
}

// Kick accumulates one step's contribution into every frequency bin, per
// spec §4.8: F̂[k,…] += F[…]·exp(2πi·f[k]·n·dt)·dt. A no-op on ranks
// that do not participate in this collector's plane.
func (c *Collector) Kick() {
	if !c.participates {
		return
	}
	g, s := c.g, c.s
	dt := complex(g.Dt, 0)
	a, b, h1, h2 := s.Field(c.compA), s.Field(c.compB), s.Field(c.compC), s.Field(c.compD)

	switch c.Normal {
	case tags.AxisX:
		i := g.ToLocal(c.planeIndex)
		for f := range c.Freqs {
			ph := c.phasor[f] * dt
			base := f * c.dim1 * c.dim2
			for j := 0; j < c.dim1; j++ {
				for k := 0; k < c.dim2; k++ {
					idx := s.Idx(i, c.off1+j, c.off2+k)
					o := base + j*c.dim2 + k
					c.accumA[o] += a[idx] * ph
					c.accumB[o] += b[idx] * ph
					c.accumC[o] += h1[idx] * ph
					c.accumD[o] += h2[idx] * ph
				}
			}
		}
	case tags.AxisY:
		jloc := c.planeIndex // y is not decomposed: local index == global index
		for f := range c.Freqs {
			ph := c.phasor[f] * dt
			base := f * c.dim1 * c.dim2
			for ii := 0; ii < c.dim1; ii++ {
				i := g.ToLocal(c.x0 + ii)
				for k := 0; k < c.dim2; k++ {
					idx := s.Idx(i, jloc, c.off2+k)
					o := base + ii*c.dim2 + k
					c.accumA[o] += a[idx] * ph
					c.accumB[o] += b[idx] * ph
					c.accumC[o] += h1[idx] * ph
					c.accumD[o] += h2[idx] * ph
				}
			}
		}
	case tags.AxisZ:
		kloc := c.planeIndex // z is not decomposed: local index == global index
		for f := range c.Freqs {
			ph := c.phasor[f] * dt
			base := f * c.dim1 * c.dim2
			for ii := 0; ii < c.dim1; ii++ {
				i := g.ToLocal(c.x0 + ii)
				for j := 0; j < c.dim2; j++ {
					idx := s.Idx(i, c.off2+j, kloc)
					o := base + ii*c.dim2 + j
					c.accumA[o] += a[idx] * ph
					c.accumB[o] += b[idx] * ph
					c.accumC[o] += h1[idx] * ph
					c.accumD[o] += h2[idx] * ph
				}
			}
		}
	}

	for f := range c.Freqs {
		c.phasor[f] *= c.rotor[f]
	}
}

func shardPath(path, name, comp string, rank int) string {
	return filepath.Join(path, fmt.Sprintf("%s_DFT_%s_rank%02d.gob", name, comp, rank))
}

func writeShard(path string, sh shard) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(sh); err != nil {
		io.Pfred("flux: cannot encode shard %q: %v\n", path, err)
		return
	}
	if err := io.WriteFile(path, &buf); err != nil {
		io.Pfred("flux: cannot write shard %q: %v\n", path, err)
	}
}

func readShard(path string) (sh shard, err error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return
	}
	err = gob.NewDecoder(bytes.NewReader(buf)).Decode(&sh)
	return
}

// Get runs the collector's barrier + shard write + rank-0 assembly +
// Poynting computation described in spec §4.8 and §5 ("get_* methods
// start with a communicator barrier before disk I/O and assembly").
// I/O failures are logged, not fatal, per spec §7.
func (c *Collector) Get() {
	c.cm.Barrier()
	if c.participates {
		c.writeShards()
	}
	if c.cm.Rank() != 0 {
		return
	}
	c.assemble()
}

func (c *Collector) writeShards() {
	if c.Path == "" {
		return
	}
	names := [4]string{componentName(c.compA), componentName(c.compB), componentName(c.compC), componentName(c.compD)}
	accs := [4][]complex128{c.accumA, c.accumB, c.accumC, c.accumD}
	for i, nm := range names {
		sh := shard{Freqs: c.Freqs, Dim1: c.dim1, Dim2: c.dim2, X0: c.x0, X1: c.x1, Data: accs[i]}
		writeShard(shardPath(c.Path, c.Name, nm, c.cm.Rank()), sh)
	}
}

func componentName(f tags.Field) string { return f.String() }

// assemble reads every rank's shard from disk (for Sy/Sz, concatenating
// along the decomposed x sub-ranges), computes the time-averaged
// Poynting component over the plane and the integrated flux per
// frequency, and writes the latter to ./graph/{name}_area.{ext}, per
// spec §4.8 and §6. Only called on rank 0.
func (c *Collector) assemble() {
	if c.Path == "" {
		return
	}
	nf := len(c.Freqs)
	size := c.cm.Size()
	names := [4]string{componentName(c.compA), componentName(c.compB), componentName(c.compC), componentName(c.compD)}

	var merged [4][]complex128
	var dim1, dim2 int
	for ci, nm := range names {
		var parts []shard
		for r := 0; r < size; r++ {
			sh, err := readShard(shardPath(c.Path, c.Name, nm, r))
			if err != nil {
				continue // that rank did not participate
			}
			parts = append(parts, sh)
		}
		if len(parts) == 0 {
			return // collector was a no-op everywhere (configured plane out of range)
		}
		if c.Normal == tags.AxisX {
			merged[ci] = parts[0].Data
			dim1, dim2 = parts[0].Dim1, parts[0].Dim2
		} else {
			dim2 = parts[0].Dim2
			totalX := 0
			for _, p := range parts {
				totalX += p.Dim1
			}
			dim1 = totalX
			buf := make([]complex128, nf*dim1*dim2)
			for _, p := range parts {
				off := p.X0
				for f := 0; f < nf; f++ {
					for ii := 0; ii < p.Dim1; ii++ {
						for k := 0; k < p.Dim2; k++ {
							buf[(f*dim1+off-parts[0].X0+ii)*dim2+k] = p.Data[(f*p.Dim1+ii)*p.Dim2+k]
						}
					}
				}
			}
			merged[ci] = buf
		}
	}

	area := make([]float64, nf)
	cellArea := c.tangentialCellArea()
	planeN := dim1 * dim2
	vals := make([]complex128, planeN)
	for f := 0; f < nf; f++ {
		for ii := 0; ii < dim1; ii++ {
			for k := 0; k < dim2; k++ {
				o := (f*dim1+ii)*dim2 + k
				s := poynting(c.Normal, merged[0][o], merged[1][o], merged[2][o], merged[3][o])
				vals[ii*dim2+k] = complex(s, 0)
			}
		}
		area[f] = real(c.bk.Sum(vals)) * cellArea
	}

	writeAreaFile(c.Name, area)
}

// poynting computes the time-averaged Poynting component for the given
// normal axis from the four tangential DFT values, per spec §4.8:
//
//	Sx = 1/2 Re(Ey*conj(Hz) - Ez*conj(Hy))
//	Sy = 1/2 Re(Ez*conj(Hx) - Ex*conj(Hz))
//	Sz = 1/2 Re(Ex*conj(Hy) - Ey*conj(Hx))
func poynting(normal tags.Axis, a, b, h1, h2 complex128) float64 {
	return 0.5 * real(a*conjc(h2)-b*conjc(h1))
}

func conjc(v complex128) complex128 { return complex(real(v), -imag(v)) }

// tangentialCellArea returns the two-tangential-cell-area factor used to
// integrate the Poynting component over the plane, per spec §4.8.
func (c *Collector) tangentialCellArea() float64 {
	switch c.Normal {
	case tags.AxisX:
		return c.g.Dy * c.g.Dz
	case tags.AxisY:
		return c.g.Dx * c.g.Dz
	case tags.AxisZ:
		return c.g.Dx * c.g.Dy
	}
	return 0
}

func writeAreaFile(name string, area []float64) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(area); err != nil {
		io.Pfred("flux: cannot encode area for %q: %v\n", name, err)
		return
	}
	path := filepath.Join("graph", name+"_area.gob")
	if err := io.WriteFile(path, &buf); err != nil {
		io.Pfred("flux: cannot write area file %q: %v\n", path, err)
	}
}
