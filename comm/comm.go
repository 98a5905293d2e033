// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm wraps github.com/cpmech/gosl/mpi behind the small
// Neighborhood abstraction spec §9 recommends: "each rank only knows its
// x-neighbor" modeled as a value with prev/next identifiers plus
// send/recv primitives keyed by (step, code), avoiding globals.
package comm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Tag codes reserved by spec §5 for the four halo/PBC exchange directions.
const (
	CodeEyToPrev = 9
	CodeEzToPrev = 11
	CodeHyToNext = 3
	CodeHzToNext = 5

	// additional codes for the rank0<->rankLast wrap-around exchange used
	// when x carries a periodic or Bloch boundary condition, spec §4.6.
	CodePBCEyWrap = 13
	CodePBCEzWrap = 15
	CodePBCHyWrap = 17
	CodePBCHzWrap = 19
)

// Tag composes the (step, code) pair into the single integer the
// point-to-point transport keys delivery on, per spec §5: "tag =
// step·100 + code". Widened beyond 100 in-flight codes would require a
// richer pair; this solver uses the eight codes above (four halo, four
// PBC/BBC wrap).
func Tag(step int, code int) int { return step*100 + code }

// Communicator is the solver's handle onto the world communicator. It is
// intentionally narrow: only the primitives the solver's halo exchange,
// PBC/BBC cross-rank patches, and collector assembly barrier need.
type Communicator struct {
	c *mpi.Communicator
}

// World returns the process's communicator, starting MPI if it has not
// been started yet. Mirrors gofem/main.go's mpi.Start/mpi.IsOn bracket.
func World() *Communicator {
	if !mpi.IsOn() {
		mpi.Start(false)
	}
	return &Communicator{c: mpi.Communicator()}
}

// Stop shuts the communicator down; deferred from main(), mirroring
// gofem's defer mpi.Stop(false).
func Stop() { mpi.Stop(false) }

// Rank and Size report this process's place in the world communicator.
func (o *Communicator) Rank() int { return mpi.Rank() }
func (o *Communicator) Size() int { return mpi.Size() }

// Barrier blocks until every rank reaches this point; used once before
// collector assembly per spec §5.
func (o *Communicator) Barrier() { o.c.Barrier() }

// SendFloats sends a real-valued halo/PBC plane to rank "to". tag is
// produced by Tag(step, code) and is carried for documentation and
// future widening; the underlying gosl/mpi transport delivers in strict
// per-pair FIFO order, which is sufficient given the solver always issues
// a matching, synchronous Recv for the same code before advancing.
func (o *Communicator) SendFloats(vals []float64, to int, tag int) {
	o.c.Send(vals, to)
}

// RecvFloats receives a real-valued halo/PBC plane from rank "from" into
// vals, which must already be sized to the expected plane length.
func (o *Communicator) RecvFloats(vals []float64, from int, tag int) {
	o.c.Recv(vals, from)
}

// SendComplex sends a complex-valued halo/PBC plane, flattening each
// element into two consecutive float64 (real, imag) entries since the
// underlying transport only carries real scalars.
func (o *Communicator) SendComplex(vals []complex128, to int, tag int) {
	buf := make([]float64, 2*len(vals))
	for i, v := range vals {
		buf[2*i] = real(v)
		buf[2*i+1] = imag(v)
	}
	o.c.Send(buf, to)
}

// RecvComplex receives a complex-valued halo/PBC plane sent by SendComplex.
func (o *Communicator) RecvComplex(vals []complex128, from int, tag int) {
	buf := make([]float64, 2*len(vals))
	o.c.Recv(buf, from)
	for i := range vals {
		vals[i] = complex(buf[2*i], buf[2*i+1])
	}
}

// Abort terminates the whole job; per spec §5, any peer-communication
// failure is fatal.
func (o *Communicator) Abort() {
	chk.Panic("fatal communicator error; aborting job")
}
