// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend implements the Numeric backend surface referenced by
// the "engine" configuration knob (spec §9): zeros, 1-D/2-D FFT and
// inverse FFT, elementwise add/mul, reductions and to_host. The host
// backend is what package spectral (FFTs) and package flux (Sum) actually
// run on; device is a stub that reports it is unavailable in this build
// rather than silently falling back to host, so a misconfigured run fails
// loud on its first backend call instead of quietly running on the wrong
// engine.
package backend

import (
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend is the numeric surface a solver component can run on.
type Backend interface {
	Zeros(n int) []complex128
	FFT1D(x []complex128) []complex128
	IFFT1D(x []complex128) []complex128
	FFT2D(nrow, ncol int, x []complex128) []complex128
	IFFT2D(nrow, ncol int, x []complex128) []complex128
	Add(dst, a, b []complex128)
	Mul(dst, a, b []complex128)
	Sum(x []complex128) complex128
	ToHost(x []complex128) []complex128
}

// New resolves the configured engine into a Backend, failing fatally
// (chk.Panic) for an engine value it does not recognise, per spec §7:
// configuration errors are fatal, not silently downgraded. EngineDevice
// resolves to the device stub, whose every method panics when called.
func New(e inp.Engine) Backend {
	switch e {
	case inp.EngineHost:
		return &host{}
	case inp.EngineDevice:
		return &device{}
	}
	chk.Panic("backend: unknown engine %v", e)
	return nil
}

// host runs every operation on the CPU via gonum's complex FFT, the same
// library package spectral uses for the y/z derivative engine.
type host struct{}

func (b *host) Zeros(n int) []complex128 { return make([]complex128, n) }

func (b *host) FFT1D(x []complex128) []complex128 {
	f := fourier.NewCmplxFFT(len(x))
	return f.Coefficients(nil, x)
}

func (b *host) IFFT1D(x []complex128) []complex128 {
	f := fourier.NewCmplxFFT(len(x))
	seq := f.Sequence(nil, x)
	// gonum's Sequence is unnormalized; scale by 1/n so IFFT1D inverts FFT1D
	inv := complex(1/float64(len(x)), 0)
	for i := range seq {
		seq[i] *= inv
	}
	return seq
}

// FFT2D transforms an nrow x ncol row-major array along both axes,
// mirroring the "2-D FFT with shifters" case package spectral implements
// for the Yee-staggered derivatives (spec §4.3), but without the
// half-cell phase correction — this is the plain transform the backend
// surface exposes for non-derivative callers.
func (b *host) FFT2D(nrow, ncol int, x []complex128) []complex128 {
	return transform2D(nrow, ncol, x, false)
}

func (b *host) IFFT2D(nrow, ncol int, x []complex128) []complex128 {
	return transform2D(nrow, ncol, x, true)
}

func transform2D(nrow, ncol int, x []complex128, inverse bool) []complex128 {
	out := make([]complex128, len(x))
	copy(out, x)

	frow := fourier.NewCmplxFFT(nrow)
	buf := make([]complex128, nrow)
	for c := 0; c < ncol; c++ {
		for r := 0; r < nrow; r++ {
			buf[r] = out[r*ncol+c]
		}
		var res []complex128
		if inverse {
			res = frow.Sequence(nil, buf)
		} else {
			res = frow.Coefficients(nil, buf)
		}
		for r := 0; r < nrow; r++ {
			out[r*ncol+c] = res[r]
		}
	}

	fcol := fourier.NewCmplxFFT(ncol)
	bufc := make([]complex128, ncol)
	for r := 0; r < nrow; r++ {
		copy(bufc, out[r*ncol:(r+1)*ncol])
		var res []complex128
		if inverse {
			res = fcol.Sequence(nil, bufc)
		} else {
			res = fcol.Coefficients(nil, bufc)
		}
		copy(out[r*ncol:(r+1)*ncol], res)
	}
	if inverse {
		// gonum's Sequence is unnormalized; scale by 1/(nrow*ncol)
		inv := complex(1/float64(nrow*ncol), 0)
		for i := range out {
			out[i] *= inv
		}
	}
	return out
}

func (b *host) Add(dst, a, bb []complex128) {
	copy(dst, a)
	cmplxs.Add(dst, bb)
}

func (b *host) Mul(dst, a, bb []complex128) {
	copy(dst, a)
	cmplxs.Mul(dst, bb)
}

func (b *host) Sum(x []complex128) complex128 {
	return cmplxs.Sum(x)
}

func (b *host) ToHost(x []complex128) []complex128 { return x }

// device is a stub: no GPU/accelerator transport is linked into this
// build. Every method panics rather than quietly running on host, so a
// config asking for "device" fails on the first backend call (New itself
// returns the stub without panicking) instead of silently producing
// host-speed, host-accuracy results under a different label.
type device struct{}

func (b *device) unavailable() {
	chk.Panic("backend: device engine not linked in this build; use engine=\"host\" or build with device support")
}

func (b *device) Zeros(n int) []complex128 { b.unavailable(); return nil }
func (b *device) FFT1D(x []complex128) []complex128  { b.unavailable(); return nil }
func (b *device) IFFT1D(x []complex128) []complex128 { b.unavailable(); return nil }
func (b *device) FFT2D(nrow, ncol int, x []complex128) []complex128  { b.unavailable(); return nil }
func (b *device) IFFT2D(nrow, ncol int, x []complex128) []complex128 { b.unavailable(); return nil }
func (b *device) Add(dst, a, bb []complex128)  { b.unavailable() }
func (b *device) Mul(dst, a, bb []complex128)  { b.unavailable() }
func (b *device) Sum(x []complex128) complex128 { b.unavailable(); return 0 }
func (b *device) ToHost(x []complex128) []complex128 { b.unavailable(); return nil }
