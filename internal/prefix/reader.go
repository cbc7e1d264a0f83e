// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"io"

	"github.com/zapis/hufframe/internal/errors"
)

// BitReader is the source of a Reader. ReadBool returns io.EOF once the
// source is exhausted.
type BitReader interface {
	ReadBool() (bool, error)
}

// Reader implements a prefix decoder. For performance reasons, Reader will
// panic when errors occur. Use errors.Recover at the API boundary.
//
// A Reader may be limited to a known number of bits. Reaching the limit is a
// clean end of input, while running out of data before the limit is reached
// means the stream was truncated. An unlimited Reader treats io.EOF from its
// source as a clean end of input.
type Reader struct {
	Offset int64 // Number of bits read

	rd    BitReader
	limit int64 // Negative if unlimited
}

// Init initializes the bit Reader to read from r.
// If limit is negative, then the Reader is unlimited.
func (pr *Reader) Init(r BitReader, limit int64) {
	*pr = Reader{rd: r, limit: limit}
}

// Remaining reports the number of bits left before the limit,
// or -1 if the Reader is unlimited.
func (pr *Reader) Remaining() int64 {
	if pr.limit < 0 {
		return -1
	}
	return pr.limit - pr.Offset
}

// TryReadBit reads a single bit. It returns false on a clean end of input.
func (pr *Reader) TryReadBit() (uint, bool) {
	if pr.limit >= 0 && pr.Offset >= pr.limit {
		return 0, false
	}
	b, err := pr.rd.ReadBool()
	if err != nil {
		if err == io.EOF {
			if pr.limit < 0 {
				return 0, false
			}
			panicf(errors.Corrupted, "stream truncated at bit %d of %d", pr.Offset, pr.limit)
		}
		errors.Panic(err)
	}
	pr.Offset++
	if b {
		return 1, true
	}
	return 0, true
}

// ReadBit reads a single bit. Reaching the end of input is an error.
func (pr *Reader) ReadBit() uint {
	b, ok := pr.TryReadBit()
	if !ok {
		panicf(errors.Corrupted, "unexpected end of stream at bit %d", pr.Offset)
	}
	return b
}

// ReadBits reads nb bits in most-significant bit first order.
func (pr *Reader) ReadBits(nb uint) (v uint64) {
	for i := uint(0); i < nb; i++ {
		v = v<<1 | uint64(pr.ReadBit())
	}
	return v
}

// TryReadSymbol reads the next symbol using the given Decoder.
// It returns false if the input ends cleanly before the first bit of a code.
// The input ending anywhere else within a code is an error.
func (pr *Reader) TryReadSymbol(pd *Decoder) (uint, bool) {
	bit, ok := pr.TryReadBit()
	if !ok {
		return 0, false
	}
	var n int32
	for {
		next, leaf := pd.step(n, bit)
		if leaf {
			return uint(next), true
		}
		n = next
		var more bool
		if bit, more = pr.TryReadBit(); !more {
			panicf(errors.Corrupted, "stream truncated mid-code")
		}
	}
}

// ReadSymbol reads the next symbol using the given Decoder.
func (pr *Reader) ReadSymbol(pd *Decoder) uint {
	sym, ok := pr.TryReadSymbol(pd)
	if !ok {
		panicf(errors.Corrupted, "unexpected end of stream at bit %d", pr.Offset)
	}
	return sym
}
