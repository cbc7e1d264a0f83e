// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "github.com/zapis/hufframe/internal/errors"

// BitWriter is the sink of a Writer.
// The n lowest bits of v are written most-significant bit first.
type BitWriter interface {
	WriteBits(v uint64, n uint8) error
}

// Writer implements a prefix encoder. For performance reasons, Writer will
// panic when errors occur. Use errors.Recover at the API boundary.
type Writer struct {
	Offset int64 // Number of bits written

	wr BitWriter
}

// Init initializes the bit Writer to write to w.
func (pw *Writer) Init(w BitWriter) {
	*pw = Writer{wr: w}
}

// WriteBits writes the nb lowest bits of v, most-significant bit first.
func (pw *Writer) WriteBits(v uint64, nb uint) {
	if nb == 0 {
		return
	}
	if nb < 64 {
		v &= 1<<nb - 1
	}
	if err := pw.wr.WriteBits(v, uint8(nb)); err != nil {
		errors.Panic(err)
	}
	pw.Offset += int64(nb)
}

// WriteSymbol writes the prefix code of sym using the given Encoder.
func (pw *Writer) WriteSymbol(sym uint, pe *Encoder) {
	c := pe.Lookup(sym)
	pw.WriteBits(uint64(c.Val), uint(c.Len))
}
