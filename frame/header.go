// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package frame

import (
	"github.com/zapis/hufframe/internal"
	"github.com/zapis/hufframe/internal/errors"
	"github.com/zapis/hufframe/internal/prefix"
)

// Header is the code table description at the start of a frame.
type Header struct {
	// Counts[i] is the number of codes with a bit-length of i+1.
	// The last entry is never zero.
	Counts []int

	// Symbols lists every symbol sorted by code length and then by value.
	Symbols []byte
}

// NumSymbols reports the number of distinct symbols, N.
func (h Header) NumSymbols() int { return len(h.Symbols) }

// MaxLen reports the longest code length, M.
func (h Header) MaxLen() int { return len(h.Counts) }

// BitLen reports the number of bits the header occupies in a frame.
func (h Header) BitLen() int {
	n := len(h.Symbols)
	if n == 0 {
		return 8
	}
	return 16 + len(h.Counts)*int(internal.CountBits(n)) + n*symBits
}

// makeHeader describes codes, which must be in canonical order.
func makeHeader(codes prefix.PrefixCodes) Header {
	if len(codes) == 0 {
		return Header{}
	}
	h := Header{Counts: codes.LengthCounts()}
	for _, c := range codes {
		h.Symbols = append(h.Symbols, byte(c.Sym))
	}
	return h
}

// codes returns the canonical code table that the header describes.
func (h *Header) codes() (prefix.PrefixCodes, error) {
	codes := make(prefix.PrefixCodes, 0, len(h.Symbols))
	var i int
	for n, cnt := range h.Counts {
		for j := 0; j < cnt; j++ {
			codes = append(codes, prefix.PrefixCode{Sym: uint32(h.Symbols[i]), Len: uint32(n + 1)})
			i++
		}
	}
	if err := prefix.GeneratePrefixes(codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (h *Header) write(pw *prefix.Writer) {
	n := len(h.Symbols)
	pw.WriteBits(uint64(n), 8)
	if n == 0 {
		return
	}
	pw.WriteBits(uint64(len(h.Counts)), 8)
	cntBits := internal.CountBits(n)
	for _, cnt := range h.Counts {
		pw.WriteBits(uint64(cnt), cntBits)
	}
	for _, sym := range h.Symbols {
		pw.WriteBits(uint64(sym), symBits)
	}
}

// read parses a header, checking that it describes a canonical code.
func (h *Header) read(pr *prefix.Reader) {
	*h = Header{}
	n := int(pr.ReadBits(8))
	if n == 0 {
		return
	}
	if n > maxSyms {
		panicf(errors.Corrupted, "too many symbols: %d", n)
	}
	m := int(pr.ReadBits(8))
	if m == 0 || m > maxCodeBits {
		panicf(errors.Corrupted, "invalid maximum code length: %d", m)
	}

	cntBits := internal.CountBits(n)
	h.Counts = make([]int, m)
	var sum int
	for i := range h.Counts {
		cnt := int(pr.ReadBits(cntBits))
		if sum += cnt; sum > n {
			panicf(errors.Corrupted, "code counts exceed %d symbols", n)
		}
		h.Counts[i] = cnt
	}
	if sum != n {
		panicf(errors.Corrupted, "code counts sum to %d, want %d", sum, n)
	}
	if h.Counts[m-1] == 0 {
		panicf(errors.Corrupted, "no codes of maximum length %d", m)
	}

	h.Symbols = make([]byte, n)
	var i int
	for _, cnt := range h.Counts {
		for j := 0; j < cnt; j++ {
			sym := byte(pr.ReadBits(symBits))
			if j > 0 && sym <= h.Symbols[i-1] {
				panicf(errors.Corrupted, "symbols not in canonical order")
			}
			h.Symbols[i] = sym
			i++
		}
	}
}
