// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package frame implements a self-describing frame for canonical Huffman
// coded 7-bit text.
//
// A frame is a sequence of bits, most-significant bit first:
//
//	N        8 bits        number of distinct symbols (0..128)
//	M        8 bits        longest code length (1..32), absent if N is 0
//	counts   M fields      number of codes of each length 1..M,
//	                       each bits.Len(N) bits wide
//	symbols  N fields      7 bits each, in canonical order
//	payload                code of every input byte
//
// The code values are never transmitted. The decoder rebuilds them from the
// per-length counts and the symbol order alone.
//
// The bit sequence above is carried by a Transport, which adds its own
// framing so that the end of the bits can be found:
//
//	Binary   [L: uvarint][bits packed MSB-first, zero-padded to a byte]
//	Text     one '0' or '1' per bit, then '.'
//
// L is the number of bits. Padding alone could not mark the end, since the
// first canonical code is all zeros and padding would decode as extra
// symbols. Neither transport is bit-exact with the bare layout. In exchange,
// dropping any trailing byte of a frame is always reported as corruption.
package frame

import (
	"bytes"
	"fmt"
	"io"

	"github.com/zapis/hufframe/internal"
	"github.com/zapis/hufframe/internal/errors"
)

const (
	maxSyms     = internal.MaxSymbols
	symBits     = internal.SymbolBits
	maxCodeBits = internal.MaxCodeBits
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "frame", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}

var errClosed = errorf(errors.Closed, "")

// WriterConfig configures a Writer. A nil config uses the defaults.
type WriterConfig struct {
	Transport Transport // Bit transport; defaults to Binary

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// ReaderConfig configures a Reader. A nil config uses the defaults.
type ReaderConfig struct {
	Transport Transport // Bit transport; defaults to Binary

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Encode returns the frame of text.
// Every byte of text must be in the range 0..127.
func Encode(text []byte, conf *WriterConfig) ([]byte, error) {
	var t Transport
	if conf != nil {
		t = conf.Transport
	}
	b, _, err := encodeFrame(text, t)
	return b, err
}

// Decode returns the text held in the frame.
func Decode(frame []byte, conf *ReaderConfig) ([]byte, error) {
	var t Transport
	if conf != nil {
		t = conf.Transport
	}
	b, _, err := decodeFrame(bytes.NewReader(frame), t)
	return b, err
}

// countReader counts the bytes read from R.
type countReader struct {
	R io.Reader
	N int64
}

func (cr *countReader) Read(buf []byte) (int, error) {
	n, err := cr.R.Read(buf)
	cr.N += int64(n)
	return n, err
}
