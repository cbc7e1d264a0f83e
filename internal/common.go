// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of helpers shared by the codec packages.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

import "math/bits"

const (
	// SymbolBits is the bit-width of a symbol in the frame header.
	SymbolBits = 7

	// MaxSymbols is the size of the alphabet: every 7-bit byte value.
	MaxSymbols = 1 << SymbolBits

	// MaxCodeBits is the longest code the frame format can carry.
	// Code values are held in a uint32.
	MaxCodeBits = 32
)

// ReverseLUT returns the input key with its bits reversed.
var ReverseLUT [256]byte

func init() {
	for i := range ReverseLUT {
		b := uint8(i)
		b = (b&0xaa)>>1 | (b&0x55)<<1
		b = (b&0xcc)>>2 | (b&0x33)<<2
		b = (b&0xf0)>>4 | (b&0x0f)<<4
		ReverseLUT[i] = b
	}
}

// ReverseUint32 reverses all bits of v.
func ReverseUint32(v uint32) (x uint32) {
	x |= uint32(ReverseLUT[byte(v>>0)]) << 24
	x |= uint32(ReverseLUT[byte(v>>8)]) << 16
	x |= uint32(ReverseLUT[byte(v>>16)]) << 8
	x |= uint32(ReverseLUT[byte(v>>24)]) << 0
	return x
}

// ReverseUint32N reverses the lower n bits of v.
func ReverseUint32N(v uint32, n uint) (x uint32) {
	return uint32(ReverseUint32(uint32(v << (32 - n))))
}

// ReverseUint64 reverses all bits of v.
func ReverseUint64(v uint64) (x uint64) {
	x |= uint64(ReverseLUT[byte(v>>0)]) << 56
	x |= uint64(ReverseLUT[byte(v>>8)]) << 48
	x |= uint64(ReverseLUT[byte(v>>16)]) << 40
	x |= uint64(ReverseLUT[byte(v>>24)]) << 32
	x |= uint64(ReverseLUT[byte(v>>32)]) << 24
	x |= uint64(ReverseLUT[byte(v>>40)]) << 16
	x |= uint64(ReverseLUT[byte(v>>48)]) << 8
	x |= uint64(ReverseLUT[byte(v>>56)]) << 0
	return x
}

// ReverseUint64N reverses the lower n bits of v.
func ReverseUint64N(v uint64, n uint) (x uint64) {
	return uint64(ReverseUint64(uint64(v << (64 - n))))
}

// CountBits reports the bit-width of each per-length count in a frame header
// that carries n symbols. This is the number of bits needed to represent n,
// and is never less than one.
func CountBits(n int) uint {
	if n <= 0 {
		return 1
	}
	return uint(bits.Len(uint(n)))
}

// IsSymbol reports whether b belongs to the 7-bit alphabet.
func IsSymbol(b byte) bool {
	return b < MaxSymbols
}

// FirstInvalid returns the index of the first byte in buf that is not a
// symbol, or -1 if there is none.
func FirstInvalid(buf []byte) int {
	for i, b := range buf {
		if !IsSymbol(b) {
			return i
		}
	}
	return -1
}
