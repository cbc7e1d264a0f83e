// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"testing"
)

func TestDecodeBitGen(t *testing.T) {
	vectors := []struct {
		input  string
		output []byte
		nbits  int
		valid  bool
	}{{
		input: "",
		valid: true,
	}, {
		input:  "D8:3 D8:2 D2:1 D2:2 S:ABC 0*6 10*4 11",
		output: MustDecodeHex("03026830a1815580"),
		nbits:  57,
		valid:  true,
	}, {
		input:  "1 0 1",
		output: []byte{0xa0},
		nbits:  3,
		valid:  true,
	}, {
		input:  "<110 >110",
		output: []byte{0x78},
		nbits:  6,
		valid:  true,
	}, {
		input: `
			< 110     # Global little-endian mode
			  H4:c    # Reversed to 0011
			> D3:5    # Global big-endian mode
			X:ff      # Unaligned raw bytes are rejected
		`,
	}, {
		input:  "D8:128 X:dead*2",
		output: MustDecodeHex("80deaddead"),
		nbits:  40,
		valid:  true,
	}, {
		input: "D2:4",
	}, {
		input: "S:\xff",
	}, {
		input: "Z:00",
	}}

	for i, v := range vectors {
		bg, err := DecodeBitGen(v.input)
		if v.valid != (err == nil) {
			t.Errorf("test %d, validity mismatch: got %v, want %v", i, err == nil, v.valid)
			continue
		}
		if !v.valid {
			continue
		}
		if !bytes.Equal(bg.Buf, v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, bg.Buf, v.output)
		}
		if bg.N != v.nbits {
			t.Errorf("test %d, bit count mismatch: got %d, want %d", i, bg.N, v.nbits)
		}
	}
}

func TestBitGenTransports(t *testing.T) {
	bg := MustDecodeBitGen("1011 0*5 1")
	if got, want := string(bg.Text()), "1011000001."; got != want {
		t.Errorf("Text: got %q, want %q", got, want)
	}
	if got, want := bg.Binary(), []byte{0x0a, 0xb0, 0x40}; !bytes.Equal(got, want) {
		t.Errorf("Binary: got %x, want %x", got, want)
	}
}

func TestResizeData(t *testing.T) {
	got := ResizeData([]byte("ab"), 6)
	if want := []byte{'a', 'b', 'a' ^ 1, 'b' ^ 1, 'a' ^ 2, 'b' ^ 2}; !bytes.Equal(got, want) {
		t.Errorf("ResizeData: got %q, want %q", got, want)
	}
	in := bytes.Repeat([]byte{0x7f}, 1)
	for _, b := range ResizeData(in, 1000) {
		if b >= 0x80 {
			t.Fatalf("ResizeData: got byte %#x, want 7-bit data", b)
		}
	}
}
