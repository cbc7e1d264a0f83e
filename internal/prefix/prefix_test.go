// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/icza/bitio"

	"github.com/zapis/hufframe/internal"
	"github.com/zapis/hufframe/internal/errors"
	"github.com/zapis/hufframe/internal/testutil"
)

func catch(f func()) (err error) {
	defer errors.Recover(&err)
	f()
	return nil
}

// makeCodes returns codes with the given counts for symbols 'a', 'b', ...
func makeCodes(cnts ...uint64) (codes PrefixCodes) {
	for i, c := range cnts {
		codes = append(codes, PrefixCode{Sym: uint32('a' + i), Cnt: c})
	}
	return codes
}

func lengthsOf(codes PrefixCodes) (lens []uint32) {
	codes = append(PrefixCodes(nil), codes...)
	codes.SortBySymbol()
	for _, c := range codes {
		lens = append(lens, c.Len)
	}
	return lens
}

func TestHistogram(t *testing.T) {
	vectors := []struct {
		input string
		want  PrefixCodes
	}{
		{input: "", want: nil},
		{input: "AAAA", want: PrefixCodes{{Sym: 'A', Cnt: 4}}},
		{input: "AAAAAABBBBC", want: PrefixCodes{
			{Sym: 'A', Cnt: 6}, {Sym: 'B', Cnt: 4}, {Sym: 'C', Cnt: 1},
		}},
		{input: "ba\nab", want: PrefixCodes{
			{Sym: '\n', Cnt: 1}, {Sym: 'a', Cnt: 2}, {Sym: 'b', Cnt: 2},
		}},
	}

	for i, v := range vectors {
		got := Histogram([]byte(v.input))
		if diff := cmp.Diff(v.want, got); diff != "" {
			t.Errorf("test %d, Histogram(%q) mismatch (-want +got):\n%s", i, v.input, diff)
		}
	}
}

func TestGenerateLengths(t *testing.T) {
	vectors := []struct {
		cnts    []uint64
		maxBits uint
		want    []uint32
	}{{
		cnts:    []uint64{4},
		maxBits: 32,
		want:    []uint32{1},
	}, {
		cnts:    []uint64{6, 4, 1},
		maxBits: 32,
		want:    []uint32{1, 2, 2},
	}, {
		cnts:    []uint64{1, 1, 1, 1},
		maxBits: 32,
		want:    []uint32{2, 2, 2, 2},
	}, {
		// Merged nodes order after the leaves of equal count.
		cnts:    []uint64{1, 1, 2, 2},
		maxBits: 32,
		want:    []uint32{2, 2, 2, 2},
	}, {
		cnts:    []uint64{5, 1, 1},
		maxBits: 32,
		want:    []uint32{1, 2, 2},
	}, {
		cnts:    []uint64{1, 1, 2, 3, 5, 8, 13, 21},
		maxBits: 32,
		want:    []uint32{7, 7, 6, 5, 4, 3, 2, 1},
	}, {
		cnts:    []uint64{1, 1, 2, 3, 5, 8, 13, 21},
		maxBits: 4,
		want:    []uint32{4, 4, 4, 4, 4, 4, 3, 1},
	}, {
		cnts:    []uint64{1, 1, 2, 3, 5, 8, 13, 21},
		maxBits: 3,
		want:    []uint32{3, 3, 3, 3, 3, 3, 3, 3},
	}}

	for i, v := range vectors {
		codes := makeCodes(v.cnts...)
		if err := GenerateLengths(codes, v.maxBits); err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if diff := cmp.Diff(v.want, lengthsOf(codes)); diff != "" {
			t.Errorf("test %d, lengths mismatch (-want +got):\n%s", i, diff)
		}
		if len(codes) > 1 && !codes.checkLengths() {
			t.Errorf("test %d, Kraft sum is not one", i)
		}
	}
}

func TestGenerateLengthsErrors(t *testing.T) {
	codes := makeCodes(1, 1, 1, 1, 1)
	if err := GenerateLengths(codes, 2); !errors.IsInternal(err) {
		t.Errorf("GenerateLengths(5 codes, 2): got %v, want internal error", err)
	}
	if err := GenerateLengths(nil, 32); err != nil {
		t.Errorf("GenerateLengths(nil): unexpected error: %v", err)
	}
}

func TestGenerateLengthsRandom(t *testing.T) {
	r := testutil.NewRand(0)
	for i := 0; i < 100; i++ {
		var cnts []uint64
		for j := 1 + r.Intn(internal.MaxSymbols); j > 0; j-- {
			cnts = append(cnts, uint64(1+r.Intn(1<<uint(r.Intn(20)))))
		}
		maxBits := uint(8 + r.Intn(25))
		codes := makeCodes(cnts...)
		if err := GenerateLengths(codes, maxBits); err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if len(codes) > 1 && !codes.checkLengths() {
			t.Errorf("test %d, Kraft sum is not one", i)
		}
		for _, c1 := range codes {
			if c1.Len == 0 || c1.Len > uint32(maxBits) {
				t.Errorf("test %d, symbol %d: invalid length %d", i, c1.Sym, c1.Len)
			}
			for _, c2 := range codes {
				if c1.Cnt > c2.Cnt && c1.Len > c2.Len {
					t.Errorf("test %d, symbols %d and %d: more frequent symbol has longer code", i, c1.Sym, c2.Sym)
				}
			}
		}
		if err := GeneratePrefixes(codes); err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if !codes.checkPrefixes() {
			t.Errorf("test %d, codes are not prefix-free", i)
		}
		if !codes.checkCanonical() {
			t.Errorf("test %d, codes are not canonical", i)
		}
	}
}

func TestGeneratePrefixes(t *testing.T) {
	vectors := []struct {
		input PrefixCodes
		want  PrefixCodes
		err   bool
	}{{
		input: PrefixCodes{{Sym: 'A', Len: 1}},
		want:  PrefixCodes{{Sym: 'A', Len: 1, Val: 0}},
	}, {
		input: PrefixCodes{{Sym: 'a', Len: 2}, {Sym: 'b', Len: 1}, {Sym: 'c', Len: 3}, {Sym: 'd', Len: 3}},
		want: PrefixCodes{
			{Sym: 'b', Len: 1, Val: 0x0}, // 0
			{Sym: 'a', Len: 2, Val: 0x2}, // 10
			{Sym: 'c', Len: 3, Val: 0x6}, // 110
			{Sym: 'd', Len: 3, Val: 0x7}, // 111
		},
	}, {
		input: PrefixCodes{{Sym: 'x', Len: 2}, {Sym: 'y', Len: 4}},
		want: PrefixCodes{
			{Sym: 'x', Len: 2, Val: 0x0}, // 00
			{Sym: 'y', Len: 4, Val: 0x4}, // 0100
		},
	}, {
		input: PrefixCodes{{Sym: 'a', Len: 1}, {Sym: 'b', Len: 1}, {Sym: 'c', Len: 1}},
		err:   true,
	}, {
		input: PrefixCodes{{Sym: 'a', Len: 1}, {Sym: 'b', Len: 2}, {Sym: 'c', Len: 2}, {Sym: 'd', Len: 2}},
		err:   true,
	}, {
		input: PrefixCodes{{Sym: 'a', Len: 0}},
		err:   true,
	}, {
		input: PrefixCodes{{Sym: 'a', Len: 33}},
		err:   true,
	}, {
		input: PrefixCodes{{Sym: 'a', Len: 1}, {Sym: 'a', Len: 2}},
		err:   true,
	}}

	for i, v := range vectors {
		err := GeneratePrefixes(v.input)
		if v.err {
			if !errors.IsCorrupted(err) {
				t.Errorf("test %d, error mismatch: got %v, want corrupted error", i, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if diff := cmp.Diff(v.want, v.input); diff != "" {
			t.Errorf("test %d, codes mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestLengthCounts(t *testing.T) {
	codes := PrefixCodes{{Sym: 'a', Len: 1}, {Sym: 'b', Len: 3}, {Sym: 'c', Len: 3}}
	if diff := cmp.Diff([]int{1, 0, 2}, codes.LengthCounts()); diff != "" {
		t.Errorf("LengthCounts mismatch (-want +got):\n%s", diff)
	}
	codes[0].Cnt, codes[1].Cnt, codes[2].Cnt = 5, 2, 1
	if got, want := codes.Length(), uint64(5+6+3); got != want {
		t.Errorf("Length: got %d, want %d", got, want)
	}
}

func mustCodes(t *testing.T, text string) PrefixCodes {
	codes := Histogram([]byte(text))
	if err := GenerateLengths(codes, internal.MaxCodeBits); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := GeneratePrefixes(codes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return codes
}

func writeSymbols(t *testing.T, codes PrefixCodes, text string) ([]byte, int64) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	var pw Writer
	var pe Encoder
	pw.Init(bw)
	pe.Init(codes)
	err := catch(func() {
		for _, b := range []byte(text) {
			pw.WriteSymbol(uint(b), &pe)
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.Bytes(), pw.Offset
}

func readSymbols(codes PrefixCodes, buf []byte, limit int64) (out []byte, err error) {
	var pr Reader
	var pd Decoder
	pr.Init(bitio.NewReader(bytes.NewReader(buf)), limit)
	pd.Init(codes)
	err = catch(func() {
		for {
			sym, ok := pr.TryReadSymbol(&pd)
			if !ok {
				return
			}
			out = append(out, byte(sym))
		}
	})
	return out, err
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(1)
	vectors := []string{
		"AAAA",
		"AAAAAABBBBC",
		"abracadabra",
		"The quick brown fox jumps over the lazy dog.\n",
		string(testutil.ResizeData(r.Bytes(64), 4096)),
	}

	for i, text := range vectors {
		codes := mustCodes(t, text)
		buf, nb := writeSymbols(t, codes, text)
		if want := codes.Length(); uint64(nb) != want {
			t.Errorf("test %d, bit count mismatch: got %d, want %d", i, nb, want)
		}
		got, err := readSymbols(codes, buf, nb)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if string(got) != text {
			t.Errorf("test %d, round-trip mismatch:\ngot  %q\nwant %q", i, got, text)
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	codes := mustCodes(t, "AAAAAABBBBC")
	var lens [3]uint32
	for _, c := range codes {
		lens[c.Sym-'A'] = c.Len
	}
	if !(lens[0] < lens[1] && lens[1] <= lens[2]) {
		t.Errorf("lengths for A, B, C: got %v, want A shortest and C longest", lens)
	}
}

func TestReaderErrors(t *testing.T) {
	// Single symbol code: 'A' is "0" and "1" has no code.
	single := PrefixCodes{{Sym: 'A', Len: 1}}
	if err := GeneratePrefixes(single); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := readSymbols(single, []byte{0x40}, 2); !errors.IsCorrupted(err) {
		t.Errorf("invalid code: got %v, want corrupted error", err)
	}

	// Codes {b:0, a:10, c:110, d:111}; the stream "1" ends mid-code.
	codes := PrefixCodes{{Sym: 'a', Len: 2}, {Sym: 'b', Len: 1}, {Sym: 'c', Len: 3}, {Sym: 'd', Len: 3}}
	if err := GeneratePrefixes(codes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := readSymbols(codes, []byte{0x80}, 1); !errors.IsCorrupted(err) {
		t.Errorf("truncated mid-code: got %v, want corrupted error", err)
	}
	if _, err := readSymbols(codes, []byte{0xc0}, 16); !errors.IsCorrupted(err) {
		t.Errorf("truncated before limit: got %v, want corrupted error", err)
	}
	got, err := readSymbols(codes, []byte{0x5c}, 7) // 0 10 111 0
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if string(got) != "badb" {
		t.Errorf("decoded symbols: got %q, want %q", got, "badb")
	}
}

func TestWriterErrors(t *testing.T) {
	codes := mustCodes(t, "ab")
	var pe Encoder
	pe.Init(codes)
	var pw Writer
	pw.Init(bitio.NewWriter(new(bytes.Buffer)))
	err := catch(func() { pw.WriteSymbol('c', &pe) })
	if !errors.IsInternal(err) {
		t.Errorf("missing code entry: got %v, want internal error", err)
	}
	err = catch(func() { pw.WriteSymbol(0x200, &pe) })
	if !errors.IsInternal(err) {
		t.Errorf("missing code entry: got %v, want internal error", err)
	}
}

func TestReadBits(t *testing.T) {
	var pr Reader
	pr.Init(bitio.NewReader(bytes.NewReader([]byte{0xa5, 0x0f})), -1)
	var got []uint64
	err := catch(func() {
		got = append(got, pr.ReadBits(4), pr.ReadBits(7), pr.ReadBits(5))
		if _, ok := pr.TryReadBit(); ok {
			t.Errorf("TryReadBit: unexpected success")
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]uint64{0xa, 0x28, 0xf}, got); diff != "" {
		t.Errorf("ReadBits mismatch (-want +got):\n%s", diff)
	}
	if pr.Remaining() != -1 {
		t.Errorf("Remaining: got %d, want -1", pr.Remaining())
	}
}
