// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"hash/crc32"
	"io"
	"testing"

	"github.com/zapis/hufframe/internal/testutil"
)

// Only 7-bit text is accepted by every registered format.
var testFiles = []string{"lorem.txt", "melody.txt", "notes.rules"}

func testRoundTrip(t *testing.T, enc Encoder, dec Decoder) {
	type entry struct {
		name  string // Name of the test
		file  string // The input test file
		level int    // The compression level
		size  int    // The size of the input
	}
	var vectors []entry
	for _, f := range testFiles {
		for _, s := range []int{1, 1e3, 1e5} {
			l := 6
			vectors = append(vectors, entry{getName(f, l, s), f, l, s})
		}
	}

	for i, v := range vectors {
		input := testutil.MustLoadFile("../../../testdata/"+v.file, v.size)
		buf := new(bytes.Buffer)
		wr := enc(buf, v.level)
		_, cpErr := io.Copy(wr, bytes.NewReader(input))
		if err := wr.Close(); err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, err)
			continue
		}
		if cpErr != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, cpErr)
			continue
		}

		hash := crc32.NewIEEE()
		rd := dec(buf)
		cnt, cpErr := io.Copy(hash, rd)
		if err := rd.Close(); err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, err)
			continue
		}
		if cpErr != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, cpErr)
			continue
		}

		sum := crc32.ChecksumIEEE(input)
		if int(cnt) != len(input) {
			t.Errorf("test %d, %s: mismatching count: got %d, want %d", i, v.name, cnt, len(input))
		}
		if hash.Sum32() != sum {
			t.Errorf("test %d, %s: mismatching checksum: got 0x%08x, want 0x%08x", i, v.name, hash.Sum32(), sum)
		}
	}
}

func TestLibs(t *testing.T) {
	libs := []struct {
		format Format
		name   string
	}{
		{FormatHuffman, "huf"},
		{FormatHuffman, "huf-txt"},
		{FormatHuffman, "huff0"},
		{FormatFlate, "std"},
		{FormatFlate, "kp"},
		{FormatBZ2, "ds"},
		{FormatXZ, "uk"},
	}
	for _, lib := range libs {
		enc, dec := Encoders[lib.format][lib.name], Decoders[lib.format][lib.name]
		if enc == nil || dec == nil {
			continue // Excluded by build tags
		}
		t.Run(lib.format.String()+":"+lib.name, func(t *testing.T) {
			testRoundTrip(t, enc, dec)
		})
	}
}

func TestGetName(t *testing.T) {
	vectors := []struct {
		file string
		lvl  int
		size int
		want string
	}{
		{"../testdata/lorem.txt", 6, 1e4, "lorem.txt:6:1e4"},
		{"melody.txt", 1, 1e6, "melody.txt:1:1e6"},
	}
	for i, v := range vectors {
		if got := getName(v.file, v.lvl, v.size); got != v.want {
			t.Errorf("test %d, getName(%q, %d, %d) = %q, want %q", i, v.file, v.lvl, v.size, got, v.want)
		}
	}
}
