// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare the canonical Huffman frame against other
// entropy coders and general purpose compressors.
// Individual implementations are referred to as codecs.
//
// Example usage:
//
//	$ hufbench \
//		-formats huf             \
//		-tests   encRate,ratio   \
//		-codecs  huf,huff0       \
//		-files   lorem.txt       \
//		-sizes   1e4,1e5,1e6
//
// Sizes accept SI and IEC prefixes (for example 64Ki or 1M).
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/golib/unitconv"

	"github.com/zapis/hufframe/internal/tool/bench"
)

const (
	defaultPaths  = "testdata"
	defaultLevels = "6"
	defaultSizes  = "1e4,1e5,1e6"
)

var allFormats = []bench.Format{
	bench.FormatHuffman, bench.FormatFlate, bench.FormatBZ2, bench.FormatXZ,
}

var allTests = []bench.Test{
	bench.TestEncodeRate, bench.TestDecodeRate, bench.TestCompressRatio,
}

// The decompression speed benchmark works by decompressing some pre-compressed
// data. In order for the benchmarks to be consistent, the same encoder should
// be used to generate the pre-compressed data for all the trials.
//
// encRefs defines the priority order for which encoders to choose first as the
// reference compressor. If no compressor is found for any of the listed codecs,
// then a random encoder will be chosen.
var encRefs = []string{"huf", "std", "ds", "kp", "uk"}

func defaultTests() string {
	var s []string
	for _, t := range allTests {
		s = append(s, t.String())
	}
	return strings.Join(s, ",")
}

func defaultFormats() string {
	var s []string
	for _, f := range allFormats {
		if len(bench.Encoders[f]) > 0 || len(bench.Decoders[f]) > 0 {
			s = append(s, f.String())
		}
	}
	return strings.Join(s, ",")
}

func defaultFiles() string {
	p := strings.Split(defaultPaths, ",")[0]
	des, err := os.ReadDir(p)
	if err != nil {
		return ""
	}
	var s []string
	for _, de := range des {
		if !de.IsDir() && strings.HasSuffix(de.Name(), ".txt") {
			s = append(s, de.Name())
		}
	}
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	m := make(map[string]bool)
	for _, v := range bench.Encoders {
		for k := range v {
			m[k] = true
		}
	}
	for _, v := range bench.Decoders {
		for k := range v {
			m[k] = true
		}
	}
	hasHuf := m["huf"]
	delete(m, "huf")
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	if hasHuf {
		s = append([]string{"huf"}, s...) // Ensure "huf" always appears first
	}
	return strings.Join(s, ",")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("hufbench: ")

	// Setup flag arguments.
	f0 := flag.String("formats", defaultFormats(), "List of formats to benchmark")
	f1 := flag.String("tests", defaultTests(), "List of different benchmark tests")
	f2 := flag.String("codecs", defaultCodecs(), "List of codecs to benchmark")
	f3 := flag.String("paths", defaultPaths, "List of paths to search for test files")
	f4 := flag.String("files", defaultFiles(), "List of input files to benchmark")
	f5 := flag.String("levels", defaultLevels, "List of compression levels to benchmark")
	f6 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var codecs, paths, files []string
	var formats []bench.Format
	var tests []bench.Test
	var levels, sizes []int
	codecs = sep.Split(*f2, -1)
	paths = sep.Split(*f3, -1)
	files = sep.Split(*f4, -1)
	for _, s := range sep.Split(*f0, -1) {
		f, ok := parseFormat(s)
		if !ok {
			log.Fatalf("invalid format: %q", s)
		}
		formats = append(formats, f)
	}
	for _, s := range sep.Split(*f1, -1) {
		t, ok := parseTest(s)
		if !ok {
			log.Fatalf("invalid test: %q", s)
		}
		tests = append(tests, t)
	}
	for _, s := range sep.Split(*f5, -1) {
		lvl, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			log.Fatalf("invalid level: %q", s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f6, -1) {
		nf, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			log.Fatalf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	bench.Paths = paths
	runBenchmarks(files, codecs, formats, tests, levels, sizes)
	te := time.Now()
	fmt.Printf("RUNTIME: %v\n", te.Sub(ts))
}

func parseFormat(s string) (bench.Format, bool) {
	for _, f := range allFormats {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}

func parseTest(s string) (bench.Test, bool) {
	for _, t := range allTests {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

func runBenchmarks(files, codecs []string, formats []bench.Format, tests []bench.Test, levels, sizes []int) {
	for _, f := range formats {
		// Get lists of encoders and decoders that exist.
		var encs, decs []string
		for _, c := range codecs {
			if _, ok := bench.Encoders[f][c]; ok {
				encs = append(encs, c)
			}
		}
		for _, c := range codecs {
			if _, ok := bench.Decoders[f][c]; ok {
				decs = append(decs, c)
			}
		}

		for _, t := range tests {
			var results [][]bench.Result
			var names, codecs []string
			var title, suffix string

			// Check that we can actually do this bench.
			fmt.Printf("BENCHMARK: %v:%v\n", f, t)
			if len(encs) == 0 {
				fmt.Print("\tSKIP: There are no encoders available.\n\n")
				continue
			}
			if len(decs) == 0 && t == bench.TestDecodeRate {
				fmt.Print("\tSKIP: There are no decoders available.\n\n")
				continue
			}

			// Progress ticker.
			var cnt int
			tick := func() {
				total := len(codecs) * len(files) * len(levels) * len(sizes)
				pct := 100.0 * float64(cnt) / float64(total)
				fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
				cnt++
			}

			// Perform the bench. This may take some time.
			switch t {
			case bench.TestEncodeRate:
				codecs, title, suffix = encs, "MB/s", ""
				results, names = bench.BenchmarkEncoderSuite(f, encs, files, levels, sizes, tick)
			case bench.TestDecodeRate:
				ref := getReferenceEncoder(f)
				codecs, title, suffix = decs, "MB/s", ""
				results, names = bench.BenchmarkDecoderSuite(f, decs, files, levels, sizes, ref, tick)
			case bench.TestCompressRatio:
				codecs, title, suffix = encs, "ratio", "x"
				results, names = bench.BenchmarkRatioSuite(f, encs, files, levels, sizes, tick)
			default:
				log.Fatalf("unknown test: %v", t)
			}

			// Print all of the results.
			printResults(results, names, codecs, title, suffix)
			fmt.Println()
		}
		fmt.Println()
	}
}

func getReferenceEncoder(f bench.Format) bench.Encoder {
	for _, c := range encRefs {
		if enc, ok := bench.Encoders[f][c]; ok {
			return enc // Choose by priority
		}
	}
	for _, enc := range bench.Encoders[f] {
		return enc // Choose any random encoder
	}
	return nil // There are no encoders
}

func printResults(results [][]bench.Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
