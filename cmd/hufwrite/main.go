// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Hufwrite rewrites a text with substitution rules and writes it as a frame.
//
// Usage:
//
//	hufwrite [-format binary|text] [-substring] <rules> <input> <output>
//
// The input or output may be "--" to use standard input or output.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/zapis/hufframe/frame"
	"github.com/zapis/hufframe/internal/tool/cli"
	"github.com/zapis/hufframe/substitute"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("hufwrite: ")
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hufwrite", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var conf frame.WriterConfig
	fs.Var(&conf.Transport, "format", "frame transport: binary or text")
	substring := fs.Bool("substring", false, "replace every occurrence instead of whole words")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hufwrite [flags] <rules> <input|--> <output|-->\n")
		fs.PrintDefaults()
	}
	args, err := cli.Args(fs, argv, 3)
	if err != nil {
		return err
	}

	rf, err := os.Open(args[0])
	if err != nil {
		return err
	}
	rules, err := substitute.ParseRules(rf)
	rf.Close()
	if err != nil {
		return err
	}
	mode := substitute.WholeWord
	if *substring {
		mode = substitute.Substring
	}

	in, err := cli.Open(args[1], stdin)
	if err != nil {
		return err
	}
	defer in.Close()
	text, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	text = substitute.New(rules, mode).Apply(text)

	// Encode before creating the output so that a failure leaves no file.
	b, err := frame.Encode(text, &conf)
	if err != nil {
		return err
	}
	out, err := cli.Create(args[2], stdout)
	if err != nil {
		return err
	}
	if _, err := out.Write(b); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
