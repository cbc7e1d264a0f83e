// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Hufread decodes a frame written by hufwrite.
//
// Usage:
//
//	hufread [-format binary|text] <input> <output>
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
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("hufread: ")
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hufread", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var conf frame.ReaderConfig
	fs.Var(&conf.Transport, "format", "frame transport: binary or text")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hufread [flags] <input|--> <output|-->\n")
		fs.PrintDefaults()
	}
	args, err := cli.Args(fs, argv, 2)
	if err != nil {
		return err
	}

	in, err := cli.Open(args[0], stdin)
	if err != nil {
		return err
	}
	defer in.Close()
	fr, err := frame.NewReader(in, &conf)
	if err != nil {
		return err
	}

	// A corrupted frame leaves no output file behind.
	text, err := io.ReadAll(fr)
	if err != nil {
		return err
	}
	if err := fr.Close(); err != nil {
		return err
	}

	out, err := cli.Create(args[1], stdout)
	if err != nil {
		return err
	}
	if _, err := out.Write(text); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
