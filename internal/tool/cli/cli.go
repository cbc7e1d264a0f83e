// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package cli holds the argument and file handling shared by the commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Stdio is the file name that stands for standard input or output.
const Stdio = "--"

// Args parses argv with fs and returns exactly n positional arguments.
//
// The flag package treats the first "--" as the end of the flags and drops it.
// Since "--" is also a file name here, a dropped "--" is put back when the
// positional arguments come up one short.
func Args(fs *flag.FlagSet, argv []string, n int) ([]string, error) {
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	args := fs.Args()
	if len(args) == n-1 {
		if i := len(argv) - len(args) - 1; i >= 0 && argv[i] == Stdio {
			args = append([]string{Stdio}, args...)
		}
	}
	if len(args) != n {
		return nil, fmt.Errorf("got %d arguments, want %d", len(args), n)
	}
	return args, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Open opens the named input file, or returns stdin if name is Stdio.
func Open(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == Stdio {
		return io.NopCloser(stdin), nil
	}
	return os.Open(name)
}

// Create creates the named output file, or returns stdout if name is Stdio.
func Create(name string, stdout io.Writer) (io.WriteCloser, error) {
	if name == Stdio {
		return nopCloser{stdout}, nil
	}
	return os.Create(name)
}
