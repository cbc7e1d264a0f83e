// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zapis/hufframe"
	"github.com/zapis/hufframe/frame"
)

func TestRun(t *testing.T) {
	text := []byte("Lorem ipsum dolor sit amet\n")
	for _, tr := range []frame.Transport{frame.Binary, frame.Text} {
		b, err := frame.Encode(text, &frame.WriterConfig{Transport: tr})
		assert.NoError(t, err)

		var stdout bytes.Buffer
		argv := []string{"-format", tr.String(), "--", "--"}
		assert.NoError(t, run(argv, bytes.NewReader(b), &stdout, io.Discard))
		assert.Equal(t, string(text), stdout.String())
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.huf"), filepath.Join(dir, "out.txt")
	b, _ := frame.Encode([]byte("AAAAAABBBBC"), nil)
	os.WriteFile(in, b, 0644)

	assert.NoError(t, run([]string{in, out}, nil, io.Discard, io.Discard))
	got, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Equal(t, "AAAAAABBBBC", string(got))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	b, _ := frame.Encode([]byte("AAAAAABBBBC"), nil)
	out := filepath.Join(dir, "out.txt")

	err := run([]string{"--", out}, bytes.NewReader(b[:len(b)-1]), io.Discard, io.Discard)
	assert.True(t, hufframe.IsMalformedStream(err), "got %v", err)
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "output file created for corrupted frame")

	assert.Error(t, run([]string{"--"}, nil, io.Discard, io.Discard))
	assert.Error(t, run([]string{filepath.Join(dir, "none"), "--"}, nil, io.Discard, io.Discard))
}
