// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package frame

import (
	"bytes"

	"github.com/zapis/hufframe"
	"github.com/zapis/hufframe/frame"
	"github.com/zapis/hufframe/internal/testutil"
)

var (
	binConf = &frame.ReaderConfig{Transport: frame.Binary}
	txtConf = &frame.ReaderConfig{Transport: frame.Text}
)

func Fuzz(data []byte) int {
	text, ok := testDecoder(data)
	if ok {
		testEncoder(text)
	}
	// Any input can be made valid by dropping the high bit of every byte.
	testEncoder(testutil.ToASCII(append([]byte(nil), data...)))
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoder tests that the decoder either succeeds or reports a
// malformed stream. Any other failure is a bug.
func testDecoder(data []byte) ([]byte, bool) {
	text, err := frame.Decode(data, binConf)
	if err != nil {
		if !hufframe.IsMalformedStream(err) {
			panic(err)
		}
		if text != nil {
			panic("partial output on error")
		}
		return nil, false
	}
	return text, true
}

// testEncoder encodes the input with both transports and checks that
// both decode back to the input.
func testEncoder(text []byte) {
	for _, t := range []frame.Transport{frame.Binary, frame.Text} {
		b, err := frame.Encode(text, &frame.WriterConfig{Transport: t})
		if err != nil {
			panic(err)
		}
		conf := binConf
		if t == frame.Text {
			conf = txtConf
		}
		got, err := frame.Decode(b, conf)
		if err != nil {
			panic(err)
		}
		if !bytes.Equal(got, text) {
			panic("mismatching bytes")
		}
	}
}
