// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/zapis/hufframe/frame"
)

func init() {
	// A frame is a single canonical code so the level is ignored.
	for _, t := range []frame.Transport{frame.Binary, frame.Text} {
		conf := &frame.WriterConfig{Transport: t}
		rconf := &frame.ReaderConfig{Transport: t}
		name := "huf"
		if t == frame.Text {
			name = "huf-txt"
		}
		RegisterEncoder(FormatHuffman, name,
			func(w io.Writer, _ int) io.WriteCloser {
				zw, err := frame.NewWriter(w, conf)
				if err != nil {
					panic(err)
				}
				return zw
			})
		RegisterDecoder(FormatHuffman, name,
			func(r io.Reader) io.ReadCloser {
				zr, err := frame.NewReader(r, rconf)
				if err != nil {
					panic(err)
				}
				return zr
			})
	}
}
