// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package frame

import (
	"io"

	"github.com/zapis/hufframe/internal"
	"github.com/zapis/hufframe/internal/errors"
	"github.com/zapis/hufframe/internal/prefix"
)

// Writer buffers text and writes it as a single frame upon Close.
// Nothing is written to the underlying io.Writer before Close.
type Writer struct {
	InputOffset  int64 // Total number of bytes passed to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr   io.Writer
	conf WriterConfig
	buf  []byte // Text to be framed
	hdr  Header // Header of the frame, once written
	err  error  // Persistent error
}

// NewWriter returns a Writer that frames text into w.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	fw := new(Writer)
	if conf != nil {
		fw.conf = *conf
	}
	if fw.conf.Transport != Binary && fw.conf.Transport != Text {
		return nil, errorf(errors.Invalid, "unknown transport %v", fw.conf.Transport)
	}
	fw.Reset(w)
	return fw, nil
}

// Write buffers buf. A byte outside the 7-bit alphabet fails the Writer.
func (fw *Writer) Write(buf []byte) (int, error) {
	if fw.err != nil {
		return 0, fw.err
	}
	if i := internal.FirstInvalid(buf); i >= 0 {
		fw.err = errorf(errors.Invalid, "byte %#02x at offset %d", buf[i], fw.InputOffset+int64(i))
		fw.buf = append(fw.buf, buf[:i]...)
		fw.InputOffset += int64(i)
		return i, fw.err
	}
	fw.buf = append(fw.buf, buf...)
	fw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close encodes the buffered text and writes the frame.
// It does not close the underlying io.Writer.
func (fw *Writer) Close() error {
	if fw.err == errClosed {
		return nil
	}
	if fw.err != nil {
		return fw.err
	}

	var b []byte
	b, fw.hdr, fw.err = encodeFrame(fw.buf, fw.conf.Transport)
	if fw.err != nil {
		return fw.err
	}
	n, err := fw.wr.Write(b)
	fw.OutputOffset += int64(n)
	if err != nil {
		fw.err = err
		return err
	}
	fw.buf, fw.err = nil, errClosed
	return nil
}

// Header returns the header of the frame written by Close.
func (fw *Writer) Header() Header { return fw.hdr }

// Reset discards the Writer's state and makes it equivalent to the result
// of NewWriter, but writing to w instead.
func (fw *Writer) Reset(w io.Writer) error {
	*fw = Writer{wr: w, conf: fw.conf, buf: fw.buf[:0]}
	return nil
}

// encodeFrame builds the whole frame of text in memory.
func encodeFrame(text []byte, t Transport) (out []byte, hdr Header, err error) {
	defer errors.Recover(&err)

	if i := internal.FirstInvalid(text); i >= 0 {
		return nil, Header{}, errorf(errors.Invalid, "byte %#02x at offset %d", text[i], i)
	}
	codes := prefix.Histogram(text)
	if err := prefix.GenerateLengths(codes, maxCodeBits); err != nil {
		return nil, Header{}, err
	}
	if err := prefix.GeneratePrefixes(codes); err != nil {
		return nil, Header{}, err
	}
	hdr = makeHeader(codes)

	sink := newBitSink(t)
	var pw prefix.Writer
	var pe prefix.Encoder
	pw.Init(sink)
	pe.Init(codes)
	hdr.write(&pw)
	if len(codes) > 0 {
		for _, b := range text {
			pw.WriteSymbol(uint(b), &pe)
		}
	}
	out, err = sink.Bytes(pw.Offset)
	return out, hdr, err
}
