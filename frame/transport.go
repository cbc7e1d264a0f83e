// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package frame

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/zapis/hufframe/internal/errors"
	"github.com/zapis/hufframe/internal/prefix"
)

// Transport selects how the bits of a frame are carried in bytes.
type Transport int

const (
	// Binary packs the bits eight to a byte, most-significant bit first,
	// with the final byte padded with zero bits. The packed bits are
	// preceded by the number of frame bits as a uvarint, which tells the
	// padding apart from codes made of zero bits.
	Binary Transport = iota

	// Text writes one ASCII '0' or '1' per bit followed by a single '.'
	// that ends the frame. When reading, every other byte is ignored, but
	// the '.' is required and no bit may follow it.
	Text
)

func (t Transport) String() string {
	switch t {
	case Binary:
		return "binary"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Transport(%d)", int(t))
	}
}

// Set parses s as the name of a transport. It implements flag.Value.
func (t *Transport) Set(s string) error {
	switch s {
	case "binary", "bin":
		*t = Binary
	case "text", "txt":
		*t = Text
	default:
		return fmt.Errorf("unknown transport %q", s)
	}
	return nil
}

// bitSink collects the bits of a frame and returns the transport bytes.
type bitSink interface {
	prefix.BitWriter
	Bytes(nbits int64) ([]byte, error)
}

func newBitSink(t Transport) bitSink {
	switch t {
	case Binary:
		w := new(binaryWriter)
		w.bw = bitio.NewWriter(&w.buf)
		return w
	case Text:
		return new(textWriter)
	default:
		panicf(errors.Invalid, "unknown transport %v", t)
		return nil
	}
}

type binaryWriter struct {
	buf bytes.Buffer
	bw  *bitio.Writer
}

func (w *binaryWriter) WriteBits(v uint64, n uint8) error {
	return w.bw.WriteBits(v, n)
}

func (w *binaryWriter) Bytes(nbits int64) ([]byte, error) {
	if err := w.bw.Close(); err != nil {
		return nil, err
	}
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(nbits))
	return append(hdr[:n:n], w.buf.Bytes()...), nil
}

type textWriter struct {
	buf []byte
}

func (w *textWriter) WriteBits(v uint64, n uint8) error {
	for i := int(n) - 1; i >= 0; i-- {
		w.buf = append(w.buf, '0'+byte(v>>uint(i))&1)
	}
	return nil
}

func (w *textWriter) Bytes(int64) ([]byte, error) {
	return append(w.buf, textEnd), nil
}

// textEnd marks the end of a frame in the Text transport.
const textEnd = '.'

// textReader reports io.EOF at the frame terminator and at the end of
// the underlying data. Only the former is a complete frame.
type textReader struct {
	rd    io.ByteReader
	ended bool // Terminator seen
}

func (r *textReader) ReadBool() (bool, error) {
	if r.ended {
		return false, io.EOF
	}
	for {
		c, err := r.rd.ReadByte()
		if err != nil {
			return false, err
		}
		switch c {
		case '0':
			return false, nil
		case '1':
			return true, nil
		case textEnd:
			r.ended = true
			return false, io.EOF
		}
	}
}

// errByteReader records the last error of the underlying reader so that
// I/O errors can be told apart from malformed data.
type errByteReader struct {
	rd  io.ByteReader
	err error
}

func (r *errByteReader) ReadByte() (byte, error) {
	c, err := r.rd.ReadByte()
	if err != nil {
		r.err = err
	}
	return c, err
}

// bitSource feeds the bits of a frame from the transport bytes.
type bitSource struct {
	rd    *bufio.Reader
	br    *bitio.Reader // Only for Binary
	tr    *textReader   // Only for Text
	nbits int64         // Only for Binary
}

// open prepares pr to read the frame bits from the underlying reader.
func (s *bitSource) open(t Transport, r io.Reader, pr *prefix.Reader) {
	s.rd = bufio.NewReader(r)
	switch t {
	case Binary:
		er := &errByteReader{rd: s.rd}
		nb, err := binary.ReadUvarint(er)
		switch {
		case er.err != nil && er.err != io.EOF:
			errors.Panic(er.err)
		case err == io.EOF:
			panicf(errors.Corrupted, "missing frame length")
		case err == io.ErrUnexpectedEOF:
			panicf(errors.Corrupted, "truncated frame length")
		case err != nil:
			panicf(errors.Corrupted, "invalid frame length: %v", err)
		case nb > 1<<62:
			panicf(errors.Corrupted, "frame length too large: %d", nb)
		}
		s.nbits = int64(nb)
		s.br = bitio.NewReader(s.rd)
		pr.Init(s.br, s.nbits)
	case Text:
		s.tr = &textReader{rd: s.rd}
		pr.Init(s.tr, -1)
	default:
		panicf(errors.Invalid, "unknown transport %v", t)
	}
}

// close verifies that the frame was read to its very end.
func (s *bitSource) close() {
	if s.tr != nil {
		s.closeText()
		return
	}
	if pad := uint8((8 - s.nbits%8) % 8); pad > 0 {
		v, err := s.br.ReadBits(pad)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			panicf(errors.Corrupted, "truncated padding")
		}
		if err != nil {
			errors.Panic(err)
		}
		if v != 0 {
			panicf(errors.Corrupted, "non-zero padding bits")
		}
	}
	switch _, err := s.rd.ReadByte(); {
	case err == nil:
		panicf(errors.Corrupted, "unexpected data after frame")
	case err != io.EOF:
		errors.Panic(err)
	}
}

func (s *bitSource) closeText() {
	if !s.tr.ended {
		panicf(errors.Corrupted, "missing frame terminator")
	}
	for {
		c, err := s.rd.ReadByte()
		switch {
		case err == io.EOF:
			return
		case err != nil:
			errors.Panic(err)
		case c == '0' || c == '1' || c == textEnd:
			panicf(errors.Corrupted, "unexpected data after frame")
		}
	}
}
