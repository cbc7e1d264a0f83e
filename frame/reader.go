// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package frame

import (
	"io"

	"github.com/zapis/hufframe/internal/errors"
	"github.com/zapis/hufframe/internal/prefix"
)

// Reader decodes a single frame read from the underlying io.Reader.
// The whole frame is decoded upon the first call to Read, so that corrupted
// input is reported before any text is returned.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd     countReader
	conf   ReaderConfig
	toRead []byte // Decoded text ready to be emitted from Read
	hdr    Header // Header of the frame, once decoded
	done   bool   // Whether the frame has been decoded
	err    error  // Persistent error
}

// NewReader returns a Reader that decodes a frame from r.
func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	fr := new(Reader)
	if conf != nil {
		fr.conf = *conf
	}
	if fr.conf.Transport != Binary && fr.conf.Transport != Text {
		return nil, errorf(errors.Invalid, "unknown transport %v", fr.conf.Transport)
	}
	fr.Reset(r)
	return fr, nil
}

func (fr *Reader) Read(buf []byte) (int, error) {
	if !fr.done && fr.err == nil {
		fr.toRead, fr.hdr, fr.err = decodeFrame(&fr.rd, fr.conf.Transport)
		fr.InputOffset = fr.rd.N
		fr.done = true
	}
	if len(fr.toRead) > 0 {
		cnt := copy(buf, fr.toRead)
		fr.toRead = fr.toRead[cnt:]
		fr.OutputOffset += int64(cnt)
		return cnt, nil
	}
	if fr.err != nil {
		return 0, fr.err
	}
	return 0, io.EOF
}

// Header returns the header of the frame. It is only valid after Read has
// returned io.EOF.
func (fr *Reader) Header() Header { return fr.hdr }

// Close ends the Reader. It does not close the underlying io.Reader.
func (fr *Reader) Close() error {
	if fr.err == errClosed {
		return nil
	}
	err := fr.err
	fr.toRead, fr.err = nil, errClosed
	return err
}

// Reset discards the Reader's state and makes it equivalent to the result
// of NewReader, but reading from r instead.
func (fr *Reader) Reset(r io.Reader) error {
	*fr = Reader{rd: countReader{R: r}, conf: fr.conf}
	return nil
}

// decodeFrame reads and decodes an entire frame.
// No text is returned unless the whole frame is valid.
func decodeFrame(r io.Reader, t Transport) (out []byte, hdr Header, err error) {
	defer func() {
		if err != nil {
			out = nil
		}
	}()
	defer errors.Recover(&err)

	var src bitSource
	var pr prefix.Reader
	src.open(t, r, &pr)
	hdr.read(&pr)

	if hdr.NumSymbols() == 0 {
		if _, ok := pr.TryReadBit(); ok {
			panicf(errors.Corrupted, "unexpected payload in empty frame")
		}
	} else {
		codes, err := hdr.codes()
		if err != nil {
			errors.Panic(err)
		}
		var pd prefix.Decoder
		pd.Init(codes)
		out = []byte{}
		for {
			sym, ok := pr.TryReadSymbol(&pd)
			if !ok {
				break
			}
			out = append(out, byte(sym))
		}
	}
	src.close()
	if out == nil {
		out = []byte{}
	}
	return out, hdr, nil
}
