// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib

package bench

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/huff0"
)

func init() {
	RegisterEncoder(FormatFlate, "kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatFlate, "kp",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})
	RegisterEncoder(FormatHuffman, "huff0",
		func(w io.Writer, _ int) io.WriteCloser {
			return &huff0Writer{wr: w}
		})
	RegisterDecoder(FormatHuffman, "huff0",
		func(r io.Reader) io.ReadCloser {
			return &huff0Reader{rd: bufio.NewReader(r)}
		})
}

// The huff0 package only encodes single blocks. Each block is written as:
//
//	[mode:1][rawLen:uvarint][dataLen:uvarint][data:dataLen]
const (
	huff0Coded = iota
	huff0Raw
	huff0RLE
)

var errHuff0Corrupt = errors.New("huff0: corrupted block")

type huff0Writer struct {
	wr  io.Writer
	buf []byte
	s   huff0.Scratch
	err error
}

func (zw *huff0Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	zw.buf = append(zw.buf, buf...)
	for len(zw.buf) >= huff0.BlockSizeMax && zw.err == nil {
		zw.err = zw.writeBlock(zw.buf[:huff0.BlockSizeMax])
		zw.buf = zw.buf[:copy(zw.buf, zw.buf[huff0.BlockSizeMax:])]
	}
	return len(buf), zw.err
}

func (zw *huff0Writer) Close() error {
	if zw.err == nil && len(zw.buf) > 0 {
		zw.err = zw.writeBlock(zw.buf)
		zw.buf = zw.buf[:0]
	}
	return zw.err
}

func (zw *huff0Writer) writeBlock(raw []byte) error {
	zw.s.Reuse = huff0.ReusePolicyNone
	mode, data := huff0Coded, raw
	out, _, err := huff0.Compress1X(raw, &zw.s)
	switch err {
	case nil:
		data = out
	case huff0.ErrIncompressible:
		mode = huff0Raw
	case huff0.ErrUseRLE:
		mode, data = huff0RLE, raw[:1]
	default:
		return err
	}

	var hdr [1 + 2*binary.MaxVarintLen64]byte
	hdr[0] = byte(mode)
	n := 1 + binary.PutUvarint(hdr[1:], uint64(len(raw)))
	n += binary.PutUvarint(hdr[n:], uint64(len(data)))
	if _, err := zw.wr.Write(hdr[:n]); err != nil {
		return err
	}
	_, err = zw.wr.Write(data)
	return err
}

type huff0Reader struct {
	rd  *bufio.Reader
	buf []byte
	s   huff0.Scratch
	err error
}

func (zr *huff0Reader) Read(buf []byte) (int, error) {
	for len(zr.buf) == 0 && zr.err == nil {
		zr.buf, zr.err = zr.readBlock()
	}
	if len(zr.buf) == 0 {
		return 0, zr.err
	}
	n := copy(buf, zr.buf)
	zr.buf = zr.buf[n:]
	return n, nil
}

func (zr *huff0Reader) Close() error {
	if zr.err == io.EOF {
		return nil
	}
	return zr.err
}

func (zr *huff0Reader) readBlock() ([]byte, error) {
	mode, err := zr.rd.ReadByte()
	if err != nil {
		return nil, err // io.EOF on a block boundary is a clean end
	}
	rawLen, err := binary.ReadUvarint(zr.rd)
	if err != nil || rawLen > huff0.BlockSizeMax {
		return nil, errHuff0Corrupt
	}
	dataLen, err := binary.ReadUvarint(zr.rd)
	if err != nil || dataLen > huff0.BlockSizeMax {
		return nil, errHuff0Corrupt
	}
	data := make([]byte, dataLen)
	if _, err := io.ReadFull(zr.rd, data); err != nil {
		return nil, errHuff0Corrupt
	}

	switch mode {
	case huff0Coded:
		s, remain, err := huff0.ReadTable(data, &zr.s)
		if err != nil {
			return nil, err
		}
		out, err := s.Decoder().Decompress1X(make([]byte, 0, rawLen), remain)
		if err != nil {
			return nil, err
		}
		if uint64(len(out)) != rawLen {
			return nil, errHuff0Corrupt
		}
		return out, nil
	case huff0Raw:
		if dataLen != rawLen {
			return nil, errHuff0Corrupt
		}
		return data, nil
	case huff0RLE:
		if dataLen != 1 {
			return nil, errHuff0Corrupt
		}
		return bytes.Repeat(data, int(rawLen)), nil
	default:
		return nil, fmt.Errorf("huff0: unknown block mode %d", mode)
	}
}
