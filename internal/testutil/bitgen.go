// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/zapis/hufframe/internal"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reHex = regexp.MustCompile("^H[0-9]+:[0-9a-fA-F]{1,16}$")
	reSym = regexp.MustCompile("^S:.+$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// BitGen is a bit-stream decoded from the BitGen format.
// Bits are packed into Buf most-significant bit first and the final byte is
// padded with zero bits. N is the exact number of bits in the stream.
type BitGen struct {
	Buf []byte
	N   int
}

// Binary returns the stream in the binary frame transport:
// the bit count as a uvarint followed by the packed bits.
func (bg BitGen) Binary() []byte {
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(bg.N))
	return append(hdr[:n:n], bg.Buf...)
}

// Text returns the stream in the text frame transport:
// one ASCII '0' or '1' per bit and a terminating '.'.
func (bg BitGen) Text() []byte {
	b := make([]byte, bg.N+1)
	for i := 0; i < bg.N; i++ {
		b[i] = '0' + (bg.Buf[i/8]>>uint(7-i%8))&1
	}
	b[bg.N] = '.'
	return b
}

// DecodeBitGen decodes a BitGen formatted string.
//
// The BitGen format allows bit-streams to be generated from a series of tokens
// describing bits in the resulting string. The format is designed for testing
// purposes by aiding a human in the manual scripting of frames from
// individual bit-strings. It is designed to be relatively succinct, but
// allow the presence of comments to encode authorial intent.
//
// The format consists of a series of tokens separated by white space of any
// kind. The '#' character is used for commenting. Thus, any bytes on a given
// line that appear after the '#' character is ignored.
//
// Bits are always packed starting with the most-significant bit of a byte.
//
// A token of the form "<" (little-endian) or ">" (big-endian) determines the
// current bit-parsing mode, which alters the way subsequent tokens are
// processed. The format defaults to using a big-endian bit-parsing mode.
//
// A token of the pattern "[01]{1,64}" forms a bit-string (e.g. 11010).
// If the current bit-parsing mode is big-endian, then the left-most bits of
// the bit-string are written first to the resulting bit-stream. Likewise, if
// the bit-parsing mode is little-endian, then the right-most bits of the
// bit-string are written first to the resulting bit-stream.
//
// A token of the pattern "D[0-9]+:[0-9]+" or "H[0-9]+:[0-9a-fA-F]{1,16}"
// represents either a decimal value or a hexadecimal value, respectively.
// This numeric value is converted to the unsigned binary representation and
// used as the bit-string to write. The first number indicates the bit-length
// of the bit-string and must be between 0 and 64 bits. The second number
// represents the numeric value. The bit-length must be long enough to contain
// the resulting binary value. If the current bit-parsing mode is big-endian,
// then the most-significant bits of this binary number are written first to
// the resulting bit-stream. Likewise, the opposite holds for little-endian.
//
// A token of the pattern "S:.+" writes each character that follows the colon
// as a 7-bit symbol, most-significant bit first. It is a shorthand for the
// symbol list of a frame header.
//
// A token that is of the pattern "X:[0-9a-fA-F]+" represents literal bytes in
// hexadecimal format that should be written to the resulting bit-stream.
// This token is affected by neither the bit-packing nor the bit-parsing modes.
// However, it may only be used when the bit-stream is already byte-aligned.
//
// A token decorator of "<" (little-endian) or ">" (big-endian) may begin
// any binary token or decimal token. This will affect the bit-parsing mode
// for that token only. It will not set the overall global mode. That still
// needs to be done by standalone "<" and ">" tokens. This decorator has no
// effect if applied to the literal bytes token.
//
// A token decorator of the pattern "[*][0-9]+" may trail any token. This is
// a quantifier decorator which indicates that the current token is to be
// repeated some number of times. It is used to quickly replicate data and
// allows the format to quickly generate large quantities of data.
//
// Example BitGen file:
//	D8:3 D8:2      # N: 3 symbols, M: 2 lengths
//	D2:1 D2:2      # Counts: one code of length 1, two of length 2
//	S:ABC          # Symbols in canonical order
//	0*6 10*4 11    # Payload: AAAAAABBBBC
//
// Generated output stream (in hexadecimal) of 57 bits:
//	"03026830a1815580"
func DecodeBitGen(str string) (BitGen, error) {
	// Tokenize the input string by removing comments and superfluous spaces.
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		for _, t := range strings.Fields(s) {
			toks = append(toks, t)
		}
	}

	var bw bitBuffer
	parseMode := true // Bit-parsing mode: false is LE, true is BE
	for _, t := range toks {
		// Check for local and global bit-parsing mode modifiers.
		pm := parseMode
		if t[0] == '<' || t[0] == '>' {
			pm = bool(t[0] == '>')
			t = t[1:]
			if len(t) == 0 {
				parseMode = pm // This is a global modifier, so remember it
				continue
			}
		}

		// Check for quantifier decorators.
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			tt, tn := t[:i], t[i+1:]
			n, err := strconv.Atoi(tn)
			if err != nil {
				return BitGen{}, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = tt, n
		}

		switch {
		case reBin.MatchString(t):
			// Handle binary tokens.
			var v uint64
			for _, b := range t {
				v <<= 1
				v |= uint64(b - '0')
			}

			if !pm {
				v = internal.ReverseUint64N(v, uint(len(t)))
			}
			for i := 0; i < rep; i++ {
				bw.WriteBits64(v, uint(len(t)))
			}
		case reDec.MatchString(t) || reHex.MatchString(t):
			// Handle decimal and hexadecimal tokens.
			i := strings.IndexByte(t, ':')
			tb, tn, tv := t[0], t[1:i], t[i+1:]

			base := 10
			if tb == 'H' {
				base = 16
			}

			n, err1 := strconv.Atoi(tn)
			v, err2 := strconv.ParseUint(tv, base, 64)
			if err1 != nil || err2 != nil || n > 64 {
				return BitGen{}, errors.New("testutil: invalid numeric token: " + t)
			}
			if n < 64 && v&((1<<uint(n))-1) != v {
				return BitGen{}, errors.New("testutil: integer overflow on token: " + t)
			}

			if !pm && n > 0 {
				v = internal.ReverseUint64N(v, uint(n))
			}
			for i := 0; i < rep; i++ {
				bw.WriteBits64(v, uint(n))
			}
		case reSym.MatchString(t):
			// Handle 7-bit symbol tokens.
			for i := 0; i < rep; i++ {
				for _, c := range []byte(t[2:]) {
					if !internal.IsSymbol(c) {
						return BitGen{}, errors.New("testutil: invalid symbol token: " + t)
					}
					bw.WriteBits64(uint64(c), internal.SymbolBits)
				}
			}
		case reRaw.MatchString(t):
			// Handle hexadecimal tokens.
			tx := t[2:]
			b, err := hex.DecodeString(tx)
			if err != nil {
				return BitGen{}, errors.New("testutil: invalid raw bytes token: " + t)
			}
			b = bytes.Repeat(b, rep)
			if _, err := bw.Write(b); err != nil {
				return BitGen{}, err
			}
		default:
			// Handle invalid tokens.
			return BitGen{}, errors.New("testutil: invalid token: " + t)
		}
	}
	return BitGen{Buf: bw.b, N: bw.n}, nil
}

// bitBuffer is a simplified and minified MSB-first bit writer.
// This is implemented here to avoid a diamond dependency.
type bitBuffer struct {
	b []byte
	n int // Number of bits written
}

func (b *bitBuffer) Write(buf []byte) (int, error) {
	if b.n%8 != 0 {
		return 0, errors.New("testutil: unaligned write")
	}
	b.b = append(b.b, buf...)
	b.n += 8 * len(buf)
	return len(buf), nil
}

func (b *bitBuffer) WriteBits64(v uint64, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		if b.n%8 == 0 {
			b.b = append(b.b, 0x00)
		}
		if v&(1<<uint(i)) != 0 {
			b.b[len(b.b)-1] |= 0x80 >> uint(b.n%8)
		}
		b.n++
	}
}
