// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "github.com/zapis/hufframe/internal/errors"

// Encoder maps symbols to their prefix codes.
type Encoder struct {
	codes   []PrefixCode // Indexed by symbol; a zero Len means no entry
	numSyms int          // Number of symbols with a code
}

// Init initializes Encoder according to the codes provided.
// The codes must already have their values assigned.
func (pe *Encoder) Init(codes PrefixCodes) {
	var maxSym uint32
	for _, c := range codes {
		if c.Sym > maxSym {
			maxSym = c.Sym
		}
	}
	*pe = Encoder{codes: make([]PrefixCode, maxSym+1), numSyms: len(codes)}
	if len(codes) == 0 {
		pe.codes = nil
	}
	for _, c := range codes {
		pe.codes[c.Sym] = c
	}
}

// Lookup returns the code for sym.
// It panics with an Internal error if sym has no code.
func (pe *Encoder) Lookup(sym uint) PrefixCode {
	if sym >= uint(len(pe.codes)) || pe.codes[sym].Len == 0 {
		panicf(errors.Internal, "missing code entry for symbol %d", sym)
	}
	return pe.codes[sym]
}
