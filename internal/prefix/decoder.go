// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "github.com/zapis/hufframe/internal/errors"

// Decoder is a binary trie over prefix codes.
//
// Node 0 is the root. Each node holds the entries for its 0 and 1 branches:
// a positive entry is the index of an inner node, a negative entry x is a
// leaf for symbol ^x, and zero marks a branch with no code.
type Decoder struct {
	nodes   [][2]int32
	numSyms int
}

// Init initializes Decoder according to the codes provided.
// The codes must be prefix-free and have their values assigned.
func (pd *Decoder) Init(codes PrefixCodes) {
	*pd = Decoder{nodes: pd.nodes[:0], numSyms: len(codes)}
	pd.nodes = append(pd.nodes, [2]int32{})
	for _, c := range codes {
		var n int32
		for i := int(c.Len) - 1; i >= 0; i-- {
			bit := (c.Val >> uint(i)) & 1
			next := pd.nodes[n][bit]
			if next < 0 || (i == 0 && next != 0) {
				panicf(errors.Internal, "overlapping prefix code for symbol %d", c.Sym)
			}
			if i == 0 {
				pd.nodes[n][bit] = ^int32(c.Sym)
				break
			}
			if next == 0 {
				next = int32(len(pd.nodes))
				pd.nodes[n][bit] = next
				pd.nodes = append(pd.nodes, [2]int32{})
			}
			n = next
		}
	}
}

// NumSymbols reports the number of symbols in the trie.
func (pd *Decoder) NumSymbols() int { return pd.numSyms }

// step advances from node n along bit. It returns the next inner node,
// or the decoded symbol and true if a leaf was reached.
func (pd *Decoder) step(n int32, bit uint) (int32, bool) {
	next := pd.nodes[n][bit]
	switch {
	case next < 0:
		return ^next, true
	case next == 0:
		panicf(errors.Corrupted, "invalid code")
	}
	return next, false
}
