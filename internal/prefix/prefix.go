// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements bit readers and writers that use prefix encoding.
//
// Codes are canonical and written most-significant bit first: the code value
// of a symbol is emitted starting with bit Len-1 down to bit 0.
package prefix

import (
	"fmt"
	"sort"

	"github.com/zapis/hufframe/internal"
	"github.com/zapis/hufframe/internal/errors"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "prefix", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}

// PrefixCode is a representation of a prefix code, which is conceptually a
// mapping from some arbitrary symbol to some bit-string.
//
// The Sym and Cnt fields are typically provided by the user,
// while the Len and Val fields are generated by this package.
type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Cnt uint64 // The number times this symbol is used
	Len uint32 // Bit-length of the prefix code
	Val uint32 // Value of the prefix code (must be in 0..(1<<Len)-1)
}
type PrefixCodes []PrefixCode

type prefixCodesBySymbol []PrefixCode

func (c prefixCodesBySymbol) Len() int           { return len(c) }
func (c prefixCodesBySymbol) Less(i, j int) bool { return c[i].Sym < c[j].Sym }
func (c prefixCodesBySymbol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }

type prefixCodesByCount []PrefixCode

func (c prefixCodesByCount) Len() int { return len(c) }
func (c prefixCodesByCount) Less(i, j int) bool {
	return c[i].Cnt < c[j].Cnt || (c[i].Cnt == c[j].Cnt && c[i].Sym < c[j].Sym)
}
func (c prefixCodesByCount) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

type prefixCodesByLength []PrefixCode

func (c prefixCodesByLength) Len() int { return len(c) }
func (c prefixCodesByLength) Less(i, j int) bool {
	return c[i].Len < c[j].Len || (c[i].Len == c[j].Len && c[i].Sym < c[j].Sym)
}
func (c prefixCodesByLength) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (pc PrefixCodes) SortBySymbol() { sort.Sort(prefixCodesBySymbol(pc)) }
func (pc PrefixCodes) SortByCount()  { sort.Sort(prefixCodesByCount(pc)) }

// SortCanonical sorts by bit-length and then by symbol, which is the order
// in which canonical code values are assigned.
func (pc PrefixCodes) SortCanonical() { sort.Sort(prefixCodesByLength(pc)) }

// Length computes the total bit-length of encoding all symbols Cnt times.
func (pc PrefixCodes) Length() (nb uint64) {
	for _, c := range pc {
		nb += uint64(c.Len) * c.Cnt
	}
	return nb
}

// MaxLen reports the longest bit-length among the codes.
func (pc PrefixCodes) MaxLen() (n uint32) {
	for _, c := range pc {
		if c.Len > n {
			n = c.Len
		}
	}
	return n
}

// LengthCounts reports the number of codes at each bit-length, where the
// count for bit-length i is stored at index i-1. The result has MaxLen entries.
func (pc PrefixCodes) LengthCounts() []int {
	cnts := make([]int, pc.MaxLen())
	for _, c := range pc {
		if c.Len > 0 {
			cnts[c.Len-1]++
		}
	}
	return cnts
}

// checkLengths reports whether the codes form a complete prefix tree,
// meaning that the Kraft sum equals exactly one.
func (pc PrefixCodes) checkLengths() bool {
	var sum uint64
	for _, c := range pc {
		if c.Len == 0 || c.Len > internal.MaxCodeBits {
			return false
		}
		sum += 1 << (internal.MaxCodeBits - c.Len)
	}
	return sum == 1<<internal.MaxCodeBits
}

// checkPrefixes reports whether no code is the prefix of another code.
func (pc PrefixCodes) checkPrefixes() bool {
	for i, c1 := range pc {
		for j, c2 := range pc {
			if i == j || c1.Len > c2.Len {
				continue
			}
			if c2.Val>>(c2.Len-c1.Len) == c1.Val {
				return false
			}
		}
	}
	return true
}

// checkCanonical reports whether the code values are the canonical values
// for the given lengths.
func (pc PrefixCodes) checkCanonical() bool {
	c := append(PrefixCodes(nil), pc...)
	c.SortCanonical()
	for i := 1; i < len(c); i++ {
		prev, curr := c[i-1], c[i]
		if uint64(curr.Val) != (uint64(prev.Val)+1)<<(curr.Len-prev.Len) {
			return false
		}
	}
	return len(c) == 0 || c[0].Val == 0
}

// GeneratePrefixes assigns canonical prefix codes to the codes given their
// lengths. The codes are left sorted in canonical order: by length, then by
// symbol. Codes are assigned as follows: the first code is all zeros;
// a code with the same length as its predecessor is the predecessor plus one;
// a code that is Δ bits longer is the predecessor plus one, shifted left by Δ.
//
// A Corrupted error is returned if any length is outside 1..32, if a symbol is
// repeated, or if the lengths are over-subscribed (their Kraft sum exceeds one).
// An incomplete code, such as the single code of length one, is permitted.
func GeneratePrefixes(codes PrefixCodes) error {
	codes.SortCanonical()

	var code uint64
	seen := make(map[uint32]bool, len(codes))
	for i := range codes {
		c := &codes[i]
		if c.Len == 0 || c.Len > internal.MaxCodeBits {
			return errorf(errors.Corrupted, "invalid code length %d", c.Len)
		}
		if seen[c.Sym] {
			return errorf(errors.Corrupted, "duplicate symbol %d", c.Sym)
		}
		seen[c.Sym] = true
		if i > 0 {
			code = (code + 1) << (c.Len - codes[i-1].Len)
		}
		if code>>c.Len != 0 {
			return errorf(errors.Corrupted, "over-subscribed prefix code")
		}
		c.Val = uint32(code)
	}
	if (internal.Debug || internal.GoFuzz) && !codes.checkPrefixes() {
		panic("overlapping prefixes detected")
	}
	return nil
}
