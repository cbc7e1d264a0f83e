// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build debug
// +build debug

package prefix

import (
	"fmt"
	"strings"
)

func padBase2(v, n interface{}, m int) string {
	var s string
	if fmt.Sprint(n) != "0" {
		s = fmt.Sprintf(fmt.Sprintf("%%0%db", n), v)
	}
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func lenBase10(n int) int { return len(fmt.Sprintf("%d", n)) }
func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func (pc PrefixCodes) String() string {
	var maxSym, maxLen int
	var maxCnt uint64
	for _, c := range pc {
		if maxSym < int(c.Sym) {
			maxSym = int(c.Sym)
		}
		if maxLen < int(c.Len) {
			maxLen = int(c.Len)
		}
		if maxCnt < c.Cnt {
			maxCnt = c.Cnt
		}
	}
	maxSymStr := lenBase10(maxSym)
	maxCntStr := len(fmt.Sprintf("%d", maxCnt))

	var ss []string
	ss = append(ss, "{")
	for _, c := range pc {
		var cntStr string
		if maxCnt > 0 {
			cnt := int(32*float64(c.Cnt)/float64(maxCnt) + 0.5)
			cntStr = fmt.Sprintf("%s |%s",
				padBase10(c.Cnt, maxCntStr),
				strings.Repeat("#", cnt),
			)
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s,  %s",
			padBase10(c.Sym, maxSymStr),
			padBase2(c.Val, c.Len, maxLen),
			cntStr,
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

func (pd Decoder) String() string {
	var ss []string
	ss = append(ss, "{")
	maxIdx := lenBase10(len(pd.nodes))
	for i, n := range pd.nodes {
		var br [2]string
		for j, x := range n {
			switch {
			case x < 0:
				br[j] = "sym:" + padBase10(^x, 3)
			case x == 0:
				br[j] = "   -   "
			default:
				br[j] = "idx:" + padBase10(x, 3)
			}
		}
		ss = append(ss, fmt.Sprintf("\t%s:  {0: %s, 1: %s},", padBase10(i, maxIdx), br[0], br[1]))
	}
	ss = append(ss, fmt.Sprintf("\tnumSyms: %d,", pd.numSyms))
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

func (pe Encoder) String() string {
	var maxLen int
	for _, c := range pe.codes {
		if maxLen < int(c.Len) {
			maxLen = int(c.Len)
		}
	}

	var ss []string
	ss = append(ss, "{")
	for i, c := range pe.codes {
		if c.Len == 0 {
			continue
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s,",
			padBase10(i, 3),
			padBase2(c.Val, c.Len, maxLen),
		))
	}
	ss = append(ss, fmt.Sprintf("\tnumSyms: %d,", pe.numSyms))
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}
