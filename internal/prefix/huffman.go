// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"container/heap"
	"sort"

	"github.com/zapis/hufframe/internal"
	"github.com/zapis/hufframe/internal/errors"
)

// Histogram counts the occurrences of every byte in buf.
// It returns one code per distinct byte, sorted by symbol, with Cnt set.
// An empty input produces an empty set of codes.
func Histogram(buf []byte) PrefixCodes {
	var cnts [256]uint64
	for _, b := range buf {
		cnts[b]++
	}
	var codes PrefixCodes
	for sym, cnt := range cnts {
		if cnt > 0 {
			codes = append(codes, PrefixCode{Sym: uint32(sym), Cnt: cnt})
		}
	}
	return codes
}

// node is an entry in the tree arena. Leaves have no children and the index
// of a leaf is the index of its code. The child of a node is -1 if missing.
type node struct {
	cnt   uint64
	order int
	child [2]int32
}

// nodeQueue is a min-heap of arena indexes keyed by (cnt, order).
type nodeQueue struct {
	idxs  []int32
	nodes []node
}

func (q *nodeQueue) Len() int { return len(q.idxs) }
func (q *nodeQueue) Less(i, j int) bool {
	ni, nj := &q.nodes[q.idxs[i]], &q.nodes[q.idxs[j]]
	return ni.cnt < nj.cnt || (ni.cnt == nj.cnt && ni.order < nj.order)
}
func (q *nodeQueue) Swap(i, j int)      { q.idxs[i], q.idxs[j] = q.idxs[j], q.idxs[i] }
func (q *nodeQueue) Push(x interface{}) { q.idxs = append(q.idxs, x.(int32)) }
func (q *nodeQueue) Pop() interface{} {
	n := len(q.idxs)
	x := q.idxs[n-1]
	q.idxs = q.idxs[:n-1]
	return x
}

// GenerateLengths assigns a bit-length to every code using the Huffman
// algorithm on the Cnt fields. The codes are sorted by symbol first.
//
// Ties between equal counts are broken by creation order: leaves are ordered
// by ascending symbol and each merged node is ordered after every node that
// exists when it is created. Of the two nodes merged, the one removed from the
// queue first takes the 0 branch.
//
// A single code is given a bit-length of one. If the Huffman lengths exceed
// maxBits, they are rebalanced so that no code is longer than maxBits.
func GenerateLengths(codes PrefixCodes, maxBits uint) error {
	if len(codes) == 0 {
		return nil
	}
	if maxBits == 0 || maxBits > internal.MaxCodeBits || uint64(len(codes)) > 1<<maxBits {
		return errorf(errors.Internal, "cannot fit %d codes in %d bits", len(codes), maxBits)
	}
	codes.SortBySymbol()

	// Build the tree in an arena where leaves occupy the first len(codes)
	// entries in the same order as codes.
	nodes := make([]node, len(codes), 2*len(codes))
	q := &nodeQueue{idxs: make([]int32, len(codes)), nodes: nodes}
	for i, c := range codes {
		nodes[i] = node{cnt: c.Cnt, order: i, child: [2]int32{-1, -1}}
		q.idxs[i] = int32(i)
	}
	heap.Init(q)
	for q.Len() > 1 {
		c0 := heap.Pop(q).(int32)
		c1 := heap.Pop(q).(int32)
		nodes = append(nodes, node{
			cnt:   nodes[c0].cnt + nodes[c1].cnt,
			order: len(nodes),
			child: [2]int32{c0, c1},
		})
		q.nodes = nodes
		heap.Push(q, int32(len(nodes)-1))
	}
	root := int32(len(nodes) - 1)
	if len(codes) == 1 {
		nodes = append(nodes, node{cnt: nodes[0].cnt, order: 1, child: [2]int32{0, -1}})
		root = int32(len(nodes) - 1)
	}

	// Walk the tree iteratively, recording the depth of every leaf.
	type frame struct {
		idx   int32
		depth uint32
	}
	var maxLen uint32
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if int(f.idx) < len(codes) {
			codes[f.idx].Len = f.depth
			if f.depth > maxLen {
				maxLen = f.depth
			}
			continue
		}
		for _, c := range nodes[f.idx].child {
			if c >= 0 {
				stack = append(stack, frame{c, f.depth + 1})
			}
		}
	}

	if maxLen > uint32(maxBits) {
		limitLengths(codes, maxLen, maxBits)
	}
	if (internal.Debug || internal.GoFuzz) && len(codes) > 1 && !codes.checkLengths() {
		panic("incomplete prefix tree detected")
	}
	return nil
}

// limitLengths rebalances the lengths of codes so that none exceeds maxBits,
// while keeping the Kraft sum equal to one. More frequent symbols never end
// up with longer codes than less frequent symbols.
func limitLengths(codes PrefixCodes, maxLen uint32, maxBits uint) {
	lenCnts := make([]uint64, maxLen+1)
	for _, c := range codes {
		lenCnts[c.Len]++
	}

	// Move all oversized codes to maxBits.
	for i := maxBits + 1; i < uint(len(lenCnts)); i++ {
		lenCnts[maxBits] += lenCnts[i]
		lenCnts[i] = 0
	}

	// The Kraft sum scaled by 1<<maxBits must equal 1<<maxBits.
	// Every step below removes exactly one unit from the total.
	var total uint64
	for i := uint(1); i <= maxBits; i++ {
		total += lenCnts[i] << (maxBits - i)
	}
	for total != 1<<maxBits {
		lenCnts[maxBits]--
		for i := maxBits - 1; i > 0; i-- {
			if lenCnts[i] != 0 {
				lenCnts[i]--
				lenCnts[i+1] += 2
				break
			}
		}
		total--
	}

	// Reassign lengths with the most frequent symbols first.
	idxs := make([]int, len(codes))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		ci, cj := codes[idxs[i]], codes[idxs[j]]
		if ci.Len != cj.Len {
			return ci.Len < cj.Len
		}
		if ci.Cnt != cj.Cnt {
			return ci.Cnt > cj.Cnt
		}
		return ci.Sym < cj.Sym
	})
	var n int
	for l := uint(1); l <= maxBits; l++ {
		for k := uint64(0); k < lenCnts[l]; k++ {
			codes[idxs[n]].Len = uint32(l)
			n++
		}
	}
}
