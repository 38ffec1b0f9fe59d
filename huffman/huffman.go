// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package huffman

import (
	"container/heap"
	"slices"
)

// Code is a code word written as a string of '0' and '1' characters.
type Code string

// Table maps characters to their code words. A Table built by Build is a
// prefix code: no code word is a prefix of another.
type Table map[byte]Code

// Chars returns the characters in the table in ascending order.
func (t Table) Chars() []byte {
	chars := make([]byte, 0, len(t))
	for c := range t {
		chars = append(chars, c)
	}
	slices.Sort(chars)
	return chars
}

// Cost returns the total number of bits needed to encode the characters
// counted in freq. Characters that have no code are not counted.
func (t Table) Cost(freq Frequencies) uint64 {
	var total uint64
	for c, n := range freq {
		total += n * uint64(len(t[c]))
	}
	return total
}

// Frequencies counts occurrences of characters.
type Frequencies map[byte]uint64

// AddString counts every character of s.
func (f Frequencies) AddString(s string) {
	for i := range len(s) {
		f[s[i]]++
	}
}

// Total returns the total number of characters counted.
func (f Frequencies) Total() uint64 {
	var total uint64
	for _, n := range f {
		total += n
	}
	return total
}

// node is a node of the Huffman tree. Leaf nodes have no children.
type node struct {
	weight uint64

	// seq is the order in which the node entered the queue. It breaks ties
	// between nodes of equal weight so that the tree shape is deterministic.
	seq int

	char        byte
	left, right *node
}

func (n *node) leaf() bool {
	return n.left == nil && n.right == nil
}

// queue is a min-heap of nodes ordered by weight and then by seq.
type queue []*node

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*node)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return x
}

// Build builds a Huffman code table from the given character frequencies.
// Characters with a zero count are ignored. An empty frequency table results
// in an empty code table. A table with a single character assigns it the
// one bit code "0".
//
// Leaves enter the queue in ascending character order and merged nodes are
// queued after them, and nodes of equal weight are removed in queue order.
// The first node removed in a merge becomes the left child (bit 0) and the
// second the right child (bit 1). The same frequencies always produce the
// same table.
func Build(freq Frequencies) Table {
	chars := make([]byte, 0, len(freq))
	for c, n := range freq {
		if n > 0 {
			chars = append(chars, c)
		}
	}
	slices.Sort(chars)

	t := Table{}
	switch len(chars) {
	case 0:
		return t
	case 1:
		t[chars[0]] = "0"
		return t
	}

	q := make(queue, 0, len(chars))
	for i, c := range chars {
		q = append(q, &node{
			weight: freq[c],
			seq:    i,
			char:   c,
		})
	}
	heap.Init(&q)

	seq := len(chars)
	for q.Len() > 1 {
		lo := heap.Pop(&q).(*node)
		hi := heap.Pop(&q).(*node)
		heap.Push(&q, &node{
			weight: lo.weight + hi.weight,
			seq:    seq,
			left:   lo,
			right:  hi,
		})
		seq++
	}

	assign(t, heap.Pop(&q).(*node), "")
	return t
}

// assign walks the tree and records the code of every leaf below n.
func assign(t Table, n *node, prefix Code) {
	if n.leaf() {
		t[n.char] = prefix
		return
	}
	assign(t, n.left, prefix+"0")
	assign(t, n.right, prefix+"1")
}
