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

// Package index implements an in-memory sorted index keyed by string.
package index

import (
	"fmt"
	"slices"
	"sort"
)

// Index is a generic sorted array index. Values are keyed by their String
// method.
type Index[V fmt.Stringer] struct {
	index []V

	cmp func(string, string) int
}

// New creates an index from the given slice and comparison function.
// cmp(a, b) should return a negative number when a < b, a positive number when
// a > b and zero when a == b or a and b are incomparable in the sense of a
// strict weak ordering.
func New[V fmt.Stringer](values []V, cmp func(string, string) int) *Index[V] {
	sorted := slices.Clone(values)
	// Values are usually already sorted.
	if !slices.IsSortedFunc(sorted, func(a, b V) int {
		return cmp(a.String(), b.String())
	}) {
		slices.SortStableFunc(sorted, func(a, b V) int {
			return cmp(a.String(), b.String())
		})
	}

	return &Index[V]{
		index: sorted,
		cmp:   cmp,
	}
}

// Find returns the first value whose key compares equal to the query.
func (idx *Index[V]) Find(query string) (V, bool) {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return idx.cmp(query, idx.index[i].String())
	})
	if !found {
		var zero V
		return zero, false
	}
	return idx.index[i], true
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// All returns the values in sorted order.
func (idx *Index[V]) All() []V {
	return idx.index
}
