/*
Package sparse implements a simple type for sparse integer matrices.
It is used for prediction tables of top-down parsers, indexed by
(non-terminal, lookahead) and holding rule numbers.

Every entry in the table is a list of int32 values. The first value of an
entry is its primary value; further values are retained to make conflicts
visible.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted by (row, column).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Add(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     vals := M.Values(2, 3)         // returns [4711 123]
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	values   []int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// search returns the index of the first triplet not stored left of (i,j).
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		t := m.values[k]
		return t.row > i || t.row == i && t.col >= j
	})
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k := m.search(i, j); k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].values[0]
	}
	return m.nullval
}

// Values returns all values at position (i,j), in order of insertion, or nil.
func (m *IntMatrix) Values(i, j int) []int32 {
	if k := m.search(i, j); k < len(m.values) && m.values[k].storedAt(i, j) {
		return append([]int32(nil), m.values[k].values...)
	}
	return nil
}

// Set a value in the matrix at position (i,j), replacing all values present.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	m.checkBounds(i, j)
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		m.values[k].values = []int32{value}
		return m
	}
	m.insert(k, triplet{row: i, col: j, values: []int32{value}})
	return m
}

// Add a value to the matrix at position (i,j). If the value is already present
// at (i,j), Add does nothing.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	m.checkBounds(i, j)
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		for _, v := range m.values[k].values {
			if v == value {
				return m
			}
		}
		m.values[k].values = append(m.values[k].values, value)
		return m
	}
	m.insert(k, triplet{row: i, col: j, values: []int32{value}})
	return m
}

// Each calls f for every position set, ordered by row and column.
func (m *IntMatrix) Each(f func(i, j int, values []int32)) {
	for _, t := range m.values {
		f(t.row, t.col, append([]int32(nil), t.values...))
	}
}

func (m *IntMatrix) insert(at int, tnew triplet) {
	// the following 3 lines have to work for at being the right edge of values or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
}

func (m *IntMatrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of range %d x %d", i, j, m.rowcnt, m.colcnt))
	}
}

func (t *triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}
