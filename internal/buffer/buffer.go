// Package buffer implements time-indexed row buffers for the arac engine.
//
// A Buffer holds one fixed-width row of float64 values per processed
// timestep. Rows are either owned by the buffer (allocated and grown on
// demand) or borrowed from the caller (spliced in without copying, never
// grown by the buffer).
package buffer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Ownership tells who manages the memory of a Buffer's rows.
type Ownership int

const (
	// Owned buffers allocate their rows and grow on Expand.
	Owned Ownership = iota
	// Borrowed buffers reference rows supplied by the caller. The caller
	// keeps the memory alive; Expand is a no-op.
	Borrowed
)

// String returns a human readable name for the ownership.
func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	default:
		return fmt.Sprintf("Ownership(%d)", int(o))
	}
}

// Buffer is an ordered sequence of rows of equal width, one per timestep.
//
// A new owned Buffer starts with a single zero row so that timestep 0 can
// be written before the first forward pass.
type Buffer struct {
	rows      [][]float64
	width     int
	ownership Ownership
}

// New creates an owned Buffer of the given row width holding one zero row.
func New(width int) *Buffer {
	if width < 0 {
		panic(fmt.Sprintf("buffer: negative row width %d", width))
	}
	b := &Buffer{width: width, ownership: Owned}
	b.Expand()
	return b
}

// NewBorrowed creates a Buffer that references the given caller-owned rows.
// Every row must have exactly width elements.
func NewBorrowed(width int, rows ...[]float64) *Buffer {
	b := &Buffer{width: width, ownership: Borrowed}
	for _, row := range rows {
		b.Append(row)
	}
	return b
}

// Width returns the size of a single row.
func (b *Buffer) Width() int {
	return b.width
}

// Len returns the number of rows in the buffer.
func (b *Buffer) Len() int {
	return len(b.rows)
}

// Ownership reports whether the rows are owned or borrowed.
func (b *Buffer) Ownership() Ownership {
	return b.ownership
}

// Owner reports whether the buffer owns its rows.
func (b *Buffer) Owner() bool {
	return b.ownership == Owned
}

// MakeOwner marks the buffer as owning its memory again, so that Expand
// allocates new rows.
func (b *Buffer) MakeOwner() {
	b.ownership = Owned
}

// Expand appends a new zero row. Borrowed buffers are managed by the
// caller and silently refuse to grow.
func (b *Buffer) Expand() {
	if b.ownership != Owned {
		return
	}
	b.rows = append(b.rows, make([]float64, b.width))
}

// Append adopts a caller-owned row without copying it. The buffer becomes
// borrowed.
func (b *Buffer) Append(row []float64) {
	if len(row) != b.width {
		panic(fmt.Sprintf("buffer: append row of width %d to buffer of width %d", len(row), b.width))
	}
	b.ownership = Borrowed
	b.rows = append(b.rows, row)
}

// Row returns the row at the given timestep. Index -1 addresses the last
// row. Rows that have not been produced yet cause a panic.
func (b *Buffer) Row(index int) []float64 {
	return b.rows[b.resolve(index)]
}

// Last returns the most recent row.
func (b *Buffer) Last() []float64 {
	return b.Row(-1)
}

// Add adds addend elementwise into the row at index (-1 for the last row).
func (b *Buffer) Add(addend []float64, index int) {
	row := b.Row(index)
	if len(addend) != len(row) {
		panic(fmt.Sprintf("buffer: add %d values to row of width %d", len(addend), len(row)))
	}
	floats.Add(row, addend)
}

// Clear sets every row to zero.
func (b *Buffer) Clear() {
	for _, row := range b.rows {
		clear(row)
	}
}

// ClearAt sets the row at index to zero.
func (b *Buffer) ClearAt(index int) {
	clear(b.Row(index))
}

// Free drops every row. Borrowed rows are released to their owner
// untouched.
func (b *Buffer) Free() {
	b.rows = nil
}

func (b *Buffer) resolve(index int) int {
	i := index
	if i < 0 {
		i += len(b.rows)
	}
	if i < 0 || i >= len(b.rows) {
		panic(fmt.Sprintf("buffer: index out of range: timestep %d, %d rows", index, len(b.rows)))
	}
	return i
}
