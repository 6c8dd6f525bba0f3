package grid

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch indicates that two companion arrays (field/mask,
// lon/lat) disagree in shape.
var ErrShapeMismatch = errors.New("grid: shape mismatch")

// ErrValueSizeMismatch indicates that a compressed value slice does not
// match the number of unmasked cells it is being expanded into.
var ErrValueSizeMismatch = errors.New("grid: value size mismatch")

// Grid is a 2D float64 field stored in row-major order.
type Grid struct {
	rows, cols int
	data       []float64
}

// New creates a zero-valued grid with the given shape.
func New(rows, cols int) *Grid {
	return &Grid{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// FromSlice creates a grid backed by a copy of data, which must hold
// rows*cols values in row-major order.
func FromSlice(rows, cols int, data []float64) (*Grid, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d grid", ErrShapeMismatch, len(data), rows, cols)
	}
	g := New(rows, cols)
	copy(g.data, data)
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.data) }

// At returns the value at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.data[row*g.cols+col]
}

// Set stores a value at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.data[row*g.cols+col] = v
}

// Flat returns the underlying row-major data. The slice is shared with the
// grid; callers that need an independent copy should copy it.
func (g *Grid) Flat() []float64 {
	return g.data
}

// Unravel converts a row-major flat index into (row, col) coordinates.
func (g *Grid) Unravel(flat int) (row, col int) {
	return flat / g.cols, flat % g.cols
}

// SameShape reports whether two grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.rows == o.rows && g.cols == o.cols
}

// Mask is a 2D boolean field stored in row-major order. True marks a cell
// to exclude (e.g. land points in an ocean model grid).
type Mask struct {
	rows, cols int
	data       []bool
}

// NewMask creates an all-false mask with the given shape.
func NewMask(rows, cols int) *Mask {
	return &Mask{
		rows: rows,
		cols: cols,
		data: make([]bool, rows*cols),
	}
}

// MaskFromSlice creates a mask backed by a copy of data in row-major order.
func MaskFromSlice(rows, cols int, data []bool) (*Mask, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d mask", ErrShapeMismatch, len(data), rows, cols)
	}
	m := NewMask(rows, cols)
	copy(m.data, data)
	return m, nil
}

// Rows returns the number of rows.
func (m *Mask) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Mask) Cols() int { return m.cols }

// At returns the mask value at (row, col).
func (m *Mask) At(row, col int) bool {
	return m.data[row*m.cols+col]
}

// Set stores a mask value at (row, col).
func (m *Mask) Set(row, col int, v bool) {
	m.data[row*m.cols+col] = v
}

// Flat returns the underlying row-major data, shared with the mask.
func (m *Mask) Flat() []bool {
	return m.data
}

// FalseCount returns the number of unmasked cells.
func (m *Mask) FalseCount() int {
	n := 0
	for _, v := range m.data {
		if !v {
			n++
		}
	}
	return n
}
