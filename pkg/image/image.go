/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package image

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

/*****************************************************************************************************************/

// Buffer is a row-major 2D array of doubles, the CORE's sole pixel container. Index (i, j)
// (column, row) maps to the linear offset j*Columns + i. A Buffer carries no coordinate
// convention of its own: the 1-indexed sky-coordinate convention (pixel center (i, j) maps to
// sky coordinate (i+1, j+1)) is reconciled exclusively at the model.Builder boundary.
type Buffer struct {
	columns int
	rows    int
	Value   []float64

	// Valid is false when the buffer was left in a partial or non-finite state, e.g. by a
	// cancelled ComputeModelImage or a completed model image containing a NaN or Inf pixel.
	Valid bool
}

/*****************************************************************************************************************/

// New allocates a zeroed Buffer of the given size. Columns and Rows must both be positive.
func New(columns, rows int) (*Buffer, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("image: columns and rows must be positive, got (%d, %d)", columns, rows)
	}

	return &Buffer{
		columns: columns,
		rows:    rows,
		Value:   make([]float64, columns*rows),
		Valid:   true,
	}, nil
}

/*****************************************************************************************************************/

func (b *Buffer) Columns() int {
	return b.columns
}

/*****************************************************************************************************************/

func (b *Buffer) Rows() int {
	return b.rows
}

/*****************************************************************************************************************/

// At returns the pixel value at column i, row j (both zero-indexed).
func (b *Buffer) At(i, j int) (float64, error) {
	if i < 0 || i >= b.columns || j < 0 || j >= b.rows {
		return 0, fmt.Errorf("image: index out of bounds: i=%d, j=%d", i, j)
	}

	return b.Value[j*b.columns+i], nil
}

/*****************************************************************************************************************/

// Set writes the pixel value at column i, row j (both zero-indexed).
func (b *Buffer) Set(i, j int, value float64) error {
	if i < 0 || i >= b.columns || j < 0 || j >= b.rows {
		return fmt.Errorf("image: index out of bounds: i=%d, j=%d", i, j)
	}

	b.Value[j*b.columns+i] = value

	return nil
}

/*****************************************************************************************************************/

// Zero resets every pixel to zero and marks the buffer valid; the first step of ComputeModelImage.
func (b *Buffer) Zero() {
	for i := range b.Value {
		b.Value[i] = 0
	}

	b.Valid = true
}

/*****************************************************************************************************************/

// CopyFrom overwrites b's contents with src's; both must share the same dimensions. Used when
// no global PSF is configured, so ComputeModelImage can still present the scratch buffer through
// the same output-buffer path that Convolve otherwise fills.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if b.columns != src.columns || b.rows != src.rows {
		return errors.New("image: CopyFrom requires matching dimensions")
	}

	copy(b.Value, src.Value)
	b.Valid = src.Valid

	return nil
}

/*****************************************************************************************************************/

// Sum returns the total flux in the buffer.
func (b *Buffer) Sum() float64 {
	return floats.Sum(b.Value)
}

/*****************************************************************************************************************/

// CheckFinite scans the buffer for NaN/Inf pixels. It returns ModelNotFinite-flavoured detail
// (count and the first offending index) so the caller can decide how to surface it; it never
// mutates Valid itself; model.Builder.ComputeModelImage does that once it has the full picture.
func (b *Buffer) CheckFinite() (finite bool, count int, first int) {
	first = -1

	for i, v := range b.Value {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			count++
			if first == -1 {
				first = i
			}
		}
	}

	return count == 0, count, first
}

/*****************************************************************************************************************/
