/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package psf

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	"math"
)

/*****************************************************************************************************************/

// Kernel is a 2D array of real weights, area-normalized to 1, with dimensions (Columns, Rows).
// Both dimensions must be odd when the kernel is to be used as a centered convolution kernel (the
// only mode the CORE supports: an off-center PSF would shift the synthesized model).
type Kernel struct {
	Columns int
	Rows    int
	Value   []float64 // row-major, linear index j*Columns + i
}

/*****************************************************************************************************************/

// NewFromSlice builds a Kernel from a row-major weight slice, validating the invariants the CORE
// relies on: finite weights, positive area-normalized sum, odd dimensions, and positive size.
// Every violation returns an error wrapping ErrBadPSF.
func NewFromSlice(value []float64, columns, rows int) (*Kernel, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: psf dimensions must be positive, got (%d, %d)", ErrBadPSF, columns, rows)
	}

	if len(value) != columns*rows {
		return nil, fmt.Errorf("%w: psf data length %d does not match dimensions %dx%d", ErrBadPSF, len(value), columns, rows)
	}

	if columns%2 == 0 || rows%2 == 0 {
		return nil, fmt.Errorf("%w: psf dimensions must both be odd for a centered kernel, got (%d, %d)", ErrBadPSF, columns, rows)
	}

	sum := 0.0
	for _, v := range value {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: psf contains a non-finite weight", ErrBadPSF)
		}
		sum += v
	}

	if sum <= 0 {
		return nil, fmt.Errorf("%w: psf weights must sum to a positive value, got %f", ErrBadPSF, sum)
	}

	v := make([]float64, len(value))
	copy(v, value)

	// Normalize to unit area so total flux is preserved across convolution (§4.C):
	for i := range v {
		v[i] /= sum
	}

	return &Kernel{Columns: columns, Rows: rows, Value: v}, nil
}

/*****************************************************************************************************************/

// ErrBadPSF is the sentinel every NewFromSlice and Resample failure wraps (§7's BadPSF kind). The
// model package declares its own model.ErrBadPSF and does not wrap this one.
var ErrBadPSF = errors.New("bad psf")

/*****************************************************************************************************************/

// At returns the weight at column i, row j (both zero-indexed).
func (k *Kernel) At(i, j int) float64 {
	return k.Value[j*k.Columns+i]
}

/*****************************************************************************************************************/

// FitsWithin reports whether the kernel is no larger than an image of the given size in either
// axis; the model.Builder rejects a PSF larger than the image as BadPSF.
func (k *Kernel) FitsWithin(columns, rows int) bool {
	return k.Columns <= columns && k.Rows <= rows
}

/*****************************************************************************************************************/

// Resample produces a new Kernel at factor-times the linear resolution of k, by nearest-neighbour
// replication followed by re-normalization. This is a pragmatic stand-in for a true oversampled
// PSF when the caller has only a base-resolution PSF. pkg/oversample does not call it: a Region
// convolves with whatever PSF its caller supplies.
func (k *Kernel) Resample(factor int) (*Kernel, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: resample factor must be >= 1, got %d", ErrBadPSF, factor)
	}

	columns := k.Columns * factor
	rows := k.Rows * factor

	if columns%2 == 0 {
		columns++
	}
	if rows%2 == 0 {
		rows++
	}

	value := make([]float64, columns*rows)

	for j := 0; j < rows; j++ {
		sj := j * k.Rows / rows
		for i := 0; i < columns; i++ {
			si := i * k.Columns / columns
			value[j*columns+i] = k.At(si, sj)
		}
	}

	return NewFromSlice(value, columns, rows)
}

/*****************************************************************************************************************/
