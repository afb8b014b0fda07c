/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package io

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	stdio "io"

	"github.com/observerly/iris/pkg/fits"
)

/*****************************************************************************************************************/

// ErrInvalidFITS wraps every failure reading or shaping a FITS HDU into the CORE's flat
// []float64 + (nCols, nRows) boundary (§6: "the core consumes contiguous row-major double
// arrays").
var ErrInvalidFITS = errors.New("io: invalid fits image")

/*****************************************************************************************************************/

// fitsBitDepth, fitsZeroOffset, fitsScale, and fitsMaxValue mirror the teacher's own
// fits.NewFITSImage(2, 0, 0, 65535) call: a 16-bit unsigned exposure, no BZERO/BSCALE rescaling.
const (
	fitsBitDepth   = 2
	fitsZeroOffset = 0
	fitsScale      = 0
	fitsMaxValue   = 65535
)

/*****************************************************************************************************************/

// readFITS reads a single-HDU FITS image from r and flattens it to row-major float64, the shape
// every LoadDataImage/LoadPSF caller hands to pkg/image and pkg/psf respectively.
func readFITS(r stdio.Reader) (data []float64, cols, rows int, err error) {
	fit := fits.NewFITSImage(fitsBitDepth, fitsZeroOffset, fitsScale, fitsMaxValue)

	if err := fit.Read(r); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: read: %v", ErrInvalidFITS, err)
	}

	cols = int(fit.Header.Naxis1)
	rows = int(fit.Header.Naxis2)

	if cols <= 0 || rows <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: non-positive dimensions (%d, %d)", ErrInvalidFITS, cols, rows)
	}

	if len(fit.Data) != cols*rows {
		return nil, 0, 0, fmt.Errorf("%w: header declares %d pixels, data carries %d", ErrInvalidFITS, cols*rows, len(fit.Data))
	}

	data = make([]float64, len(fit.Data))
	for i, v := range fit.Data {
		data[i] = float64(v)
	}

	return data, cols, rows, nil
}

/*****************************************************************************************************************/

// LoadDataImage reads an observed science frame, returning the raw row-major pixel data and its
// (nCols, nRows) — the pair model.Builder's caller uses to size and compare against the
// synthesized model image. imfit itself never fits against this data (that's the external
// optimizer's job, per §9's "no optimizer" decision); this is purely an ingestion convenience for
// the CLI and worked examples.
func LoadDataImage(r stdio.Reader) (data []float64, cols, rows int, err error) {
	return readFITS(r)
}

/*****************************************************************************************************************/

// LoadPSF reads a point-spread function FITS image, returning the raw row-major kernel weights
// and its (pCols, pRows). The caller passes these to psf.NewFromSlice, which validates finiteness
// and normalizes the area to 1 — LoadPSF performs no normalization of its own.
func LoadPSF(r stdio.Reader) (data []float64, cols, rows int, err error) {
	return readFITS(r)
}

/*****************************************************************************************************************/
