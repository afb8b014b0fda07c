/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package convolve

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/observerly/imfit/pkg/image"
	"github.com/observerly/imfit/pkg/psf"
)

/*****************************************************************************************************************/

// ErrConvolutionFailed is the sentinel every failure from this package wraps (§4.C, §7).
var ErrConvolutionFailed = errors.New("convolution failed")

/*****************************************************************************************************************/

// Convolver performs zero-padded FFT-based convolution of a real image against a fixed, centered
// PSF kernel (§4.C). It caches the padded geometry, the forward/inverse FFT plans for both axes,
// and the PSF's transform; all three are invalidated by a call to Configure with new inputs.
type Convolver struct {
	cols, rows         int // unpadded (image) geometry
	padCols, padRows   int // padded geometry, each rounded up to 2/3/5/7-smooth sizes
	halfCols           int // padCols/2 + 1, the real-FFT half-spectrum width

	rowFFT *fourier.FFT
	colFFT *fourier.CmplxFFT

	psfTransform [][]complex128 // [padRows][halfCols]

	rowScratchReal  []float64
	rowScratchCmplx []complex128
	colScratch      []complex128
}

/*****************************************************************************************************************/

// New builds a Convolver for an image of size (cols, rows) against kernel k, precomputing the
// padded geometry and the PSF's cached Fourier transform. It fails with ErrConvolutionFailed if
// the kernel does not fit within the image or the padded geometry cannot be planned.
func New(cols, rows int, k *psf.Kernel) (*Convolver, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: image dimensions must be positive, got (%d, %d)", ErrConvolutionFailed, cols, rows)
	}

	if k == nil {
		return nil, fmt.Errorf("%w: nil psf kernel", ErrConvolutionFailed)
	}

	if !k.FitsWithin(cols, rows) {
		return nil, fmt.Errorf("%w: psf kernel (%d, %d) is larger than the image (%d, %d)", ErrConvolutionFailed, k.Columns, k.Rows, cols, rows)
	}

	padCols := nextFastSize(cols + k.Columns - 1)
	padRows := nextFastSize(rows + k.Rows - 1)

	c := &Convolver{
		cols:     cols,
		rows:     rows,
		padCols:  padCols,
		padRows:  padRows,
		halfCols: padCols/2 + 1,
	}

	c.rowFFT = fourier.NewFFT(padCols)
	c.colFFT = fourier.NewCmplxFFT(padRows)

	c.rowScratchReal = make([]float64, padCols)
	c.rowScratchCmplx = make([]complex128, c.halfCols)
	c.colScratch = make([]complex128, padRows)

	transform, err := c.transformPSF(k)
	if err != nil {
		return nil, err
	}

	c.psfTransform = transform

	return c, nil
}

/*****************************************************************************************************************/

// transformPSF centers and wrap-shifts the kernel into the padded geometry (so post-convolution
// alignment preserves pixel (0,0) of the model, §4.C) and computes its cached 2D transform.
func (c *Convolver) transformPSF(k *psf.Kernel) ([][]complex128, error) {
	padded, err := image.New(c.padCols, c.padRows)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to allocate padded psf buffer: %v", ErrConvolutionFailed, err)
	}

	halfCols := k.Columns / 2
	halfRows := k.Rows / 2

	for j := 0; j < k.Rows; j++ {
		ty := (j - halfRows + c.padRows) % c.padRows
		for i := 0; i < k.Columns; i++ {
			tx := (i - halfCols + c.padCols) % c.padCols
			if err := padded.Set(tx, ty, k.At(i, j)); err != nil {
				return nil, fmt.Errorf("%w: failed to place psf weight: %v", ErrConvolutionFailed, err)
			}
		}
	}

	return c.forward2D(padded)
}

/*****************************************************************************************************************/

// forward2D computes the 2D real-to-complex DFT of a padded buffer: a real FFT along rows
// produces a half-spectrum per row, then a complex FFT along columns produces the full 2D
// transform, shape (padRows, halfCols).
func (c *Convolver) forward2D(buf *image.Buffer) ([][]complex128, error) {
	rowSpectrum := make([][]complex128, c.padRows)

	for j := 0; j < c.padRows; j++ {
		for i := 0; i < c.padCols; i++ {
			v, err := buf.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrConvolutionFailed, err)
			}

			c.rowScratchReal[i] = v
		}

		row := c.rowFFT.Coefficients(nil, c.rowScratchReal)
		rowSpectrum[j] = append([]complex128(nil), row...)
	}

	full := make([][]complex128, c.padRows)
	for j := range full {
		full[j] = make([]complex128, c.halfCols)
	}

	column := make([]complex128, c.padRows)

	for k := 0; k < c.halfCols; k++ {
		for j := 0; j < c.padRows; j++ {
			column[j] = rowSpectrum[j][k]
		}

		transformed := c.colFFT.Coefficients(nil, column)

		for j := 0; j < c.padRows; j++ {
			full[j][k] = transformed[j]
		}
	}

	return full, nil
}

/*****************************************************************************************************************/

// inverse2D is the inverse of forward2D: a complex inverse FFT along columns, then a real
// inverse FFT along rows, recovering a padded real buffer.
func (c *Convolver) inverse2D(spectrum [][]complex128) (*image.Buffer, error) {
	rowSpectrum := make([][]complex128, c.padRows)
	for j := range rowSpectrum {
		rowSpectrum[j] = make([]complex128, c.halfCols)
	}

	column := make([]complex128, c.padRows)

	for k := 0; k < c.halfCols; k++ {
		for j := 0; j < c.padRows; j++ {
			column[j] = spectrum[j][k]
		}

		transformed := c.colFFT.Sequence(nil, column)

		for j := 0; j < c.padRows; j++ {
			// gonum's CmplxFFT.Sequence does not normalize by n; normalize here so that
			// forward/inverse round trips recover the original amplitude exactly.
			rowSpectrum[j][k] = transformed[j] / complex(float64(c.padRows), 0)
		}
	}

	out, err := image.New(c.padCols, c.padRows)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to allocate inverse output buffer: %v", ErrConvolutionFailed, err)
	}

	for j := 0; j < c.padRows; j++ {
		row := c.rowFFT.Sequence(nil, rowSpectrum[j])

		for i := 0; i < c.padCols; i++ {
			// gonum's FFT.Sequence does not normalize by n either; normalize here too.
			if err := out.Set(i, j, row[i]/float64(c.padCols)); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrConvolutionFailed, err)
			}
		}
	}

	return out, nil
}

/*****************************************************************************************************************/

// Convolve performs the forward FFT of the padded input, pointwise multiplies by the cached PSF
// transform, performs the inverse FFT, and crops the centered (cols, rows) region into outBuf
// (§4.C). inBuf and outBuf must both be sized (cols, rows) as passed to New.
func (c *Convolver) Convolve(inBuf, outBuf *image.Buffer) error {
	if inBuf.Columns() != c.cols || inBuf.Rows() != c.rows {
		return fmt.Errorf("%w: input buffer geometry does not match convolver geometry", ErrConvolutionFailed)
	}

	if outBuf.Columns() != c.cols || outBuf.Rows() != c.rows {
		return fmt.Errorf("%w: output buffer geometry does not match convolver geometry", ErrConvolutionFailed)
	}

	padded, err := image.New(c.padCols, c.padRows)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConvolutionFailed, err)
	}

	for j := 0; j < c.rows; j++ {
		for i := 0; i < c.cols; i++ {
			v, _ := inBuf.At(i, j)
			if err := padded.Set(i, j, v); err != nil {
				return fmt.Errorf("%w: %v", ErrConvolutionFailed, err)
			}
		}
	}

	spectrum, err := c.forward2D(padded)
	if err != nil {
		return err
	}

	for j := 0; j < c.padRows; j++ {
		for k := 0; k < c.halfCols; k++ {
			spectrum[j][k] *= c.psfTransform[j][k]
		}
	}

	result, err := c.inverse2D(spectrum)
	if err != nil {
		return err
	}

	for j := 0; j < c.rows; j++ {
		for i := 0; i < c.cols; i++ {
			v, _ := result.At(i, j)
			if err := outBuf.Set(i, j, v); err != nil {
				return fmt.Errorf("%w: %v", ErrConvolutionFailed, err)
			}
		}
	}

	outBuf.Valid = true

	return nil
}

/*****************************************************************************************************************/

// nextFastSize returns the smallest integer >= n whose only prime factors are 2, 3, 5, or 7, the
// preference order the spec calls out for FFT performance (§4.C).
func nextFastSize(n int) int {
	if n < 1 {
		n = 1
	}

	for candidate := n; ; candidate++ {
		if isSmooth(candidate) {
			return candidate
		}
	}
}

/*****************************************************************************************************************/

func isSmooth(n int) bool {
	for _, p := range []int{2, 3, 5, 7} {
		for n%p == 0 {
			n /= p
		}
	}

	return n == 1
}

/*****************************************************************************************************************/
