/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package oversample

/*****************************************************************************************************************/

import (
	"fmt"

	"github.com/observerly/imfit/pkg/component"
	"github.com/observerly/imfit/pkg/convolve"
	"github.com/observerly/imfit/pkg/image"
	"github.com/observerly/imfit/pkg/psf"
)

/*****************************************************************************************************************/

// ErrOverlappingRegions is returned when two configured regions would write to the same
// base-resolution pixel; the spec requires regions never overlap (§3, §4.D).
var ErrOverlappingRegions = fmt.Errorf("oversampled regions overlap")

/*****************************************************************************************************************/

// Region is an axis-aligned sub-rectangle of the base image synthesized at a finer pixel scale
// and stitched back into the scratch image (§3, §4.D). BaseCol/BaseRow is the 0-indexed
// top-left corner of the region in base-resolution pixel space; XOffset/YOffset is the sky
// coordinate (1-indexed convention) of that same corner, supplied separately so the pipeline
// never has to assume a fixed relationship between pixel index and sky coordinate.
type Region struct {
	BaseCol, BaseRow int
	Width, Height    int
	XOffset, YOffset float64
	Factor           int
	PSF              *psf.Kernel // oversampled-resolution PSF; nil skips the convolution step
}

/*****************************************************************************************************************/

// Overlaps reports whether two regions share any base-resolution pixel.
func (r Region) Overlaps(other Region) bool {
	if r.BaseCol+r.Width <= other.BaseCol || other.BaseCol+other.Width <= r.BaseCol {
		return false
	}

	if r.BaseRow+r.Height <= other.BaseRow || other.BaseRow+other.Height <= r.BaseRow {
		return false
	}

	return true
}

/*****************************************************************************************************************/

// ValidateNonOverlapping checks every pair of regions in the slice for overlap.
func ValidateNonOverlapping(regions []Region) error {
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].Overlaps(regions[j]) {
				return fmt.Errorf("%w: region %d and region %d overlap", ErrOverlappingRegions, i, j)
			}
		}
	}

	return nil
}

/*****************************************************************************************************************/

// synthesizeHighRes evaluates every component at sub-pixel sky coordinates
// (i/s + XOffset, j/s + YOffset) over the oversampled (s*Width, s*Height) grid (§4.D step 1).
func (r Region) synthesizeHighRes(components []component.Component) (*image.Buffer, error) {
	hiCols := r.Factor * r.Width
	hiRows := r.Factor * r.Height

	buf, err := image.New(hiCols, hiRows)
	if err != nil {
		return nil, fmt.Errorf("oversample: failed to allocate high-resolution buffer: %w", err)
	}

	s := float64(r.Factor)

	for j := 0; j < hiRows; j++ {
		y := float64(j)/s + r.YOffset

		for i := 0; i < hiCols; i++ {
			x := float64(i)/s + r.XOffset

			sum := 0.0
			for _, c := range components {
				sum += c.GetValue(x, y)
			}

			if err := buf.Set(i, j, sum); err != nil {
				return nil, fmt.Errorf("oversample: %w", err)
			}
		}
	}

	return buf, nil
}

/*****************************************************************************************************************/

// downsample sums s x s blocks and divides by s^2 (area average), producing a patch at base
// resolution (§4.D step 3).
func downsample(hi *image.Buffer, factor, width, height int) (*image.Buffer, error) {
	out, err := image.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("oversample: failed to allocate downsample output: %w", err)
	}

	area := float64(factor * factor)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			sum := 0.0

			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					v, err := hi.At(i*factor+dx, j*factor+dy)
					if err != nil {
						return nil, fmt.Errorf("oversample: %w", err)
					}

					sum += v
				}
			}

			if err := out.Set(i, j, sum/area); err != nil {
				return nil, fmt.Errorf("oversample: %w", err)
			}
		}
	}

	return out, nil
}

/*****************************************************************************************************************/

// Process runs the full oversampled-region pipeline (§4.D): synthesize at oversampled
// resolution, optionally convolve with an oversampled PSF, then downsample back to a
// base-resolution patch of size (Width, Height) ready to be blitted into the scratch image at
// (BaseCol, BaseRow). With Factor == 1 and no PSF configured, this degenerates to the direct
// base-resolution synthesis (the oversample idempotence property, §8.5).
func (r Region) Process(components []component.Component) (*image.Buffer, error) {
	if r.Factor < 1 {
		return nil, fmt.Errorf("oversample: factor must be >= 1, got %d", r.Factor)
	}

	hi, err := r.synthesizeHighRes(components)
	if err != nil {
		return nil, err
	}

	if r.PSF != nil {
		conv, err := convolve.New(r.Factor*r.Width, r.Factor*r.Height, r.PSF)
		if err != nil {
			return nil, fmt.Errorf("oversample: %w", err)
		}

		convolved, err := image.New(r.Factor*r.Width, r.Factor*r.Height)
		if err != nil {
			return nil, fmt.Errorf("oversample: %w", err)
		}

		if err := conv.Convolve(hi, convolved); err != nil {
			return nil, fmt.Errorf("oversample: %w", err)
		}

		hi = convolved
	}

	return downsample(hi, r.Factor, r.Width, r.Height)
}

/*****************************************************************************************************************/

// Blit writes patch into dst at the region's base-resolution offset.
func (r Region) Blit(dst *image.Buffer, patch *image.Buffer) error {
	for j := 0; j < r.Height; j++ {
		for i := 0; i < r.Width; i++ {
			v, err := patch.At(i, j)
			if err != nil {
				return fmt.Errorf("oversample: %w", err)
			}

			if err := dst.Set(r.BaseCol+i, r.BaseRow+j, v); err != nil {
				return fmt.Errorf("oversample: %w", err)
			}
		}
	}

	return nil
}

/*****************************************************************************************************************/
