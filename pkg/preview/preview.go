/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package preview

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/observerly/imfit/pkg/image"
)

/*****************************************************************************************************************/

// ErrEmptyImage is returned by Render when the supplied buffer has zero columns or rows.
var ErrEmptyImage = errors.New("preview: empty image")

/*****************************************************************************************************************/

// Render rasterizes img as a linearly stretched greyscale PNG and writes it to w (§2.3
// [EXPANSION]: a sanity-check PNG preview of the synthesized model, grounded on the teacher's own min/max-stretch-then-draw-pixel pattern). Pixel (0, 0) is drawn top-left, matching
// img's row-major storage order directly with no vertical flip.
func Render(img image.Buffer, w io.Writer) error {
	if img.Columns() <= 0 || img.Rows() <= 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrEmptyImage, img.Columns(), img.Rows())
	}

	minVal, maxVal := img.Value[0], img.Value[0]

	for _, v := range img.Value {
		if v < minVal {
			minVal = v
		}

		if v > maxVal {
			maxVal = v
		}
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	dc := gg.NewContext(img.Columns(), img.Rows())

	for j := 0; j < img.Rows(); j++ {
		for i := 0; i < img.Columns(); i++ {
			v, _ := img.At(i, j)

			normalized := (v - minVal) / (maxVal - minVal)

			if math.IsNaN(normalized) || math.IsInf(normalized, 0) {
				normalized = 0
			}

			dc.SetRGB(normalized, normalized, normalized)
			dc.SetPixel(i, j)
		}
	}

	return dc.EncodePNG(w)
}

/*****************************************************************************************************************/
