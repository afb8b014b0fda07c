/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package geometry

/*****************************************************************************************************************/

import (
	"math"
)

/*****************************************************************************************************************/

// DistanceBetweenTwoCartesianPoints returns the Euclidian distance between two points in pixel space.
// model.Builder uses it to test a pixel against a component's center for the sub-pixel
// integration cutoff radius.
func DistanceBetweenTwoCartesianPoints(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

/*****************************************************************************************************************/
