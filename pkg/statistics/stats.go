/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package stats

/*****************************************************************************************************************/

import (
	"math"
	"math/rand"
)

/*****************************************************************************************************************/

// NormalDistributedRandomNumber generates a normally distributed random number.
// mean: the mean of the distribution.
// stdDev: the standard deviation of the distribution.
func NormalDistributedRandomNumber(mean, stdDev float64) float64 {
	return rand.NormFloat64()*stdDev + mean
}

/*****************************************************************************************************************/

// PoissonDistributedRandomNumber generates a Poisson-distributed random number using Knuth's
// algorithm, suitable for overlaying shot noise on a synthesized model image; the CORE itself is
// noise-free (it synthesizes the noiseless model, not a simulated exposure).
func PoissonDistributedRandomNumber(lambda float64) float64 {
	if lambda <= 0 {
		return 0
	}

	l := math.Exp(-lambda)
	k := 0.0
	p := 1.0

	for {
		k++
		p *= rand.Float64()
		if p <= l {
			break
		}
	}

	return k - 1
}

/*****************************************************************************************************************/
