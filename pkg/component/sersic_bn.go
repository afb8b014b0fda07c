/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package component

/*****************************************************************************************************************/

import (
	"gonum.org/v1/gonum/mathext"
)

/*****************************************************************************************************************/

// sersicBnClosedForm implements the Ciotti & Bertin (1999) asymptotic expansion, valid for n >= 0.36.
func sersicBnClosedForm(n float64) float64 {
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n

	return 2*n - 1.0/3.0 +
		4.0/(405.0*n) +
		46.0/(25515.0*n2) +
		131.0/(1148175.0*n3) -
		2194697.0/(30690717750.0*n4)
}

/*****************************************************************************************************************/

// sersicBnSeries solves the Sérsic b_n defining relation directly, rather than extrapolating the
// closed-form asymptotic expansion below its n=0.36 validity floor (§4.A: "series elsewhere"). b_n
// is defined by Gamma(2n) = 2*gamma_lower(2n, b_n), i.e. the point at which the regularized lower
// incomplete gamma function P(2n, x) reaches one half; mathext.GammaIncRegInv inverts P via the
// same continued-fraction/series evaluation of the incomplete gamma function its forward form
// uses, and stays accurate across the n < 0.36 domain where sersicBnClosedForm's
// -2194697/(30690717750*n^4) term diverges (e.g. it is already off by an order of magnitude at
// n=0.05).
func sersicBnSeries(n float64) float64 {
	return mathext.GammaIncRegInv(2*n, 0.5)
}

/*****************************************************************************************************************/

// SersicBn returns the Sérsic coefficient b_n for the given Sérsic index n, choosing the
// closed-form expansion for n >= 0.36 and the incomplete-gamma series inversion otherwise (§4.A).
func SersicBn(n float64) float64 {
	if n >= 0.36 {
		return sersicBnClosedForm(n)
	}

	return sersicBnSeries(n)
}

/*****************************************************************************************************************/
