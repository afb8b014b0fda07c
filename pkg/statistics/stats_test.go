/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package stats

/*****************************************************************************************************************/

import (
	"testing"
)

/*****************************************************************************************************************/

func TestPoissonDistributedRandomNumberZeroLambda(t *testing.T) {
	v := PoissonDistributedRandomNumber(0)
	if v != 0 {
		t.Errorf("PoissonDistributedRandomNumber(0) = %f; want 0", v)
	}
}

/*****************************************************************************************************************/

func TestPoissonDistributedRandomNumberNonNegative(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := PoissonDistributedRandomNumber(4.0)
		if v < 0 {
			t.Errorf("PoissonDistributedRandomNumber(4.0) = %f; want >= 0", v)
		}
	}
}

/*****************************************************************************************************************/

func TestNormalDistributedRandomNumberFinite(t *testing.T) {
	v := NormalDistributedRandomNumber(10.0, 2.0)
	if v != v {
		t.Errorf("NormalDistributedRandomNumber returned NaN")
	}
}

/*****************************************************************************************************************/
