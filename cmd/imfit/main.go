/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"github.com/observerly/imfit/internal/cli"
)

/*****************************************************************************************************************/

func main() {
	cli.Execute()
}

/*****************************************************************************************************************/
