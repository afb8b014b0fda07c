/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/imfit
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"github.com/spf13/cobra"
)

/*****************************************************************************************************************/

var rootCommand = &cobra.Command{
	Use:   "imfit",
	Short: "imfit is a command-line tool for synthesizing astronomical surface-brightness model images.",
	Long:  "imfit is a command-line tool for synthesizing astronomical surface-brightness model images from a flat-text component configuration.",
}

/*****************************************************************************************************************/

func init() {
	rootCommand.AddCommand(FitCommand)
}

/*****************************************************************************************************************/

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		panic(err)
	}
}

/*****************************************************************************************************************/
