// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of the generator
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stm32bind version %s\n", Version)
		fmt.Fprintln(cmd.OutOrStdout(), "STM32 wireless stack binding generator")
		fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/arc-language/stm32bind")
	},
}
