// internal/cli/check.go
package cli

import (
	"context"
	"fmt"

	"github.com/arc-language/stm32bind/pkg/platform"
	"github.com/arc-language/stm32bind/pkg/revision"
	"github.com/spf13/cobra"
)

var checkSources string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the host toolchain and vendor tree",
	Long:  `Report which of the tools used during generation are installed, and which revision of the vendor tree is checked out.`,
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkSources, "sources", "s", "", "vendor source tree root")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	plat, err := platform.Detect()
	if err != nil {
		return fmt.Errorf("detecting platform: %w", err)
	}

	fmt.Fprintf(out, "Platform: %s/%s\n\n", plat.OS, plat.Arch)
	fmt.Fprintf(out, "Tools:\n")
	for _, tool := range platform.Tools {
		marker := "✗"
		if plat.Has(tool) {
			marker = "✓"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, tool)
	}

	if inc := plat.HostIncludes().Args(context.Background()); len(inc) > 0 {
		fmt.Fprintf(out, "\nHost includes: %v\n", inc)
	}

	fmt.Fprintf(out, "\nbindgen: %s\n", config.BindgenPath)

	if checkSources != "" {
		info, err := revision.Describe(checkSources)
		if err != nil {
			fmt.Fprintf(out, "Vendor tree: %s (%v)\n", checkSources, err)
		} else {
			fmt.Fprintf(out, "Vendor tree: %s at %s\n", checkSources, info)
		}
	}

	return nil
}
