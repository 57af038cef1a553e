// internal/cli/digest.go
package cli

import (
	"fmt"

	"github.com/arc-language/stm32bind/pkg/digest"
	"github.com/spf13/cobra"
)

var digestCheck string

var digestCmd = &cobra.Command{
	Use:   "digest [dir...]",
	Short: "Print the content hash of generated trees",
	Long: `Print the sha256 of the NAR serialization of each directory, in the
same form as nix-hash --type sha256 --base32.

Two trees with the same digest are byte-identical, which makes it easy to
confirm that regenerating against an unchanged vendor tree changes nothing.

Examples:
  stm32bind digest ./stm32-wpan-sys
  stm32bind digest ./stm32-wpan-sys --check sha256:0mdqa9w1...`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().StringVar(&digestCheck, "check", "", "fail unless every directory has this digest")
}

func runDigest(cmd *cobra.Command, args []string) error {
	for _, dir := range args {
		if digestCheck != "" {
			if err := digest.Verify(dir, digestCheck); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", dir)
			continue
		}

		sum, err := digest.Tree(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, dir)
	}
	return nil
}
