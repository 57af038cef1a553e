// internal/cli/specs.go
package cli

import (
	"fmt"
	"strings"

	"github.com/arc-language/stm32bind/pkg/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var specsFormat string

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "List the compiled-in binding specs",
	Long:  `List every binding spec in generation order, with its feature gate and alias.`,
	Args:  cobra.NoArgs,
	RunE:  runSpecs,
}

func init() {
	specsCmd.Flags().StringVarP(&specsFormat, "format", "f", "text", "output format (text, yaml, toml)")
}

func runSpecs(cmd *cobra.Command, args []string) error {
	reg, err := registry.Default()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch specsFormat {
	case "text":
		for _, s := range reg.Specs() {
			fmt.Fprintf(out, "%s\n", s.Module)
			fmt.Fprintf(out, "  header:    %s\n", s.Header)
			if s.Feature != "" {
				fmt.Fprintf(out, "  feature:   %s\n", s.Feature)
			}
			if s.Alias != "" {
				fmt.Fprintf(out, "  alias:     %s\n", s.Alias)
			}
			if len(s.Allowlist) > 0 {
				fmt.Fprintf(out, "  allowlist: %s\n", strings.Join(s.Allowlist, ", "))
			}
			for _, a := range s.Artifacts {
				fmt.Fprintf(out, "  artifact:  %s -> %s\n", a.Source, a.Destination)
			}
		}
	case "yaml":
		data, err := yaml.Marshal(map[string][]registry.BindingSpec{"spec": reg.Specs()})
		if err != nil {
			return fmt.Errorf("marshaling specs: %w", err)
		}
		out.Write(data)
	case "toml":
		data, err := reg.Encode()
		if err != nil {
			return err
		}
		out.Write(data)
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or toml)", specsFormat)
	}

	return nil
}
