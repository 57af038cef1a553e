// internal/cli/generate.go
package cli

import (
	"context"
	"fmt"

	"github.com/arc-language/stm32bind"
	"github.com/spf13/cobra"
)

var (
	genOut        string
	genSources    string
	genTarget     string
	genInclude    string
	genBindgen    string
	genIdempotent bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the bindings crate",
	Long: `Regenerate the bindings crate from scratch.

The output directory is deleted first. Every binding spec is processed in
order and the first failure aborts the run.

Examples:
  stm32bind generate --out ./stm32-wpan-sys --sources ~/STM32CubeWBA
  stm32bind generate --out ./out --sources ./cube --target thumbv8m.main-none-eabihf
  stm32bind generate --out ./out --sources ./cube --verify-idempotent`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output directory (required)")
	generateCmd.Flags().StringVarP(&genSources, "sources", "s", "", "vendor source tree root (required)")
	generateCmd.Flags().StringVarP(&genTarget, "target", "t", "", "target triple (default from config)")
	generateCmd.Flags().StringVar(&genInclude, "local-include", "", "directory passed to the compiler as -iquote, resolved against the current directory rather than the output crate (default from config: ./inc)")
	generateCmd.Flags().StringVar(&genBindgen, "bindgen", "", "bindgen executable (default from config)")
	generateCmd.Flags().BoolVar(&genIdempotent, "verify-idempotent", false, "generate twice and fail if the trees differ")
	_ = generateCmd.MarkFlagRequired("out")
	_ = generateCmd.MarkFlagRequired("sources")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := *config
	if genBindgen != "" {
		cfg.BindgenPath = genBindgen
	}
	target := genTarget
	if target == "" {
		target = cfg.DefaultTarget
	}
	include := genInclude
	if include == "" {
		include = cfg.LocalIncludeDir
	}

	opts, err := stm32bind.NewOptions(genOut, genSources, target, include)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	gen, err := stm32bind.NewGenerator(opts, &cfg, stm32bind.WithLogger(logger))
	if err != nil {
		return err
	}

	if genIdempotent {
		sum, err := gen.RunTwice(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %d modules into %s (%s, reproducible)\n", gen.Registry().Len(), opts.OutDir, sum)
		return nil
	}

	if err := gen.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %d modules into %s\n", gen.Registry().Len(), opts.OutDir)
	return nil
}
