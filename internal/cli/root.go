// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/arc-language/stm32bind/pkg/core"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	config  *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stm32bind",
	Short: "STM32 wireless stack binding generator",
	Long: `stm32bind - STM32 wireless stack binding generator

Generates a no_std Rust crate of raw bindings to the STM32WBA BLE,
link layer and 802.15.4 MAC libraries by driving bindgen over the
vendor headers and bundling the prebuilt archives.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stm32bind/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(specsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
}
