package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cart-bundler",
	Short: "Cart Bundler - meal bundle optimization engine",
	Long: `Cart Bundler builds cost-and-variety-optimal meal bundles from a menu,
a headcount, and a budget, comparing MILP, greedy, and brute-force solvers.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags can be added here
	// rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}
