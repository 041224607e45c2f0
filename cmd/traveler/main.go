package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shuskey/Timeline-Traveler-sub000/cmd/traveler/commands"
	"github.com/shuskey/Timeline-Traveler-sub000/config"
	"github.com/shuskey/Timeline-Traveler-sub000/logger"
)

var rootCmd = &cobra.Command{
	Use:   "traveler",
	Short: "Timeline Traveler - family tree kinship engine",
	Long: `Timeline Traveler - kinship queries over a RootsMagic family tree.

Builds an in-memory relationship graph from a RootsMagic database and
answers human-readable kinship questions about any pair of people.

Available commands:
  kin     - Label the relationship between two people
  tree    - List a person's ancestors and descendants
  stats   - Show graph statistics for a root person
  config  - Inspect or initialize configuration
  version - Show build information

Examples:
  traveler kin 1 42             # How is person 1 related to person 42?
  traveler kin 1 42 --fallback  # Same, computed without building a graph
  traveler tree 1 --ancestors 3 # Three generations of ancestors
  traveler stats 1              # Graph size after building around person 1`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logger.Initialize(verbosity, cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("db", "", "Path to the RootsMagic database (overrides config)")

	rootCmd.AddCommand(commands.KinCmd)
	rootCmd.AddCommand(commands.TreeCmd)
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
