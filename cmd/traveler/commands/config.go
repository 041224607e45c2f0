package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shuskey/Timeline-Traveler-sub000/config"
)

// ConfigCmd inspects or initializes configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize configuration",
	Long: `config — Manage Timeline Traveler configuration

Configuration is read from ~/.traveler/traveler.toml, a traveler.toml found
by walking up from the working directory, and TRAVELER_* environment
variables, in increasing precedence.

Examples:
  traveler config show
  traveler config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default user config file",
	RunE:  runConfigInit,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("database.path          = %s\n", cfg.Database.Path)
	fmt.Printf("tree.ancestry_depth    = %d\n", cfg.Tree.AncestryDepth)
	fmt.Printf("tree.descendancy_depth = %d\n", cfg.Tree.DescendancyDepth)
	fmt.Printf("log.json               = %t\n", cfg.Log.JSON)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.UserConfigPath()
	if path == "" {
		return fmt.Errorf("could not determine home directory")
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}
