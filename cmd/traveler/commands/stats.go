package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
)

// StatsCmd shows graph statistics for a root person
var StatsCmd = &cobra.Command{
	Use:   "stats <person-id>",
	Short: "Show graph statistics for a root person",
	Long: `stats — Show graph statistics

Builds the relationship graph around the person with the configured depths
and reports how many people and relationships were loaded.

Examples:
  traveler stats 1`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	rootID, err := parsePersonID(args[0])
	if err != nil {
		return err
	}

	source, cfg, err := openSource(cmd)
	if err != nil {
		return err
	}
	defer source.Close()

	ctx := context.Background()
	graph, err := buildGraph(ctx, source, cfg, rootID)
	if err != nil {
		return errors.Wrapf(err, "building graph around person %d", rootID)
	}

	stats := graph.Statistics()
	data := pterm.TableData{
		{"Root", personLabel(ctx, source, rootID)},
		{"Ancestry depth", fmt.Sprintf("%d", cfg.Tree.AncestryDepth)},
		{"Descendancy depth", fmt.Sprintf("%d", cfg.Tree.DescendancyDepth)},
		{"Total people", fmt.Sprintf("%d", stats.TotalPeople)},
		{"Total relationships", fmt.Sprintf("%d", stats.TotalRelationships)},
		{"Avg relationships/person", fmt.Sprintf("%.2f", stats.AvgRelationshipsPerPerson)},
	}
	return pterm.DefaultTable.WithData(data).Render()
}
