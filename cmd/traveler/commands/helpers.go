package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shuskey/Timeline-Traveler-sub000/config"
	"github.com/shuskey/Timeline-Traveler-sub000/errors"
	"github.com/shuskey/Timeline-Traveler-sub000/family"
	"github.com/shuskey/Timeline-Traveler-sub000/logger"
	"github.com/shuskey/Timeline-Traveler-sub000/provider/rootsmagic"
)

// openSource opens the configured RootsMagic database, honoring the --db
// override. The caller must Close the source.
func openSource(cmd *cobra.Command) (*rootsmagic.Source, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading configuration")
	}

	path := cfg.Database.Path
	if override, _ := cmd.Flags().GetString("db"); override != "" {
		path = override
	}

	source, err := rootsmagic.Open(path, logger.Logger)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening database %s", path)
	}
	return source, cfg, nil
}

// buildGraph builds the relationship graph around rootID with the configured
// depths.
func buildGraph(ctx context.Context, source family.RecordSource, cfg *config.Config, rootID int) (*family.Graph, error) {
	builder := family.NewBuilder(source, logger.Logger)
	return builder.Build(ctx, rootID, cfg.Tree.AncestryDepth, cfg.Tree.DescendancyDepth)
}

// parsePersonID parses a positional person id argument
func parsePersonID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidRequestError("invalid person id %q", arg)
	}
	return id, nil
}
