package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
	"github.com/shuskey/Timeline-Traveler-sub000/family"
	"github.com/shuskey/Timeline-Traveler-sub000/logger"
)

// KinCmd labels the relationship between two people
var KinCmd = &cobra.Command{
	Use:   "kin <person-id> <other-id>",
	Short: "Label the relationship between two people",
	Long: `kin — Label the relationship between two people

Answers "what is person A to person B?" with a kinship term such as
"granddaughter", "brother-in-law", or "3-degree relative".

By default a relationship graph is built around the first person and
queried. With --fallback the label is computed directly from the records
without building a graph; the two paths should agree and the flag exists
to compare them.

Examples:
  traveler kin 1 42
  traveler kin 1 42 --fallback`,
	Args: cobra.ExactArgs(2),
	RunE: runKin,
}

var kinFallbackFlag bool

func init() {
	KinCmd.Flags().BoolVar(&kinFallbackFlag, "fallback", false, "Compute from records without building a graph")
}

func runKin(cmd *cobra.Command, args []string) error {
	personID, err := parsePersonID(args[0])
	if err != nil {
		return err
	}
	otherID, err := parsePersonID(args[1])
	if err != nil {
		return err
	}

	source, cfg, err := openSource(cmd)
	if err != nil {
		return err
	}
	defer source.Close()

	ctx := context.Background()

	var graph *family.Graph
	if !kinFallbackFlag {
		graph, err = buildGraph(ctx, source, cfg, personID)
		if err != nil {
			return errors.Wrapf(err, "building graph around person %d", personID)
		}
	}
	resolver := family.SelectResolver(graph, source, logger.Logger)

	label, err := resolver.RelationshipBetween(ctx, personID, otherID)
	if err != nil {
		// One failed pair renders as the generic label, not as a hard error.
		if errors.Is(err, errors.ErrPersonNotInGraph) || errors.IsNotFoundError(err) {
			label = family.LabelRelative
		} else {
			return err
		}
	}

	personName := personLabel(ctx, source, personID)
	otherName := personLabel(ctx, source, otherID)
	fmt.Printf("%s is the %s of %s\n", personName, label, otherName)
	return nil
}

func personLabel(ctx context.Context, source family.RecordSource, id int) string {
	p, err := source.Person(ctx, id)
	if err != nil || p.FullName() == "" {
		return fmt.Sprintf("person %d", id)
	}
	return fmt.Sprintf("%s (%d)", p.FullName(), id)
}
