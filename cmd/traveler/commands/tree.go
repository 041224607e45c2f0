package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
	"github.com/shuskey/Timeline-Traveler-sub000/family"
)

// TreeCmd lists a person's ancestors and descendants
var TreeCmd = &cobra.Command{
	Use:   "tree <person-id>",
	Short: "List a person's ancestors and descendants",
	Long: `tree — List a person's ancestors and descendants

Builds the relationship graph around the person and prints bounded
ancestor and descendant tables with each relative's kinship label.

Examples:
  traveler tree 1
  traveler tree 1 --ancestors 3 --descendants 0`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

var (
	treeAncestorsFlag   int
	treeDescendantsFlag int
)

func init() {
	TreeCmd.Flags().IntVar(&treeAncestorsFlag, "ancestors", 0, "Generations of ancestors to list (0 = configured depth)")
	TreeCmd.Flags().IntVar(&treeDescendantsFlag, "descendants", 0, "Generations of descendants to list (0 = configured depth)")
}

func runTree(cmd *cobra.Command, args []string) error {
	rootID, err := parsePersonID(args[0])
	if err != nil {
		return err
	}

	source, cfg, err := openSource(cmd)
	if err != nil {
		return err
	}
	defer source.Close()

	ancestryDepth := cfg.Tree.AncestryDepth
	if treeAncestorsFlag > 0 {
		ancestryDepth = treeAncestorsFlag
	}
	descendancyDepth := cfg.Tree.DescendancyDepth
	if treeDescendantsFlag > 0 {
		descendancyDepth = treeDescendantsFlag
	}

	ctx := context.Background()
	graph, err := buildGraph(ctx, source, cfg, rootID)
	if err != nil {
		return errors.Wrapf(err, "building graph around person %d", rootID)
	}

	ancestors, err := graph.Ancestors(rootID, ancestryDepth)
	if err != nil {
		return err
	}
	descendants, err := graph.Descendants(rootID, descendancyDepth)
	if err != nil {
		return err
	}

	fmt.Printf("Family of %s\n\n", personLabel(ctx, source, rootID))
	if err := renderRelatives(graph, rootID, "Ancestors", ancestors); err != nil {
		return err
	}
	return renderRelatives(graph, rootID, "Descendants", descendants)
}

func renderRelatives(graph *family.Graph, rootID int, heading string, people []*family.Person) error {
	pterm.DefaultSection.Println(heading)
	if len(people) == 0 {
		pterm.Println("none loaded")
		return nil
	}

	data := pterm.TableData{{"ID", "Name", "Relationship", "Born", "Died"}}
	for _, p := range people {
		// Label describes the relative from the root's point of view.
		label, err := graph.RelationshipBetween(p.ID, rootID)
		if err != nil {
			label = family.LabelRelative
		}
		data = append(data, []string{
			fmt.Sprintf("%d", p.ID),
			p.FullName(),
			label,
			p.Birth.String(),
			p.Death.String(),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
