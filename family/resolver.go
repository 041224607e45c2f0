package family

import (
	"context"

	"go.uber.org/zap"
)

// Resolver labels the relationship between two people. Two variants exist:
// graph-backed (after a Build) and record-backed (no graph, straight off the
// source). The variant is chosen once at construction rather than per call,
// so hosts and tests can target each directly and compare their outputs.
type Resolver interface {
	RelationshipBetween(ctx context.Context, personID, otherID int) (string, error)
}

type graphResolver struct {
	graph *Graph
}

func (r graphResolver) RelationshipBetween(_ context.Context, personID, otherID int) (string, error) {
	// Pure in-memory query; the BFS hop cap bounds the work, no need for ctx.
	return r.graph.RelationshipBetween(personID, otherID)
}

// SelectResolver picks the graph-backed strategy when a graph is available
// and falls back to the record-backed algorithm otherwise.
func SelectResolver(g *Graph, source RecordSource, log *zap.SugaredLogger) Resolver {
	if g != nil {
		return graphResolver{graph: g}
	}
	return NewRecordResolver(source, log)
}
