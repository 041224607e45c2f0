package family

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
)

// maxSearchDepth caps the breadth-first relationship search. Anything further
// apart than this renders as the generic label; the cap doubles as the
// implicit timeout for pathological data.
const maxSearchDepth = 5

type pairKey struct {
	a, b int
}

// Graph owns people by id and the typed directed edges between them, with
// adjacency indexed in both directions. Blood-line edges are kept acyclic by
// an insertion-time check; direct bidirectional pairs (spouse, sibling,
// aunt/uncle with niece/nephew) are permitted exceptions.
//
// A Graph is not safe for concurrent writers. The relationship cache is
// invalidated wholesale on every edge insertion: new edges can shorten or
// retype previously computed paths, and full invalidation is cheap at
// genealogical data scales.
type Graph struct {
	people   map[int]*Person
	outgoing map[int][]*FamilyEdge
	incoming map[int][]*FamilyEdge

	edgeCount int
	relCache  map[pairKey]string

	log *zap.SugaredLogger
}

// NewGraph creates an empty relationship graph
func NewGraph(log *zap.SugaredLogger) *Graph {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Graph{
		people:   make(map[int]*Person),
		outgoing: make(map[int][]*FamilyEdge),
		incoming: make(map[int][]*FamilyEdge),
		relCache: make(map[pairKey]string),
		log:      log.Named("family.graph"),
	}
}

// AddPerson inserts a person; a no-op if the id is already present
func (g *Graph) AddPerson(p *Person) {
	if p == nil {
		return
	}
	if _, exists := g.people[p.ID]; exists {
		return
	}
	g.people[p.ID] = p
}

// Person returns the person with the given id, or nil
func (g *Graph) Person(id int) *Person {
	return g.people[id]
}

// People returns all people in the graph ordered by id
func (g *Graph) People() []*Person {
	ids := make([]int, 0, len(g.people))
	for id := range g.people {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	people := make([]*Person, 0, len(ids))
	for _, id := range ids {
		people = append(people, g.people[id])
	}
	return people
}

// AddRelationship inserts a typed directed edge. Insertion fails silently
// (logged, never returned) when either endpoint is unknown or when the edge
// would close a true cycle through existing outgoing edges. On success the
// whole relationship cache is invalidated, and lineage edges are appended to
// the owning person's relationship list.
func (g *Graph) AddRelationship(from, to int, kind RelationshipKind, eventYear int, childKind ChildKind) {
	owner, ok := g.people[from]
	if !ok {
		g.log.Warnw("Relationship endpoint not in graph", "from", from, "to", to, "kind", kind.String())
		return
	}
	if _, ok := g.people[to]; !ok {
		g.log.Warnw("Relationship endpoint not in graph", "from", from, "to", to, "kind", kind.String())
		return
	}
	if from == to || g.wouldCreateCycle(from, to) {
		// Routine during enrichment over dense families (first-cousin
		// marriages, sibling cliques); the query path still resolves these
		// pairs through path interpretation.
		g.log.Debugw("Rejected cyclic relationship", "from", from, "to", to, "kind", kind.String())
		return
	}

	edge := &FamilyEdge{From: from, To: to, Kind: kind, EventYear: eventYear, ChildKind: childKind}
	g.outgoing[from] = append(g.outgoing[from], edge)
	g.incoming[to] = append(g.incoming[to], edge)
	g.edgeCount++
	g.invalidateCache()

	if kind.IsLineage() {
		owner.Relationships = append(owner.Relationships, edge)
	}
}

// wouldCreateCycle reports whether inserting from->to would close a directed
// cycle reachable through existing outgoing edges. A lone direct edge to->from
// is the permitted bidirectional pair and does not count.
func (g *Graph) wouldCreateCycle(from, to int) bool {
	visited := map[int]bool{to: true}
	var stack []int
	for _, e := range g.outgoing[to] {
		if e.To == from {
			continue // direct inverse pair is permitted
		}
		if !visited[e.To] {
			visited[e.To] = true
			stack = append(stack, e.To)
		}
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == from {
			return true
		}
		for _, e := range g.outgoing[n] {
			if !visited[e.To] {
				visited[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}
	return false
}

func (g *Graph) invalidateCache() {
	if len(g.relCache) > 0 {
		g.relCache = make(map[pairKey]string)
	}
}

// HasLineageEdge reports whether a blood edge of any kind already runs
// from -> to. A pair carries at most one blood edge; which kind won depends
// on which construction pass reached the pair first.
func (g *Graph) HasLineageEdge(from, to int) bool {
	for _, e := range g.outgoing[from] {
		if e.To == to && e.Kind.IsLineage() {
			return true
		}
	}
	return false
}

// DirectRelationships returns every edge touching id, in either direction
func (g *Graph) DirectRelationships(id int) []*FamilyEdge {
	edges := make([]*FamilyEdge, 0, len(g.outgoing[id])+len(g.incoming[id]))
	edges = append(edges, g.outgoing[id]...)
	edges = append(edges, g.incoming[id]...)
	return edges
}

// Ancestors returns everyone reachable from id by walking blood edges
// against their direction, up to maxGenerations levels. The visited set
// guards against revisits even though lineage edges are meant to stay
// acyclic.
func (g *Graph) Ancestors(id int, maxGenerations int) ([]*Person, error) {
	if _, ok := g.people[id]; !ok {
		return nil, errors.Wrapf(errors.ErrPersonNotInGraph, "person %d", id)
	}

	var ancestors []*Person
	visited := map[int]bool{id: true}
	frontier := []int{id}
	for gen := 0; gen < maxGenerations && len(frontier) > 0; gen++ {
		var next []int
		for _, pid := range frontier {
			for _, e := range g.incoming[pid] {
				if !e.Kind.IsLineage() {
					continue
				}
				if visited[e.From] {
					continue
				}
				visited[e.From] = true
				ancestors = append(ancestors, g.people[e.From])
				next = append(next, e.From)
			}
		}
		frontier = next
	}
	return ancestors, nil
}

// Descendants returns everyone reachable from id by walking blood edges
// forward, down to maxGenerations levels.
func (g *Graph) Descendants(id int, maxGenerations int) ([]*Person, error) {
	if _, ok := g.people[id]; !ok {
		return nil, errors.Wrapf(errors.ErrPersonNotInGraph, "person %d", id)
	}

	var descendants []*Person
	visited := map[int]bool{id: true}
	frontier := []int{id}
	for gen := 0; gen < maxGenerations && len(frontier) > 0; gen++ {
		var next []int
		for _, pid := range frontier {
			for _, e := range g.outgoing[pid] {
				if !e.Kind.IsLineage() {
					continue
				}
				if visited[e.To] {
					continue
				}
				visited[e.To] = true
				descendants = append(descendants, g.people[e.To])
				next = append(next, e.To)
			}
		}
		frontier = next
	}
	return descendants, nil
}

// RelationshipBetween returns the kinship label describing person a relative
// to person b: "son", "grandmother", "3-degree relative". Results are cached
// per ordered pair until the next edge insertion. Ids absent from the graph
// return ErrPersonNotInGraph.
func (g *Graph) RelationshipBetween(a, b int) (string, error) {
	pa, ok := g.people[a]
	if !ok {
		return "", errors.Wrapf(errors.ErrPersonNotInGraph, "person %d", a)
	}
	if _, ok := g.people[b]; !ok {
		return "", errors.Wrapf(errors.ErrPersonNotInGraph, "person %d", b)
	}

	if a == b {
		return LabelSelf, nil
	}
	if label, ok := g.relCache[pairKey{a, b}]; ok {
		return label, nil
	}

	label := g.resolve(a, b, pa)
	g.relCache[pairKey{a, b}] = label
	return label, nil
}

func (g *Graph) resolve(a, b int, pa *Person) string {
	// Direct edge in either adjacency direction wins over path search.
	for _, e := range g.outgoing[a] {
		if e.To == b {
			return KinshipTerm(e.Kind, true, pa)
		}
	}
	for _, e := range g.incoming[a] {
		if e.From == b {
			return KinshipTerm(e.Kind, false, pa)
		}
	}

	path := g.shortestPath(a, b)
	if path == nil {
		return LabelRelative
	}
	return g.interpretPath(path, pa)
}

// pathStep is one traversed edge; forward means it was walked From -> To.
type pathStep struct {
	edge    *FamilyEdge
	forward bool
}

type bfsVisit struct {
	prev int
	step pathStep
}

// shortestPath runs a bounded breadth-first search from a to b over the
// union of outgoing and incoming edges, capped at maxSearchDepth hops.
func (g *Graph) shortestPath(a, b int) []pathStep {
	visited := map[int]bfsVisit{a: {prev: a}}
	frontier := []int{a}

	for depth := 0; depth < maxSearchDepth && len(frontier) > 0; depth++ {
		var next []int
		for _, id := range frontier {
			for _, e := range g.outgoing[id] {
				if _, seen := visited[e.To]; seen {
					continue
				}
				visited[e.To] = bfsVisit{prev: id, step: pathStep{edge: e, forward: true}}
				if e.To == b {
					return g.collectPath(visited, a, b)
				}
				next = append(next, e.To)
			}
			for _, e := range g.incoming[id] {
				if _, seen := visited[e.From]; seen {
					continue
				}
				visited[e.From] = bfsVisit{prev: id, step: pathStep{edge: e, forward: false}}
				if e.From == b {
					return g.collectPath(visited, a, b)
				}
				next = append(next, e.From)
			}
		}
		frontier = next
	}
	return nil
}

func (g *Graph) collectPath(visited map[int]bfsVisit, a, b int) []pathStep {
	var reversed []pathStep
	for id := b; id != a; id = visited[id].prev {
		reversed = append(reversed, visited[id].step)
	}
	path := make([]pathStep, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

// interpretPath maps a traversed path onto a kinship label for pa, the
// person being described. Pure blood-line paths resolve to the classic
// kinship shapes, a single spouse crossing at either end resolves to the
// in-law shapes, and everything else is a generic N-degree relative.
func (g *Graph) interpretPath(path []pathStep, pa *Person) string {
	if label, ok := lineageShape(path, pa); ok {
		return label
	}
	if label, ok := inLawShape(path, pa); ok {
		return label
	}
	return fmt.Sprintf("%d-degree relative", len(path))
}

// countLineage reduces a path to the generations it climbs then descends.
// Lineage edges point parent -> child, so walking one against its direction
// is a step up a generation and walking it forward is a step down. Paths
// with non-lineage edges, or that climb again after descending, have no
// canonical shape.
func countLineage(path []pathStep) (ups, downs int, ok bool) {
	for _, s := range path {
		if !s.edge.Kind.IsLineage() {
			return 0, 0, false
		}
		if s.forward {
			downs++
		} else {
			if downs > 0 {
				return 0, 0, false
			}
			ups++
		}
	}
	return ups, downs, true
}

func lineageShape(path []pathStep, pa *Person) (string, bool) {
	ups, downs, ok := countLineage(path)
	if !ok {
		return "", false
	}
	switch {
	case downs == 0:
		return DescendantLabel(ups, pa.Gender), true
	case ups == 0:
		return AncestorLabel(downs, pa.Gender), true
	case ups == 1 && downs == 1:
		return KinshipTerm(KindSibling, true, pa), true
	case ups == 2 && downs == 1:
		return KinshipTerm(KindNieceNephew, true, pa), true
	case ups == 1 && downs == 2:
		return KinshipTerm(KindAuntUncle, true, pa), true
	case ups == 2 && downs == 2:
		return KinshipTerm(KindCousin, true, pa), true
	}
	return "", false
}

// inLawShape resolves paths that cross exactly one Spouse edge at either end
// of an otherwise canonical blood-line chain: the described person's spouse's
// parent or sibling, or the spouse of their child or sibling.
func inLawShape(path []pathStep, pa *Person) (string, bool) {
	if len(path) < 2 {
		return "", false
	}

	var rest []pathStep
	var spouseFirst bool
	switch {
	case path[0].edge.Kind == KindSpouse:
		rest, spouseFirst = path[1:], true
	case path[len(path)-1].edge.Kind == KindSpouse:
		rest, spouseFirst = path[:len(path)-1], false
	default:
		return "", false
	}

	ups, downs, ok := countLineage(rest)
	if !ok {
		return "", false
	}
	switch {
	case spouseFirst && ups == 1 && downs == 0:
		// Spouse's parent: pa married into b's family.
		return KinshipTerm(KindChildInLaw, true, pa), true
	case spouseFirst && ups == 1 && downs == 1:
		// Spouse's sibling.
		return KinshipTerm(KindSiblingInLaw, true, pa), true
	case !spouseFirst && ups == 0 && downs == 1:
		// Child's spouse: pa is the parent-in-law.
		return KinshipTerm(KindParentInLaw, true, pa), true
	case !spouseFirst && ups == 1 && downs == 1:
		// Sibling's spouse.
		return KinshipTerm(KindSiblingInLaw, true, pa), true
	}
	return "", false
}

// Statistics summarizes graph size for diagnostics
type Statistics struct {
	TotalPeople               int
	TotalRelationships        int
	AvgRelationshipsPerPerson float64
}

// Statistics returns people/relationship counts and the average number of
// relationships per person.
func (g *Graph) Statistics() Statistics {
	stats := Statistics{
		TotalPeople:        len(g.people),
		TotalRelationships: g.edgeCount,
	}
	if stats.TotalPeople > 0 {
		stats.AvgRelationshipsPerPerson = float64(g.edgeCount) / float64(stats.TotalPeople)
	}
	return stats
}
