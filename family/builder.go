package family

import (
	"context"

	"go.uber.org/zap"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
)

type expandDirection int

const (
	expandAncestry expandDirection = iota
	expandDescendancy
)

// branch is one deferred unit of traversal: expand this person's ancestry or
// descendancy, with depth generations remaining to load. Expanding consumes
// one generation; a branch with no generations left is a no-op.
type branch struct {
	personID  int
	depth     int
	direction expandDirection
}

type relationshipKey struct {
	from, to int
	kind     RelationshipKind
}

// Builder orchestrates loading a RecordSource into a Graph. The same person
// is routinely reached over several paths (an ancestor who is also a
// spouse's sibling), so every load and every edge insertion is deduplicated
// through processed sets before touching the graph. Recursion is expressed
// as an explicit branch queue so a host can interleave expansion with other
// work (ExpandNext) instead of paying for a whole Build at once.
type Builder struct {
	source RecordSource
	graph  *Graph

	processedPeople map[int]bool
	spousesLoaded   map[int]bool
	processedRels   map[relationshipKey]bool
	queue           []branch

	log *zap.SugaredLogger
}

// NewBuilder creates a builder over the given record source
func NewBuilder(source RecordSource, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	b := &Builder{
		source: source,
		log:    log.Named("family.builder"),
	}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.graph = NewGraph(b.log)
	b.processedPeople = make(map[int]bool)
	b.spousesLoaded = make(map[int]bool)
	b.processedRels = make(map[relationshipKey]bool)
	b.queue = nil
}

// Graph returns the graph built so far. Valid mid-expansion: partial graphs
// are usable, they just answer fewer pairs specifically.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Build loads the root, its ancestry to ancestryDepth and descendancy to
// descendancyDepth (spouses at every visited node), then runs the enrichment
// passes for siblings, aunts/uncles with nieces/nephews, and cousins.
// A missing root fails the build; any other unresolvable reference only
// abandons its branch.
func (b *Builder) Build(ctx context.Context, rootID, ancestryDepth, descendancyDepth int) (*Graph, error) {
	b.reset()

	if err := b.Start(ctx, rootID, ancestryDepth, descendancyDepth); err != nil {
		return nil, err
	}

	for {
		more, err := b.ExpandNext(ctx)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	if err := b.Enrich(ctx); err != nil {
		return nil, err
	}

	stats := b.graph.Statistics()
	b.log.Infow("Graph built",
		"root", rootID,
		"people", stats.TotalPeople,
		"relationships", stats.TotalRelationships,
	)
	return b.graph, nil
}

// Start loads the root and its spouses and seeds the expansion queue, but
// expands nothing. Hosts doing incremental expansion call Start once, then
// ExpandNext per tick, then Enrich.
func (b *Builder) Start(ctx context.Context, rootID, ancestryDepth, descendancyDepth int) error {
	if _, err := b.loadPerson(ctx, rootID); err != nil {
		return errors.Wrapf(err, "loading root person %d", rootID)
	}
	b.loadSpouses(ctx, rootID)

	b.queue = append(b.queue,
		branch{personID: rootID, depth: ancestryDepth, direction: expandAncestry},
		branch{personID: rootID, depth: descendancyDepth, direction: expandDescendancy},
	)
	return nil
}

// ExpandNext pops one branch off the queue and expands it a single step,
// enqueueing the next generation. Returns false when the queue is drained.
func (b *Builder) ExpandNext(ctx context.Context) (bool, error) {
	if len(b.queue) == 0 {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	next := b.queue[0]
	b.queue = b.queue[1:]

	switch next.direction {
	case expandAncestry:
		b.expandAncestry(ctx, next.personID, next.depth)
	case expandDescendancy:
		b.expandDescendancy(ctx, next.personID, next.depth)
	}
	return true, nil
}

// Pending returns the number of branches still queued for expansion
func (b *Builder) Pending() int {
	return len(b.queue)
}

// Enrich runs the close-family passes over the loaded graph: sibling
// cross-linking, aunt/uncle discovery (with their spouses and children
// pulled from the source), and cousin derivation. Order matters: cousins
// compose the parent and sibling edges the earlier passes materialize.
func (b *Builder) Enrich(ctx context.Context) error {
	if err := b.linkSiblings(ctx); err != nil {
		return err
	}
	if err := b.linkAuntsUncles(ctx); err != nil {
		return err
	}
	b.linkCousins()
	return nil
}

// expandAncestry loads both parents of personID, the parents' marriage and
// other spouses, and queues the next generation up. Depth 0 loads nothing:
// recursion stops at personID, whose spouses were loaded when it was.
func (b *Builder) expandAncestry(ctx context.Context, personID, depth int) {
	if depth <= 0 {
		return
	}

	parentages, err := b.source.ParentsOf(ctx, personID)
	if err != nil {
		b.log.Warnw("Abandoning ancestry branch", "person", personID, "error", err)
		return
	}

	for _, pg := range parentages {
		father := b.loadParent(ctx, pg.FatherID, personID, KindFather, pg.FatherKind)
		mother := b.loadParent(ctx, pg.MotherID, personID, KindMother, pg.MotherKind)

		// The parents' own Spouse edge comes from the marriage record that
		// links them, tagged with the marriage year.
		if father && mother {
			b.linkMarriedPair(ctx, pg.FatherID, pg.MotherID)
		}
		if father {
			b.loadSpouses(ctx, pg.FatherID)
			b.queue = append(b.queue, branch{personID: pg.FatherID, depth: depth - 1, direction: expandAncestry})
		}
		if mother {
			b.loadSpouses(ctx, pg.MotherID)
			b.queue = append(b.queue, branch{personID: pg.MotherID, depth: depth - 1, direction: expandAncestry})
		}
	}
}

// loadParent loads one parent and inserts the parent->child lineage edge.
// Returns true if the parent is present in the graph afterwards.
func (b *Builder) loadParent(ctx context.Context, parentID, childID int, kind RelationshipKind, childKind ChildKind) bool {
	if parentID == 0 {
		return false
	}
	if parentID == childID {
		// Documented real occurrence in dirty sources: a person recorded
		// as their own parent.
		b.log.Warnw("Person recorded as own parent", "person", parentID)
		return false
	}
	if _, err := b.loadPerson(ctx, parentID); err != nil {
		return false
	}
	b.addRelationship(parentID, childID, kind, 0, childKind)
	return true
}

// expandDescendancy loads personID's spouses, then every child of every
// marriage. Depth 0 loads nothing. Children's spouses are loaded at the
// child, so the last loaded generation still has its spouses present.
func (b *Builder) expandDescendancy(ctx context.Context, personID, depth int) {
	if depth <= 0 {
		return
	}
	b.loadSpouses(ctx, personID)

	for _, m := range b.marriagesOf(ctx, personID) {
		children, err := b.source.ChildrenOf(ctx, m.FamilyID)
		if err != nil {
			b.log.Warnw("Abandoning descendancy branch", "person", personID, "family", m.FamilyID, "error", err)
			continue
		}
		for _, pg := range children {
			if _, err := b.loadPerson(ctx, pg.ChildID); err != nil {
				continue
			}
			b.linkChildToCouple(m, pg)
			b.loadSpouses(ctx, pg.ChildID)
			b.queue = append(b.queue, branch{personID: pg.ChildID, depth: depth - 1, direction: expandDescendancy})
		}
	}
}

// loadPerson pulls a person from the source once, inserting into the graph.
// Unresolvable references are logged and surfaced so callers abandon the
// branch; they are never fatal to the build.
func (b *Builder) loadPerson(ctx context.Context, id int) (*Person, error) {
	if b.processedPeople[id] {
		return b.graph.Person(id), nil
	}
	p, err := b.source.Person(ctx, id)
	if err != nil {
		b.log.Warnw("Person not resolvable", "person", id, "error", err)
		return nil, err
	}
	b.graph.AddPerson(p)
	b.processedPeople[id] = true
	return p, nil
}

// loadSpouses loads every spouse of id from its marriage records and inserts
// Spouse edges in both directions, tagged with the marriage year.
func (b *Builder) loadSpouses(ctx context.Context, id int) {
	if b.spousesLoaded[id] {
		return
	}
	b.spousesLoaded[id] = true

	for _, m := range b.marriagesOf(ctx, id) {
		spouseID := m.WifeID
		if id == m.WifeID {
			spouseID = m.HusbandID
		}
		if spouseID == 0 || spouseID == id {
			continue
		}
		if _, err := b.loadPerson(ctx, spouseID); err != nil {
			continue
		}
		b.addRelationship(id, spouseID, KindSpouse, m.Married.Year, ChildBiological)
		b.addRelationship(spouseID, id, KindSpouse, m.Married.Year, ChildBiological)
	}
}

// linkMarriedPair inserts the Spouse pair between two already-loaded people
// when a marriage record links them.
func (b *Builder) linkMarriedPair(ctx context.Context, husbandID, wifeID int) {
	for _, m := range b.marriagesOf(ctx, husbandID) {
		if m.WifeID != wifeID {
			continue
		}
		b.addRelationship(husbandID, wifeID, KindSpouse, m.Married.Year, ChildBiological)
		b.addRelationship(wifeID, husbandID, KindSpouse, m.Married.Year, ChildBiological)
		return
	}
}

// marriagesOf merges a person's marriages in both roles. Record sources key
// marriages by husband or wife, and gender in the person record is not
// reliable enough to pick just one side.
func (b *Builder) marriagesOf(ctx context.Context, id int) []Marriage {
	var all []Marriage
	for _, asHusband := range []bool{true, false} {
		marriages, err := b.source.MarriagesOf(ctx, id, asHusband)
		if err != nil {
			b.log.Warnw("Marriage lookup failed", "person", id, "as_husband", asHusband, "error", err)
			continue
		}
		all = append(all, marriages...)
	}
	return all
}

// addRelationship inserts an edge exactly once per (from, to, kind) across
// the whole build. Without this, cyclic family structures (first-cousin
// marriages) trigger duplicate-edge and cache-invalidation storms. Blood
// edges additionally dedup across kinds: the ancestry pass records a parent
// as Mother/Father and the child-side passes as Child, and a pair carries
// at most one blood edge.
func (b *Builder) addRelationship(from, to int, kind RelationshipKind, eventYear int, childKind ChildKind) {
	if kind.IsLineage() && b.graph.HasLineageEdge(from, to) {
		return
	}
	key := relationshipKey{from: from, to: to, kind: kind}
	if b.processedRels[key] {
		return
	}
	b.processedRels[key] = true
	b.graph.AddRelationship(from, to, kind, eventYear, childKind)
}

// linkSiblings loads each person's co-children from the source, then groups
// children by shared parent and cross-links them. Children sharing both
// parents become Sibling pairs, a single shared parent makes a HalfSibling
// pair.
func (b *Builder) linkSiblings(ctx context.Context) error {
	// Ancestry expansion only follows the direct line, so siblings are not
	// in the graph yet; pull them from each person's family of origin.
	for _, p := range b.graph.People() {
		if err := ctx.Err(); err != nil {
			return err
		}
		parentages, err := b.source.ParentsOf(ctx, p.ID)
		if err != nil {
			b.log.Warnw("Parent lookup failed during sibling pass", "person", p.ID, "error", err)
			continue
		}
		for _, pg := range parentages {
			// A sibling group needs a loaded parent to hang on; without one
			// (ancestry depth 0) the co-children stay out of the graph.
			if b.graph.Person(pg.FatherID) == nil && b.graph.Person(pg.MotherID) == nil {
				continue
			}
			children, err := b.source.ChildrenOf(ctx, pg.FamilyID)
			if err != nil {
				continue
			}
			for _, cg := range children {
				if _, err := b.loadPerson(ctx, cg.ChildID); err != nil {
					continue
				}
				b.linkChildToParents(cg)
			}
		}
	}

	parentsOf := make(map[int]map[int]bool) // child -> parent set
	childrenOf := make(map[int][]int)       // parent -> children
	for _, p := range b.graph.People() {
		for _, e := range b.graph.outgoing[p.ID] {
			if !e.Kind.IsLineage() {
				continue
			}
			if parentsOf[e.To] == nil {
				parentsOf[e.To] = make(map[int]bool)
			}
			if !parentsOf[e.To][e.From] {
				parentsOf[e.To][e.From] = true
				childrenOf[e.From] = append(childrenOf[e.From], e.To)
			}
		}
	}

	for _, children := range childrenOf {
		for i := 0; i < len(children); i++ {
			for j := i + 1; j < len(children); j++ {
				a, c := children[i], children[j]
				kind := KindHalfSibling
				if sharedParents(parentsOf[a], parentsOf[c]) >= 2 {
					kind = KindSibling
				}
				b.addRelationship(a, c, kind, 0, ChildBiological)
				b.addRelationship(c, a, kind, 0, ChildBiological)
			}
		}
	}
	return nil
}

// linkChildToParents inserts Child edges from a parentage record's parents to
// its child, for whichever parents are loaded.
func (b *Builder) linkChildToParents(pg Parentage) {
	if pg.FatherID != 0 && b.graph.Person(pg.FatherID) != nil {
		b.addRelationship(pg.FatherID, pg.ChildID, KindChild, 0, pg.FatherKind)
	}
	if pg.MotherID != 0 && b.graph.Person(pg.MotherID) != nil {
		b.addRelationship(pg.MotherID, pg.ChildID, KindChild, 0, pg.MotherKind)
	}
}

func sharedParents(a, c map[int]bool) int {
	shared := 0
	for pid := range a {
		if c[pid] {
			shared++
		}
	}
	return shared
}

// linkAuntsUncles derives AuntUncle/NieceNephew pairs by composing the
// parent and sibling edges already in the graph, and pulls each aunt's or
// uncle's spouses and children from the source so the cousin pass has them.
func (b *Builder) linkAuntsUncles(ctx context.Context) error {
	for _, p := range b.graph.People() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, parentID := range b.parentIDs(p.ID) {
			for _, auntUncleID := range b.siblingIDs(parentID) {
				b.addRelationship(auntUncleID, p.ID, KindAuntUncle, 0, ChildBiological)
				b.addRelationship(p.ID, auntUncleID, KindNieceNephew, 0, ChildBiological)

				b.loadSpouses(ctx, auntUncleID)
				b.loadChildrenOf(ctx, auntUncleID)
			}
		}
	}
	return nil
}

// loadChildrenOf loads every child of id's marriages with Child edges, but
// does not recurse further down.
func (b *Builder) loadChildrenOf(ctx context.Context, id int) {
	for _, m := range b.marriagesOf(ctx, id) {
		children, err := b.source.ChildrenOf(ctx, m.FamilyID)
		if err != nil {
			continue
		}
		for _, pg := range children {
			if _, err := b.loadPerson(ctx, pg.ChildID); err != nil {
				continue
			}
			b.linkChildToCouple(m, pg)
		}
	}
}

// linkChildToCouple inserts Child edges from both spouses of a marriage to
// the child, so co-children read as full siblings later. Edges from a spouse
// the build never loaded are dropped silently by the graph.
func (b *Builder) linkChildToCouple(m Marriage, pg Parentage) {
	if m.HusbandID != 0 && b.graph.Person(m.HusbandID) != nil {
		b.addRelationship(m.HusbandID, pg.ChildID, KindChild, 0, pg.FatherKind)
	}
	if m.WifeID != 0 && b.graph.Person(m.WifeID) != nil {
		b.addRelationship(m.WifeID, pg.ChildID, KindChild, 0, pg.MotherKind)
	}
}

// linkCousins connects each person to the children of their parents'
// siblings with Cousin edges in both directions.
func (b *Builder) linkCousins() {
	for _, p := range b.graph.People() {
		for _, parentID := range b.parentIDs(p.ID) {
			for _, auntUncleID := range b.siblingIDs(parentID) {
				for _, e := range b.graph.outgoing[auntUncleID] {
					if !e.Kind.IsLineage() || e.To == p.ID {
						continue
					}
					b.addRelationship(p.ID, e.To, KindCousin, 0, ChildBiological)
					b.addRelationship(e.To, p.ID, KindCousin, 0, ChildBiological)
				}
			}
		}
	}
}

// parentIDs returns the ids of everyone with a lineage edge into id
func (b *Builder) parentIDs(id int) []int {
	var parents []int
	seen := make(map[int]bool)
	for _, e := range b.graph.incoming[id] {
		if e.Kind.IsLineage() && !seen[e.From] {
			seen[e.From] = true
			parents = append(parents, e.From)
		}
	}
	return parents
}

// siblingIDs returns the ids connected to id by a Sibling or HalfSibling
// edge in either direction.
func (b *Builder) siblingIDs(id int) []int {
	var siblings []int
	seen := make(map[int]bool)
	for _, e := range b.graph.DirectRelationships(id) {
		if e.Kind != KindSibling && e.Kind != KindHalfSibling {
			continue
		}
		other := e.Other(id)
		if !seen[other] {
			seen[other] = true
			siblings = append(siblings, other)
		}
	}
	return siblings
}
