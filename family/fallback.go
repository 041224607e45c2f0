package family

import (
	"context"

	"go.uber.org/zap"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
)

// defaultMaxGenerations is the hard recursion ceiling for record walks.
// Together with the visited sets it guards against malformed cyclic source
// data (a person recorded as their own parent is a documented occurrence).
const defaultMaxGenerations = 20

// RecordResolver computes kinship labels straight from the record source,
// without a graph. It is the fallback when no graph has been built, and the
// permanent correctness oracle for the graph-based result: the two may
// detect different relationships, but they share one vocabulary through the
// kinship term functions.
type RecordResolver struct {
	source         RecordSource
	maxGenerations int
	log            *zap.SugaredLogger
}

// NewRecordResolver creates a record-backed resolver over the given source
func NewRecordResolver(source RecordSource, log *zap.SugaredLogger) *RecordResolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &RecordResolver{
		source:         source,
		maxGenerations: defaultMaxGenerations,
		log:            log.Named("family.fallback"),
	}
}

// RelationshipBetween returns the kinship label describing person a relative
// to person b, testing in order: identity, descendant, ancestor, sibling,
// spouse, in-law, aunt/uncle, niece/nephew, cousin. First match wins;
// anything else is the generic label.
func (r *RecordResolver) RelationshipBetween(ctx context.Context, aID, bID int) (string, error) {
	pa, err := r.source.Person(ctx, aID)
	if err != nil {
		return "", errors.Wrapf(err, "person %d", aID)
	}
	if _, err := r.source.Person(ctx, bID); err != nil {
		return "", errors.Wrapf(err, "person %d", bID)
	}

	if aID == bID {
		return LabelSelf, nil
	}

	if d := r.ancestorDistance(ctx, bID, aID); d > 0 {
		// b is a's ancestor, so a descends from b.
		return DescendantLabel(d, pa.Gender), nil
	}
	if d := r.ancestorDistance(ctx, aID, bID); d > 0 {
		return AncestorLabel(d, pa.Gender), nil
	}

	if shared := r.sharedParentCount(ctx, aID, bID); shared >= 2 {
		return KinshipTerm(KindSibling, true, pa), nil
	} else if shared == 1 {
		return KinshipTerm(KindHalfSibling, true, pa), nil
	}

	if r.isSpouse(ctx, aID, bID) {
		return KinshipTerm(KindSpouse, true, pa), nil
	}

	if label, ok := r.inLawLabel(ctx, aID, bID, pa); ok {
		return label, nil
	}

	// a sibling of one of b's parents: a is b's aunt or uncle.
	if r.contains(r.parentSiblings(ctx, bID), aID) {
		return KinshipTerm(KindAuntUncle, true, pa), nil
	}
	if r.contains(r.parentSiblings(ctx, aID), bID) {
		return KinshipTerm(KindNieceNephew, true, pa), nil
	}

	if r.areCousins(ctx, aID, bID) {
		return KinshipTerm(KindCousin, true, pa), nil
	}

	return LabelRelative, nil
}

// ancestorDistance returns how many generations above personID ancestorID
// sits, or 0 if it is not an ancestor. Breadth-first over parent records
// with a visited set and the recursion ceiling as independent safety nets.
func (r *RecordResolver) ancestorDistance(ctx context.Context, ancestorID, personID int) int {
	visited := map[int]bool{personID: true}
	frontier := []int{personID}
	for depth := 1; depth <= r.maxGenerations && len(frontier) > 0; depth++ {
		var next []int
		for _, id := range frontier {
			for _, parentID := range r.parentIDs(ctx, id) {
				if parentID == ancestorID {
					return depth
				}
				if !visited[parentID] {
					visited[parentID] = true
					next = append(next, parentID)
				}
			}
		}
		frontier = next
	}
	return 0
}

// parentIDs returns the parent ids recorded for id. Source errors degrade to
// an empty set: a lookup failure never aborts a label computation.
func (r *RecordResolver) parentIDs(ctx context.Context, id int) []int {
	parentages, err := r.source.ParentsOf(ctx, id)
	if err != nil {
		r.log.Debugw("Parent lookup failed", "person", id, "error", err)
		return nil
	}
	var parents []int
	for _, pg := range parentages {
		// Self-parent records would otherwise recurse forever.
		if pg.FatherID != 0 && pg.FatherID != id {
			parents = append(parents, pg.FatherID)
		}
		if pg.MotherID != 0 && pg.MotherID != id {
			parents = append(parents, pg.MotherID)
		}
	}
	return parents
}

func (r *RecordResolver) sharedParentCount(ctx context.Context, aID, bID int) int {
	aParents := r.parentIDs(ctx, aID)
	bParents := r.parentIDs(ctx, bID)
	seen := make(map[int]bool, len(aParents))
	for _, id := range aParents {
		seen[id] = true
	}
	shared := 0
	for _, id := range bParents {
		if seen[id] {
			shared++
			seen[id] = false
		}
	}
	return shared
}

// siblingIDs returns everyone sharing at least one parent with id
func (r *RecordResolver) siblingIDs(ctx context.Context, id int) []int {
	var siblings []int
	seen := map[int]bool{id: true}
	parentages, err := r.source.ParentsOf(ctx, id)
	if err != nil {
		r.log.Debugw("Parent lookup failed", "person", id, "error", err)
		return nil
	}
	for _, pg := range parentages {
		children, err := r.source.ChildrenOf(ctx, pg.FamilyID)
		if err != nil {
			continue
		}
		for _, child := range children {
			if !seen[child.ChildID] {
				seen[child.ChildID] = true
				siblings = append(siblings, child.ChildID)
			}
		}
	}
	return siblings
}

// spouseIDs returns everyone married to id, scanning both marriage roles
func (r *RecordResolver) spouseIDs(ctx context.Context, id int) []int {
	var spouses []int
	seen := map[int]bool{id: true}
	for _, asHusband := range []bool{true, false} {
		marriages, err := r.source.MarriagesOf(ctx, id, asHusband)
		if err != nil {
			r.log.Debugw("Marriage lookup failed", "person", id, "error", err)
			continue
		}
		for _, m := range marriages {
			other := m.WifeID
			if id == m.WifeID {
				other = m.HusbandID
			}
			if other != 0 && !seen[other] {
				seen[other] = true
				spouses = append(spouses, other)
			}
		}
	}
	return spouses
}

func (r *RecordResolver) isSpouse(ctx context.Context, aID, bID int) bool {
	return r.contains(r.spouseIDs(ctx, aID), bID)
}

// inLawLabel covers the in-law shapes: spouse's parent, spouse's sibling,
// and sibling's spouse.
func (r *RecordResolver) inLawLabel(ctx context.Context, aID, bID int, pa *Person) (string, bool) {
	for _, spouseID := range r.spouseIDs(ctx, aID) {
		// b is a's spouse's parent: a married into b's family.
		if r.contains(r.parentIDs(ctx, spouseID), bID) {
			return KinshipTerm(KindChildInLaw, true, pa), true
		}
		if r.contains(r.siblingIDs(ctx, spouseID), bID) {
			return KinshipTerm(KindSiblingInLaw, true, pa), true
		}
	}
	// a is the parent of b's spouse.
	for _, spouseID := range r.spouseIDs(ctx, bID) {
		if r.contains(r.parentIDs(ctx, spouseID), aID) {
			return KinshipTerm(KindParentInLaw, true, pa), true
		}
	}
	// b married one of a's siblings.
	for _, siblingID := range r.siblingIDs(ctx, aID) {
		if r.contains(r.spouseIDs(ctx, siblingID), bID) {
			return KinshipTerm(KindSiblingInLaw, true, pa), true
		}
	}
	return "", false
}

// parentSiblings returns the siblings of id's parents
func (r *RecordResolver) parentSiblings(ctx context.Context, id int) []int {
	var result []int
	seen := make(map[int]bool)
	for _, parentID := range r.parentIDs(ctx, id) {
		for _, siblingID := range r.siblingIDs(ctx, parentID) {
			if !seen[siblingID] {
				seen[siblingID] = true
				result = append(result, siblingID)
			}
		}
	}
	return result
}

// areCousins reports whether a parent of a and a parent of b are siblings
func (r *RecordResolver) areCousins(ctx context.Context, aID, bID int) bool {
	bParents := r.parentIDs(ctx, bID)
	for _, aParent := range r.parentIDs(ctx, aID) {
		siblings := r.siblingIDs(ctx, aParent)
		for _, bParent := range bParents {
			if r.contains(siblings, bParent) {
				return true
			}
		}
	}
	return false
}

func (r *RecordResolver) contains(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
