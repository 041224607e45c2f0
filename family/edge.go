package family

// RelationshipKind types a directed family edge.
//
// Lineage kinds (Mother, Father, Child) all point parent -> child; Mother and
// Father record which parent the edge's From is, Child records descent loaded
// from the child side of a family. The remaining kinds are materialized by
// enrichment passes or the fallback algorithm.
type RelationshipKind int

const (
	KindRelative RelationshipKind = iota
	KindMother
	KindFather
	KindChild
	KindSpouse
	KindSibling
	KindHalfSibling
	KindGrandParent
	KindGrandChild
	KindAuntUncle
	KindNieceNephew
	KindCousin
	KindSecondCousin
	KindParentInLaw
	KindChildInLaw
	KindSiblingInLaw
	KindStepParent
)

var kindNames = map[RelationshipKind]string{
	KindRelative:     "relative",
	KindMother:       "mother",
	KindFather:       "father",
	KindChild:        "child",
	KindSpouse:       "spouse",
	KindSibling:      "sibling",
	KindHalfSibling:  "half-sibling",
	KindGrandParent:  "grandparent",
	KindGrandChild:   "grandchild",
	KindAuntUncle:    "aunt/uncle",
	KindNieceNephew:  "niece/nephew",
	KindCousin:       "cousin",
	KindSecondCousin: "second cousin",
	KindParentInLaw:  "parent-in-law",
	KindChildInLaw:   "child-in-law",
	KindSiblingInLaw: "sibling-in-law",
	KindStepParent:   "step-parent",
}

func (k RelationshipKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "relative"
}

// IsLineage reports whether the kind is a parent->child blood edge.
// These are the edges ancestor/descendant traversal and path
// interpretation walk.
func (k RelationshipKind) IsLineage() bool {
	return k == KindMother || k == KindFather || k == KindChild
}

// FamilyEdge is a directed, typed relation between two people.
// EventYear tags Spouse edges with the marriage year; ChildKind tags
// lineage edges with the biological/adopted flag from the source record.
type FamilyEdge struct {
	From      int
	To        int
	Kind      RelationshipKind
	EventYear int
	ChildKind ChildKind
}

// Other returns the endpoint that is not id
func (e *FamilyEdge) Other(id int) int {
	if e.From == id {
		return e.To
	}
	return e.From
}
