package family

import "strings"

// Kinship term resolution: pure mapping from a relationship kind, a traversal
// direction, and the gender of the party being described to a label string.
// Both the graph query path and the record-backed fallback resolve through
// these functions so their vocabulary cannot drift.

// Generic labels for relationships that match no known shape
const (
	LabelSelf     = "self"
	LabelRelative = "relative"
)

func byGender(g Gender, male, female, neutral string) string {
	switch g {
	case GenderMale:
		return male
	case GenderFemale:
		return female
	default:
		return neutral
	}
}

// KinshipTerm returns the label for described, given a direct edge of the
// given kind between described and the other party. describedIsFrom reports
// whether described is the edge's From endpoint; the inverse read of an edge
// is a different label (a Mother edge read backward is "son" or "daughter").
func KinshipTerm(kind RelationshipKind, describedIsFrom bool, described *Person) string {
	g := GenderNotSet
	if described != nil {
		g = described.Gender
	}

	switch kind {
	case KindMother:
		if describedIsFrom {
			return "mother"
		}
		return byGender(g, "son", "daughter", "child")
	case KindFather:
		if describedIsFrom {
			return "father"
		}
		return byGender(g, "son", "daughter", "child")
	case KindChild:
		// Child edges point parent -> child, so the From endpoint is the parent.
		if describedIsFrom {
			return byGender(g, "father", "mother", "parent")
		}
		return byGender(g, "son", "daughter", "child")
	case KindSpouse:
		return byGender(g, "husband", "wife", "spouse")
	case KindSibling:
		return byGender(g, "brother", "sister", "sibling")
	case KindHalfSibling:
		return byGender(g, "half-brother", "half-sister", "half-sibling")
	case KindGrandParent:
		if describedIsFrom {
			return byGender(g, "grandfather", "grandmother", "grandparent")
		}
		return byGender(g, "grandson", "granddaughter", "grandchild")
	case KindGrandChild:
		if describedIsFrom {
			return byGender(g, "grandson", "granddaughter", "grandchild")
		}
		return byGender(g, "grandfather", "grandmother", "grandparent")
	case KindAuntUncle:
		if describedIsFrom {
			return byGender(g, "uncle", "aunt", "aunt/uncle")
		}
		return byGender(g, "nephew", "niece", "niece/nephew")
	case KindNieceNephew:
		if describedIsFrom {
			return byGender(g, "nephew", "niece", "niece/nephew")
		}
		return byGender(g, "uncle", "aunt", "aunt/uncle")
	case KindCousin:
		return "cousin"
	case KindSecondCousin:
		return "second cousin"
	case KindParentInLaw:
		if describedIsFrom {
			return byGender(g, "father-in-law", "mother-in-law", "parent-in-law")
		}
		return byGender(g, "son-in-law", "daughter-in-law", "child-in-law")
	case KindChildInLaw:
		if describedIsFrom {
			return byGender(g, "son-in-law", "daughter-in-law", "child-in-law")
		}
		return byGender(g, "father-in-law", "mother-in-law", "parent-in-law")
	case KindSiblingInLaw:
		return byGender(g, "brother-in-law", "sister-in-law", "sibling-in-law")
	case KindStepParent:
		if describedIsFrom {
			return byGender(g, "stepfather", "stepmother", "step-parent")
		}
		return byGender(g, "stepson", "stepdaughter", "step-child")
	default:
		return LabelRelative
	}
}

// AncestorLabel returns the label for an ancestor `generations` above the
// other party: parent, grandparent, great-grandparent, ...
func AncestorLabel(generations int, g Gender) string {
	switch {
	case generations <= 0:
		return LabelRelative
	case generations == 1:
		return byGender(g, "father", "mother", "parent")
	default:
		base := byGender(g, "grandfather", "grandmother", "grandparent")
		return strings.Repeat("great-", generations-2) + base
	}
}

// DescendantLabel returns the label for a descendant `generations` below the
// other party: child, grandchild, great-grandchild, ...
func DescendantLabel(generations int, g Gender) string {
	switch {
	case generations <= 0:
		return LabelRelative
	case generations == 1:
		return byGender(g, "son", "daughter", "child")
	default:
		base := byGender(g, "grandson", "granddaughter", "grandchild")
		return strings.Repeat("great-", generations-2) + base
	}
}
