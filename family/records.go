// Package family implements the genealogical relationship graph engine:
// flat person/parentage/marriage records in, kinship labels and bounded
// ancestor/descendant traversals out.
package family

import "fmt"

// Gender of a person as recorded by the source
type Gender int

const (
	GenderNotSet Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "not set"
	}
}

// Date is a year-month-day triple; zero components are unknown.
// Source databases routinely carry partial dates (year only, or nothing).
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether the date is entirely unknown
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	switch {
	case d.IsZero():
		return "unknown"
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// Person is an individual from the record source. Identity (ID) is stable
// and assigned by the source; display attributes may be adjusted by the host.
type Person struct {
	ID        int
	GivenName string
	Surname   string
	Gender    Gender
	Living    bool
	Birth     Date
	Death     Date

	// Relationships holds the outgoing lineage edges appended by the graph
	// for parent/child-producing kinds, for consumers walking a person directly.
	Relationships []*FamilyEdge
}

// FullName returns "Given Surname", tolerating either part being empty
func (p *Person) FullName() string {
	switch {
	case p.GivenName == "":
		return p.Surname
	case p.Surname == "":
		return p.GivenName
	default:
		return p.GivenName + " " + p.Surname
	}
}

// ChildKind distinguishes biological from adopted parent-child records
type ChildKind int

const (
	ChildBiological ChildKind = iota
	ChildAdopted
)

func (k ChildKind) String() string {
	if k == ChildAdopted {
		return "adopted"
	}
	return "biological"
}

// Parentage is a flat source record linking one child to the two parents of
// a family, with the child-relationship kind recorded per parent.
type Parentage struct {
	FamilyID   int
	FatherID   int
	MotherID   int
	ChildID    int
	FatherKind ChildKind
	MotherKind ChildKind
}

// Marriage is a flat source record for one family's spousal union.
// Zero dates are unknown; a set Divorced or Annulled date ends the union.
type Marriage struct {
	FamilyID  int
	HusbandID int
	WifeID    int
	Married   Date
	Annulled  Date
	Divorced  Date
}
