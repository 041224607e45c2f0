// Package memory provides an in-memory RecordSource over plain record
// slices. Tests use it heavily; hosts that already hold their records in
// memory can feed the engine through it directly.
package memory

import (
	"context"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
	"github.com/shuskey/Timeline-Traveler-sub000/family"
)

// Source implements family.RecordSource over record slices
type Source struct {
	people     map[int]*family.Person
	parentages []family.Parentage
	marriages  []family.Marriage
}

// New builds a source from flat record slices. People are copied; later
// mutations of the input slice do not leak into the source.
func New(people []family.Person, parentages []family.Parentage, marriages []family.Marriage) *Source {
	s := &Source{
		people:     make(map[int]*family.Person, len(people)),
		parentages: parentages,
		marriages:  marriages,
	}
	for i := range people {
		p := people[i]
		s.people[p.ID] = &p
	}
	return s
}

// Person returns the person with the given id. Each call hands out a fresh
// copy: graphs append edges to the persons they hold, and two builds over
// one source must not share structs.
func (s *Source) Person(_ context.Context, id int) (*family.Person, error) {
	p, ok := s.people[id]
	if !ok {
		return nil, errors.NewNotFoundError("person %d", id)
	}
	out := *p
	return &out, nil
}

// ParentsOf returns the parentage records naming personID as the child
func (s *Source) ParentsOf(_ context.Context, personID int) ([]family.Parentage, error) {
	var result []family.Parentage
	for _, pg := range s.parentages {
		if pg.ChildID == personID {
			result = append(result, pg)
		}
	}
	return result, nil
}

// MarriagesOf returns the marriage records for personID in the given role
func (s *Source) MarriagesOf(_ context.Context, personID int, asHusband bool) ([]family.Marriage, error) {
	var result []family.Marriage
	for _, m := range s.marriages {
		if asHusband && m.HusbandID == personID {
			result = append(result, m)
		}
		if !asHusband && m.WifeID == personID {
			result = append(result, m)
		}
	}
	return result, nil
}

// ChildrenOf returns the parentage records belonging to familyID
func (s *Source) ChildrenOf(_ context.Context, familyID int) ([]family.Parentage, error) {
	var result []family.Parentage
	for _, pg := range s.parentages {
		if pg.FamilyID == familyID {
			result = append(result, pg)
		}
	}
	return result, nil
}
