package family_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
	"github.com/shuskey/Timeline-Traveler-sub000/family"
	"github.com/shuskey/Timeline-Traveler-sub000/provider/memory"
)

func TestRecordResolverLabels(t *testing.T) {
	resolver := family.NewRecordResolver(newTestSource(), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		a, b int
		want string
	}{
		{"self", 3, 3, family.LabelSelf},
		{"son", 3, 1, "son"},
		{"mother", 2, 3, "mother"},
		{"grandson", 3, 100, "grandson"},
		{"grandmother", 101, 3, "grandmother"},
		{"brother", 5, 3, "brother"},
		{"wife", 2, 1, "wife"},
		{"daughter in law", 2, 100, "daughter-in-law"},
		{"father in law", 100, 2, "father-in-law"},
		{"sister in law", 2, 6, "sister-in-law"},
		{"uncle", 6, 3, "uncle"},
		{"niece", 4, 6, "niece"},
		{"cousin", 8, 3, "cousin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := resolver.RelationshipBetween(ctx, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestRecordResolverHalfSiblings(t *testing.T) {
	people := []family.Person{
		{ID: 1, Gender: family.GenderMale},
		{ID: 2, Gender: family.GenderFemale},
		{ID: 3, Gender: family.GenderFemale},
		{ID: 4, Gender: family.GenderFemale},
		{ID: 5, Gender: family.GenderMale},
	}
	parentages := []family.Parentage{
		{FamilyID: 11, FatherID: 1, MotherID: 2, ChildID: 4},
		{FamilyID: 12, FatherID: 1, MotherID: 3, ChildID: 5},
	}
	resolver := family.NewRecordResolver(memory.New(people, parentages, nil), nil)

	label, err := resolver.RelationshipBetween(context.Background(), 4, 5)
	require.NoError(t, err)
	assert.Equal(t, "half-sister", label)
}

func TestRecordResolverUnrelated(t *testing.T) {
	people := []family.Person{
		{ID: 1, Gender: family.GenderMale},
		{ID: 2, Gender: family.GenderFemale},
	}
	resolver := family.NewRecordResolver(memory.New(people, nil, nil), nil)

	label, err := resolver.RelationshipBetween(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, family.LabelRelative, label)
}

func TestRecordResolverUnknownPerson(t *testing.T) {
	resolver := family.NewRecordResolver(newTestSource(), nil)

	_, err := resolver.RelationshipBetween(context.Background(), 999, 1)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = resolver.RelationshipBetween(context.Background(), 1, 999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

// Dirty sources hold people recorded as their own parent and two-person
// parent cycles; the resolver must terminate and degrade to the generic
// label instead of recursing forever.
func TestRecordResolverSurvivesCyclicRecords(t *testing.T) {
	people := []family.Person{
		{ID: 1, Gender: family.GenderMale},
		{ID: 2, Gender: family.GenderMale},
		{ID: 3, Gender: family.GenderFemale},
	}
	parentages := []family.Parentage{
		// 1 is his own father; 2 and 3 are each other's parents.
		{FamilyID: 91, FatherID: 1, ChildID: 1},
		{FamilyID: 92, FatherID: 2, ChildID: 3},
		{FamilyID: 93, MotherID: 3, ChildID: 2},
	}
	resolver := family.NewRecordResolver(memory.New(people, parentages, nil), nil)
	ctx := context.Background()

	label, err := resolver.RelationshipBetween(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, family.LabelRelative, label)

	// The 2<->3 loop makes each an ancestor of the other; the first check
	// to fire wins, the walk just has to come back.
	label, err = resolver.RelationshipBetween(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "son", label)
}
