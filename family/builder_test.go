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

// Three-generation test family:
//
//	George (100) = Martha (101)
//	    Adam (1)         Frank (6) = Gina (7)
//	  = Beth (2)             Hank (8)
//	  Carl (3), Dora (4), Evan (5)
func newTestSource() *memory.Source {
	people := []family.Person{
		{ID: 1, GivenName: "Adam", Surname: "Husky", Gender: family.GenderMale},
		{ID: 2, GivenName: "Beth", Surname: "Husky", Gender: family.GenderFemale},
		{ID: 3, GivenName: "Carl", Surname: "Husky", Gender: family.GenderMale},
		{ID: 4, GivenName: "Dora", Surname: "Husky", Gender: family.GenderFemale},
		{ID: 5, GivenName: "Evan", Surname: "Husky", Gender: family.GenderMale},
		{ID: 6, GivenName: "Frank", Surname: "Husky", Gender: family.GenderMale},
		{ID: 7, GivenName: "Gina", Surname: "Husky", Gender: family.GenderFemale},
		{ID: 8, GivenName: "Hank", Surname: "Husky", Gender: family.GenderMale},
		{ID: 100, GivenName: "George", Surname: "Husky", Gender: family.GenderMale},
		{ID: 101, GivenName: "Martha", Surname: "Husky", Gender: family.GenderFemale},
	}
	parentages := []family.Parentage{
		{FamilyID: 10, FatherID: 100, MotherID: 101, ChildID: 1},
		{FamilyID: 10, FatherID: 100, MotherID: 101, ChildID: 6},
		{FamilyID: 20, FatherID: 1, MotherID: 2, ChildID: 3},
		{FamilyID: 20, FatherID: 1, MotherID: 2, ChildID: 4},
		{FamilyID: 20, FatherID: 1, MotherID: 2, ChildID: 5},
		{FamilyID: 30, FatherID: 6, MotherID: 7, ChildID: 8},
	}
	marriages := []family.Marriage{
		{FamilyID: 10, HusbandID: 100, WifeID: 101, Married: family.Date{Year: 1950}},
		{FamilyID: 20, HusbandID: 1, WifeID: 2, Married: family.Date{Year: 1978}},
		{FamilyID: 30, HusbandID: 6, WifeID: 7, Married: family.Date{Year: 1982}},
	}
	return memory.New(people, parentages, marriages)
}

func buildTestGraph(t *testing.T) *family.Graph {
	t.Helper()
	builder := family.NewBuilder(newTestSource(), nil)
	graph, err := builder.Build(context.Background(), 3, 2, 2)
	require.NoError(t, err)
	return graph
}

func TestBuildLoadsWholeFamily(t *testing.T) {
	graph := buildTestGraph(t)
	assert.Len(t, graph.People(), 10)
}

func TestBuildRelationshipLabels(t *testing.T) {
	graph := buildTestGraph(t)

	tests := []struct {
		name string
		a, b int
		want string
	}{
		{"child of father", 3, 1, "son"},
		{"father of child", 1, 3, "father"},
		{"wife of husband", 2, 1, "wife"},
		{"husband of wife", 1, 2, "husband"},
		{"sister", 4, 3, "sister"},
		{"self", 3, 3, family.LabelSelf},
		{"grandfather", 100, 3, "grandfather"},
		{"grandson", 3, 101, "grandson"},
		{"uncle", 6, 3, "uncle"},
		{"nephew", 3, 6, "nephew"},
		{"aunt by marriage stays generic", 7, 3, "2-degree relative"},
		{"cousin", 8, 3, "cousin"},
		{"cousin reverse", 3, 8, "cousin"},
		{"daughter in law", 2, 100, "daughter-in-law"},
		{"mother in law", 101, 2, "mother-in-law"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := graph.RelationshipBetween(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

// Ancestry records a parent as Mother/Father and the child-side passes as
// Child; a pair must still end up with a single blood edge between them.
func TestBuildSingleBloodEdgePerPair(t *testing.T) {
	graph := buildTestGraph(t)

	for _, p := range graph.People() {
		counts := make(map[int]int)
		for _, e := range graph.DirectRelationships(p.ID) {
			if e.From == p.ID && e.Kind.IsLineage() {
				counts[e.To]++
			}
		}
		for to, n := range counts {
			assert.LessOrEqual(t, n, 1, "pair (%d,%d) holds %d blood edges", p.ID, to, n)
		}
	}
}

// Depth 0 stops recursion at the root; only the root and its spouses load.
func TestBuildDepthZeroLoadsOnlyRootAndSpouses(t *testing.T) {
	ctx := context.Background()

	graph, err := family.NewBuilder(newTestSource(), nil).Build(ctx, 1, 0, 0)
	require.NoError(t, err)
	ids := peopleIDs(graph)
	assert.Equal(t, []int{1, 2}, ids)

	// An unmarried root loads alone.
	graph, err = family.NewBuilder(newTestSource(), nil).Build(ctx, 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, peopleIDs(graph))
}

// Each depth level loads exactly one more generation.
func TestBuildDepthBoundsGenerations(t *testing.T) {
	ctx := context.Background()

	graph, err := family.NewBuilder(newTestSource(), nil).Build(ctx, 3, 1, 0)
	require.NoError(t, err)
	assert.Nil(t, graph.Person(100), "grandparent loaded despite ancestry depth 1")
	assert.NotNil(t, graph.Person(1))
	assert.NotNil(t, graph.Person(2))
}

func TestRepeatedBuildsDoNotShareRecords(t *testing.T) {
	ctx := context.Background()
	source := newTestSource()

	first, err := family.NewBuilder(source, nil).Build(ctx, 3, 2, 2)
	require.NoError(t, err)
	second, err := family.NewBuilder(source, nil).Build(ctx, 3, 2, 2)
	require.NoError(t, err)

	require.NotEmpty(t, first.Person(1).Relationships)
	assert.Equal(t, len(first.Person(1).Relationships), len(second.Person(1).Relationships))
}

func peopleIDs(g *family.Graph) []int {
	var ids []int
	for _, p := range g.People() {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestBuildMissingRootFails(t *testing.T) {
	builder := family.NewBuilder(newTestSource(), nil)
	_, err := builder.Build(context.Background(), 999, 2, 2)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestBuildHalfSiblings(t *testing.T) {
	// Father 1 has a child with each of 2 and 3.
	people := []family.Person{
		{ID: 1, GivenName: "Adam", Gender: family.GenderMale},
		{ID: 2, GivenName: "Beth", Gender: family.GenderFemale},
		{ID: 3, GivenName: "Cora", Gender: family.GenderFemale},
		{ID: 4, GivenName: "Dora", Gender: family.GenderFemale},
		{ID: 5, GivenName: "Evan", Gender: family.GenderMale},
	}
	parentages := []family.Parentage{
		{FamilyID: 11, FatherID: 1, MotherID: 2, ChildID: 4},
		{FamilyID: 12, FatherID: 1, MotherID: 3, ChildID: 5},
	}
	marriages := []family.Marriage{
		{FamilyID: 11, HusbandID: 1, WifeID: 2},
		{FamilyID: 12, HusbandID: 1, WifeID: 3},
	}
	source := memory.New(people, parentages, marriages)

	builder := family.NewBuilder(source, nil)
	graph, err := builder.Build(context.Background(), 1, 0, 1)
	require.NoError(t, err)

	label, err := graph.RelationshipBetween(4, 5)
	require.NoError(t, err)
	assert.Equal(t, "half-sister", label)

	label, err = graph.RelationshipBetween(5, 4)
	require.NoError(t, err)
	assert.Equal(t, "half-brother", label)
}

func TestIncrementalExpansion(t *testing.T) {
	ctx := context.Background()
	builder := family.NewBuilder(newTestSource(), nil)

	require.NoError(t, builder.Start(ctx, 3, 2, 2))
	assert.Equal(t, 2, builder.Pending())

	steps := 0
	for {
		more, err := builder.ExpandNext(ctx)
		require.NoError(t, err)
		if !more {
			break
		}
		steps++
	}
	assert.Greater(t, steps, 2)
	require.NoError(t, builder.Enrich(ctx))

	// Stepwise expansion lands on the same graph as a one-shot build.
	full := buildTestGraph(t)
	assert.Len(t, builder.Graph().People(), len(full.People()))
}

func TestExpandNextHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	builder := family.NewBuilder(newTestSource(), nil)
	require.NoError(t, builder.Start(ctx, 3, 2, 2))

	cancel()
	_, err := builder.ExpandNext(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// The graph search and the record-backed fallback are independent algorithms
// over the same records; for close family they must land on the same label.
func TestGraphAndFallbackAgree(t *testing.T) {
	source := newTestSource()
	graph := buildTestGraph(t)
	fallback := family.NewRecordResolver(source, nil)
	ctx := context.Background()

	people := []int{3, 1, 2, 100, 101}
	for _, a := range people {
		for _, b := range people {
			graphLabel, err := graph.RelationshipBetween(a, b)
			require.NoError(t, err)
			recordLabel, err := fallback.RelationshipBetween(ctx, a, b)
			require.NoError(t, err)
			assert.Equal(t, recordLabel, graphLabel, "between %d and %d", a, b)
		}
	}
}

func TestSelectResolver(t *testing.T) {
	source := newTestSource()
	graph := buildTestGraph(t)
	ctx := context.Background()

	withGraph := family.SelectResolver(graph, source, nil)
	label, err := withGraph.RelationshipBetween(ctx, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "son", label)

	withoutGraph := family.SelectResolver(nil, source, nil)
	label, err = withoutGraph.RelationshipBetween(ctx, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "son", label)
}
