package rootsmagic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
	"github.com/shuskey/Timeline-Traveler-sub000/family"
	travelertest "github.com/shuskey/Timeline-Traveler-sub000/internal/testing"
)

// seedTestSource loads a minimal two-parent, one-child family:
// Kevin (1) and Anna (2) married 1978, child Sara (3) adopted by the mother.
func seedTestSource(t *testing.T) *Source {
	t.Helper()
	db := travelertest.CreateRootsMagicTestDB(t)

	stmts := []string{
		`INSERT INTO PersonTable (PersonID, Sex, Living) VALUES (1, 0, 1), (2, 1, 0), (3, 1, 1)`,
		`INSERT INTO NameTable (OwnerID, Given, Surname, IsPrimary) VALUES
			(1, 'Kevin', 'Husky', 1),
			(1, 'Kev', 'Husky', 0),
			(2, 'Anna', 'Husky', 1),
			(3, 'Sara', 'Husky', 1)`,
		`INSERT INTO FamilyTable (FamilyID, FatherID, MotherID) VALUES (10, 1, 2)`,
		`INSERT INTO ChildTable (ChildID, FamilyID, RelFather, RelMother) VALUES (3, 10, 0, 1)`,
		`INSERT INTO EventTable (EventType, OwnerType, OwnerID, Date) VALUES
			(1, 0, 1, 'D.+19520815..+00000000..'),
			(2, 0, 2, 'D.+20110300..+00000000..'),
			(300, 1, 10, 'D.+19780604..+00000000..')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return NewFromDB(db, nil)
}

func TestPerson(t *testing.T) {
	source := seedTestSource(t)
	ctx := context.Background()

	p, err := source.Person(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Kevin Husky", p.FullName())
	assert.Equal(t, family.GenderMale, p.Gender)
	assert.True(t, p.Living)
	assert.Equal(t, family.Date{Year: 1952, Month: 8, Day: 15}, p.Birth)
	assert.True(t, p.Death.IsZero())

	p, err = source.Person(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, family.GenderFemale, p.Gender)
	assert.False(t, p.Living)
	assert.Equal(t, family.Date{Year: 2011, Month: 3}, p.Death)
}

func TestPersonWithoutName(t *testing.T) {
	source := seedTestSource(t)
	_, err := source.db.Exec(`INSERT INTO PersonTable (PersonID, Sex) VALUES (4, 2)`)
	require.NoError(t, err)

	p, err := source.Person(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "", p.FullName())
	assert.Equal(t, family.GenderNotSet, p.Gender)
}

func TestPersonNotFound(t *testing.T) {
	source := seedTestSource(t)

	_, err := source.Person(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestParentsOf(t *testing.T) {
	source := seedTestSource(t)

	parentages, err := source.ParentsOf(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, parentages, 1)

	pg := parentages[0]
	assert.Equal(t, 10, pg.FamilyID)
	assert.Equal(t, 1, pg.FatherID)
	assert.Equal(t, 2, pg.MotherID)
	assert.Equal(t, family.ChildBiological, pg.FatherKind)
	assert.Equal(t, family.ChildAdopted, pg.MotherKind)

	parentages, err = source.ParentsOf(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, parentages)
}

func TestChildrenOf(t *testing.T) {
	source := seedTestSource(t)

	children, err := source.ChildrenOf(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, 3, children[0].ChildID)
}

func TestMarriagesOf(t *testing.T) {
	source := seedTestSource(t)
	ctx := context.Background()

	marriages, err := source.MarriagesOf(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, marriages, 1)

	m := marriages[0]
	assert.Equal(t, 10, m.FamilyID)
	assert.Equal(t, 1, m.HusbandID)
	assert.Equal(t, 2, m.WifeID)
	assert.Equal(t, family.Date{Year: 1978, Month: 6, Day: 4}, m.Married)
	assert.True(t, m.Divorced.IsZero())

	// Kevin never appears in the wife role.
	marriages, err = source.MarriagesOf(ctx, 1, false)
	require.NoError(t, err)
	assert.Empty(t, marriages)

	marriages, err = source.MarriagesOf(ctx, 2, false)
	require.NoError(t, err)
	assert.Len(t, marriages, 1)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(t.TempDir()+"/does-not-exist.rmtree", nil)
	require.Error(t, err)
}
