// Package rootsmagic reads genealogy records out of a RootsMagic SQLite
// database (.rmgc/.rmtree) and exposes them as a family.RecordSource.
// The database is opened read-only; RootsMagic remains the owner of the file.
package rootsmagic

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
	"github.com/shuskey/Timeline-Traveler-sub000/family"
)

// RootsMagic EventTable fact types used by the reader
const (
	factBirth     = 1
	factDeath     = 2
	factMarriage  = 300
	factAnnulment = 301
	factDivorce   = 302
)

// EventTable owner types
const (
	ownerPerson = 0
	ownerFamily = 1
)

// Source implements family.RecordSource over a RootsMagic database
type Source struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open opens the RootsMagic database at path read-only
func Open(path string, log *zap.SugaredLogger) (*Source, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("provider.rootsmagic")

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "setting busy timeout")
	}
	// Fails fast on a missing or non-RootsMagic file instead of on first query.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	log.Infow("RootsMagic database opened", "path", path)
	return &Source{db: db, log: log}, nil
}

// NewFromDB wraps an already-open database handle; the caller keeps
// ownership of the handle. Used by tests seeding an in-memory schema.
func NewFromDB(db *sql.DB, log *zap.SugaredLogger) *Source {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Source{db: db, log: log.Named("provider.rootsmagic")}
}

// Close releases the database handle
func (s *Source) Close() error {
	return s.db.Close()
}

// Person loads one person: sex and living flag from PersonTable, the primary
// name from NameTable, and birth/death dates from the person's events.
func (s *Source) Person(ctx context.Context, id int) (*family.Person, error) {
	var sex, living int
	var given, surname sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT p.Sex, p.Living, n.Given, n.Surname
		FROM PersonTable p
		LEFT JOIN NameTable n ON n.OwnerID = p.PersonID AND n.IsPrimary = 1
		WHERE p.PersonID = ?
	`, id).Scan(&sex, &living, &given, &surname)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("person %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "querying person %d", id)
	}

	p := &family.Person{
		ID:        id,
		GivenName: given.String,
		Surname:   surname.String,
		Gender:    decodeSex(sex),
		Living:    living != 0,
	}
	p.Birth = s.eventDate(ctx, ownerPerson, id, factBirth)
	p.Death = s.eventDate(ctx, ownerPerson, id, factDeath)
	return p, nil
}

// ParentsOf returns the parentage records naming personID as the child
func (s *Source) ParentsOf(ctx context.Context, personID int) ([]family.Parentage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.FamilyID, f.FatherID, f.MotherID, c.ChildID, c.RelFather, c.RelMother
		FROM ChildTable c
		JOIN FamilyTable f ON f.FamilyID = c.FamilyID
		WHERE c.ChildID = ?
	`, personID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying parents of %d", personID)
	}
	defer rows.Close()
	return scanParentages(rows)
}

// ChildrenOf returns the parentage records belonging to familyID
func (s *Source) ChildrenOf(ctx context.Context, familyID int) ([]family.Parentage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.FamilyID, f.FatherID, f.MotherID, c.ChildID, c.RelFather, c.RelMother
		FROM ChildTable c
		JOIN FamilyTable f ON f.FamilyID = c.FamilyID
		WHERE c.FamilyID = ?
	`, familyID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying children of family %d", familyID)
	}
	defer rows.Close()
	return scanParentages(rows)
}

// MarriagesOf returns the marriage records for personID in the given role,
// with marriage/annulment/divorce dates pulled from family events.
func (s *Source) MarriagesOf(ctx context.Context, personID int, asHusband bool) ([]family.Marriage, error) {
	column := "MotherID"
	if asHusband {
		column = "FatherID"
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT FamilyID, FatherID, MotherID FROM FamilyTable WHERE `+column+` = ?
	`, personID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying marriages of %d", personID)
	}
	defer rows.Close()

	var marriages []family.Marriage
	for rows.Next() {
		var m family.Marriage
		if err := rows.Scan(&m.FamilyID, &m.HusbandID, &m.WifeID); err != nil {
			return nil, errors.Wrap(err, "scanning family row")
		}
		marriages = append(marriages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating family rows")
	}

	for i := range marriages {
		marriages[i].Married = s.eventDate(ctx, ownerFamily, marriages[i].FamilyID, factMarriage)
		marriages[i].Annulled = s.eventDate(ctx, ownerFamily, marriages[i].FamilyID, factAnnulment)
		marriages[i].Divorced = s.eventDate(ctx, ownerFamily, marriages[i].FamilyID, factDivorce)
	}
	return marriages, nil
}

// eventDate returns the decoded date of the first matching event, or a zero
// Date. Missing events are normal; only query failures are logged.
func (s *Source) eventDate(ctx context.Context, ownerType, ownerID, factType int) family.Date {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT Date FROM EventTable
		WHERE OwnerType = ? AND OwnerID = ? AND EventType = ?
		LIMIT 1
	`, ownerType, ownerID, factType).Scan(&raw)
	if err == sql.ErrNoRows {
		return family.Date{}
	}
	if err != nil {
		s.log.Warnw("Event lookup failed", "owner", ownerID, "fact", factType, "error", err)
		return family.Date{}
	}
	return DecodeDate(raw.String)
}

func scanParentages(rows *sql.Rows) ([]family.Parentage, error) {
	var parentages []family.Parentage
	for rows.Next() {
		var pg family.Parentage
		var relFather, relMother int
		if err := rows.Scan(&pg.FamilyID, &pg.FatherID, &pg.MotherID, &pg.ChildID, &relFather, &relMother); err != nil {
			return nil, errors.Wrap(err, "scanning child row")
		}
		pg.FatherKind = decodeChildRel(relFather)
		pg.MotherKind = decodeChildRel(relMother)
		parentages = append(parentages, pg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating child rows")
	}
	return parentages, nil
}

// decodeSex maps RootsMagic PersonTable.Sex values (0 male, 1 female)
func decodeSex(sex int) family.Gender {
	switch sex {
	case 0:
		return family.GenderMale
	case 1:
		return family.GenderFemale
	default:
		return family.GenderNotSet
	}
}

// decodeChildRel maps ChildTable.RelFather/RelMother (0 birth, >0 adopted
// or otherwise non-biological)
func decodeChildRel(rel int) family.ChildKind {
	if rel == 0 {
		return family.ChildBiological
	}
	return family.ChildAdopted
}
