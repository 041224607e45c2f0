package testing

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// CreateTestDB creates an in-memory SQLite test database.
// Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateRootsMagicTestDB creates an in-memory database with the subset of
// the RootsMagic schema the reader touches. Callers seed rows themselves.
func CreateRootsMagicTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := CreateTestDB(t)
	schema := []string{
		`CREATE TABLE PersonTable (
			PersonID INTEGER PRIMARY KEY,
			Sex INTEGER NOT NULL DEFAULT 2,
			Living INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE NameTable (
			NameID INTEGER PRIMARY KEY,
			OwnerID INTEGER NOT NULL,
			Given TEXT,
			Surname TEXT,
			IsPrimary INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE FamilyTable (
			FamilyID INTEGER PRIMARY KEY,
			FatherID INTEGER NOT NULL DEFAULT 0,
			MotherID INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE ChildTable (
			RecID INTEGER PRIMARY KEY,
			ChildID INTEGER NOT NULL,
			FamilyID INTEGER NOT NULL,
			RelFather INTEGER NOT NULL DEFAULT 0,
			RelMother INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE EventTable (
			EventID INTEGER PRIMARY KEY,
			EventType INTEGER NOT NULL,
			OwnerType INTEGER NOT NULL,
			OwnerID INTEGER NOT NULL,
			Date TEXT
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create test schema: %v", err)
		}
	}
	return db
}
