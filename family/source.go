package family

import "context"

// RecordSource is the single collaborator the engine consumes: a provider of
// flat genealogy records. Implementations live under provider/; the engine
// never assumes anything about the backing store beyond these four calls.
//
// Person returns ErrNotFound (wrapped) for an unresolvable id. The list
// methods return empty slices, not errors, when a person or family simply
// has no records.
type RecordSource interface {
	Person(ctx context.Context, id int) (*Person, error)
	ParentsOf(ctx context.Context, personID int) ([]Parentage, error)
	MarriagesOf(ctx context.Context, personID int, asHusband bool) ([]Marriage, error)
	ChildrenOf(ctx context.Context, familyID int) ([]Parentage, error)
}
