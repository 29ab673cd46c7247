package leads

import (
	"context"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
)

type PersonReader interface {
	FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error)
	ListAll(ctx context.Context) ([]*models.Person, error)
}

// RelationshipReader is read-only access to the relationship graph.
type RelationshipReader interface {
	EdgesFrom(ctx context.Context, personID id.PersonID, relType models.RelationshipType) ([]models.RelationshipEdge, error)
	// CountTouching counts edges of any type with personID on either end.
	CountTouching(ctx context.Context, personID id.PersonID) (int, error)
}

type AddressReader interface {
	ListByPerson(ctx context.Context, personID id.PersonID) ([]models.Address, error)
}

type RecordReader interface {
	ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.RawRecord, error)
}
