package ingest

import (
	"context"

	"kinlead/internal/dedupe"
	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
)

// Resolver is the Deduplicator. *dedupe.Service satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, rec models.NormalizedRecord, recordID id.RawRecordID) (*dedupe.Resolution, error)
}

type RecordStore interface {
	Save(ctx context.Context, r *models.RawRecord) error
}

type AddressStore interface {
	// Link reports whether the address was new for the person.
	Link(ctx context.Context, addr models.Address) (bool, error)
}
