package dedupe

import (
	"context"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/matching"
)

// Scorer compares two normalized records. *matching.Matcher satisfies it.
type Scorer interface {
	Score(a, b models.NormalizedRecord) matching.Result
	Policy() matching.Policy
}

// PersonStore is the shared person pool.
//
// Update persists a value the Deduplicator already merged; stores do not apply
// merge rules of their own.
type PersonStore interface {
	ListAll(ctx context.Context) ([]*models.Person, error)
	// ListBornBetween returns persons born in [from, to] together with every
	// person whose birth date is unknown.
	ListBornBetween(ctx context.Context, from, to models.Date) ([]*models.Person, error)
	// CreateIfIdentityAvailable inserts p unless another person already holds
	// p's identity key, in which case it returns sentinel.ErrAlreadyUsed.
	CreateIfIdentityAvailable(ctx context.Context, p *models.Person) error
	// CreateUnkeyed inserts p without claiming its identity key. It is used
	// when p shares a key with a person it was decided not to match.
	CreateUnkeyed(ctx context.Context, p *models.Person) error
	FindByIdentityKey(ctx context.Context, key string) (*models.Person, error)
	Update(ctx context.Context, p *models.Person) error
}

// CandidateSink receives review-band matches.
type CandidateSink interface {
	Append(ctx context.Context, c *models.MatchCandidate) error
}
