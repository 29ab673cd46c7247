package ingest

import (
	"context"

	"kinlead/internal/genealogy/models"
	dErrors "kinlead/pkg/domain-errors"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type candidateCounter interface {
	CountByStatus(ctx context.Context, status models.CandidateStatus) (int, error)
}

// Stats summarizes the stores.
type Stats struct {
	TotalPersons  int `json:"total_persons"`
	TotalRecords  int `json:"total_records"`
	PendingReview int `json:"pending_review"`
	// DedupRate is the share of raw records that merged into an existing
	// person: 1 - persons/records, or 0 with no records.
	DedupRate float64 `json:"dedup_rate"`
}

func CollectStats(ctx context.Context, persons, records counter, candidates candidateCounter) (Stats, error) {
	var (
		s   Stats
		err error
	)
	if s.TotalPersons, err = persons.Count(ctx); err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count persons")
	}
	if s.TotalRecords, err = records.Count(ctx); err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count raw records")
	}
	if s.PendingReview, err = candidates.CountByStatus(ctx, models.CandidatePending); err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count review candidates")
	}
	if s.TotalRecords > 0 {
		s.DedupRate = 1 - float64(s.TotalPersons)/float64(s.TotalRecords)
	}
	return s, nil
}
