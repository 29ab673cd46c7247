// Package review resolves match candidates flagged during ingestion.
// Confirming or rejecting only records the reviewer's verdict; splitting a
// rejected record back out of its person is done by an operator.
package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
	"kinlead/pkg/platform/sentinel"
	"kinlead/pkg/requestcontext"
)

type Store interface {
	FindByID(ctx context.Context, candidateID id.CandidateID) (*models.MatchCandidate, error)
	ListByStatus(ctx context.Context, status models.CandidateStatus) ([]*models.MatchCandidate, error)
	UpdateStatus(ctx context.Context, c *models.MatchCandidate) error
}

type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Pending(ctx context.Context) ([]*models.MatchCandidate, error) {
	out, err := s.store.ListByStatus(ctx, models.CandidatePending)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending candidates")
	}
	return out, nil
}

func (s *Service) Confirm(ctx context.Context, candidateID id.CandidateID) (*models.MatchCandidate, error) {
	return s.resolve(ctx, candidateID, (*models.MatchCandidate).Confirm)
}

func (s *Service) Reject(ctx context.Context, candidateID id.CandidateID) (*models.MatchCandidate, error) {
	return s.resolve(ctx, candidateID, (*models.MatchCandidate).Reject)
}

func (s *Service) resolve(ctx context.Context, candidateID id.CandidateID, verdict func(*models.MatchCandidate, time.Time) error) (*models.MatchCandidate, error) {
	c, err := s.store.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load candidate")
	}
	if err := verdict(c, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.UpdateStatus(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save review")
	}
	s.logger.InfoContext(ctx, "match candidate reviewed",
		"candidate_id", c.ID.String(),
		"person_id", c.PersonA.String(),
		"record_id", c.RecordID.String(),
		"status", string(c.Status),
	)
	return c, nil
}
