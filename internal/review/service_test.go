package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/genealogy/store/candidate"
	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
	"kinlead/pkg/requestcontext"
)

type ReviewServiceSuite struct {
	suite.Suite
	store   *candidate.InMemory
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestReviewService(t *testing.T) {
	suite.Run(t, new(ReviewServiceSuite))
}

func (s *ReviewServiceSuite) SetupTest() {
	s.store = candidate.NewInMemory()
	s.service = New(s.store)
	s.now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ReviewServiceSuite) flag() *models.MatchCandidate {
	c := models.NewMatchCandidate(id.NewPersonID(), id.NewRawRecordID(), 0.75, models.ScoreBreakdown{}, s.now.Add(-time.Hour))
	s.Require().NoError(s.store.Append(s.ctx, c))
	return c
}

func (s *ReviewServiceSuite) TestConfirm() {
	c := s.flag()

	got, err := s.service.Confirm(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(models.CandidateConfirmed, got.Status)
	s.Require().NotNil(got.ReviewedAt)
	s.True(s.now.Equal(*got.ReviewedAt))

	pending, err := s.service.Pending(s.ctx)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *ReviewServiceSuite) TestRejectThenConfirmIsInvariantViolation() {
	c := s.flag()

	_, err := s.service.Reject(s.ctx, c.ID)
	s.Require().NoError(err)

	_, err = s.service.Confirm(s.ctx, c.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	stored, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(models.CandidateRejected, stored.Status)
}

func (s *ReviewServiceSuite) TestUnknownCandidate() {
	_, err := s.service.Confirm(s.ctx, id.NewCandidateID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

type brokenStore struct{ *candidate.InMemory }

func (brokenStore) ListByStatus(context.Context, models.CandidateStatus) ([]*models.MatchCandidate, error) {
	return nil, errors.New("connection reset")
}

func (s *ReviewServiceSuite) TestPendingStoreFailure() {
	svc := New(brokenStore{s.store})
	_, err := svc.Pending(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
