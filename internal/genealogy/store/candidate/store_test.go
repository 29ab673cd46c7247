package candidate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/platform/sqldb"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/sentinel"
)

type candidateStore interface {
	Append(ctx context.Context, c *models.MatchCandidate) error
	FindByID(ctx context.Context, candidateID id.CandidateID) (*models.MatchCandidate, error)
	ListByStatus(ctx context.Context, status models.CandidateStatus) ([]*models.MatchCandidate, error)
	CountByStatus(ctx context.Context, status models.CandidateStatus) (int, error)
	UpdateStatus(ctx context.Context, c *models.MatchCandidate) error
}

type CandidateStoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) candidateStore
	store    candidateStore
	ctx      context.Context
	now      time.Time
}

func TestInMemoryCandidateStore(t *testing.T) {
	suite.Run(t, &CandidateStoreSuite{newStore: func(*testing.T) candidateStore { return NewInMemory() }})
}

func TestSQLiteCandidateStore(t *testing.T) {
	suite.Run(t, &CandidateStoreSuite{newStore: func(t *testing.T) candidateStore {
		db, err := sqldb.Open(context.Background(), sqldb.SQLite, ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		require.NoError(t, db.Migrate(context.Background()))
		return NewSQL(db)
	}})
}

func (s *CandidateStoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *CandidateStoreSuite) newCandidate(at time.Time) *models.MatchCandidate {
	return models.NewMatchCandidate(id.NewPersonID(), id.NewRawRecordID(), 0.78,
		models.ScoreBreakdown{Name: 1, Date: 0.25, Place: 1, Country: 1}, at)
}

func (s *CandidateStoreSuite) TestAppendAndFind() {
	c := s.newCandidate(s.now)
	s.Require().NoError(s.store.Append(s.ctx, c))
	s.ErrorIs(s.store.Append(s.ctx, c), sentinel.ErrAlreadyUsed)

	found, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.PersonA, found.PersonA)
	s.Equal(c.RecordID, found.RecordID)
	s.InDelta(0.78, found.Score, 1e-9)
	s.Equal(c.Breakdown, found.Breakdown)
	s.Equal(models.CandidatePending, found.Status)
	s.True(s.now.Equal(found.CreatedAt))
	s.Nil(found.ReviewedAt)

	_, err = s.store.FindByID(s.ctx, id.NewCandidateID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *CandidateStoreSuite) TestReviewLifecycle() {
	older := s.newCandidate(s.now)
	newer := s.newCandidate(s.now.Add(time.Minute))
	s.Require().NoError(s.store.Append(s.ctx, newer))
	s.Require().NoError(s.store.Append(s.ctx, older))

	pending, err := s.store.ListByStatus(s.ctx, models.CandidatePending)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(older.ID, pending[0].ID)

	reviewedAt := s.now.Add(time.Hour)
	s.Require().NoError(older.Confirm(reviewedAt))
	s.Require().NoError(s.store.UpdateStatus(s.ctx, older))

	n, err := s.store.CountByStatus(s.ctx, models.CandidatePending)
	s.Require().NoError(err)
	s.Equal(1, n)

	confirmed, err := s.store.ListByStatus(s.ctx, models.CandidateConfirmed)
	s.Require().NoError(err)
	s.Require().Len(confirmed, 1)
	s.Require().NotNil(confirmed[0].ReviewedAt)
	s.True(reviewedAt.Equal(*confirmed[0].ReviewedAt))

	missing := s.newCandidate(s.now)
	s.ErrorIs(s.store.UpdateStatus(s.ctx, missing), sentinel.ErrNotFound)
}

func (s *CandidateStoreSuite) TestReturnsCopies() {
	c := s.newCandidate(s.now)
	s.Require().NoError(s.store.Append(s.ctx, c))
	c.Status = models.CandidateRejected

	found, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(models.CandidatePending, found.Status)
}
