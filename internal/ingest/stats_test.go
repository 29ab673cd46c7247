package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinlead/internal/genealogy/models"
	dErrors "kinlead/pkg/domain-errors"
)

type fixedCount struct {
	n   int
	err error
}

func (c fixedCount) Count(context.Context) (int, error) { return c.n, c.err }

func (c fixedCount) CountByStatus(_ context.Context, status models.CandidateStatus) (int, error) {
	if status != models.CandidatePending {
		return 0, nil
	}
	return c.n, c.err
}

func TestCollectStats(t *testing.T) {
	ctx := context.Background()

	t.Run("no records", func(t *testing.T) {
		stats, err := CollectStats(ctx, fixedCount{}, fixedCount{}, fixedCount{})
		require.NoError(t, err)
		assert.Zero(t, stats.DedupRate)
	})

	t.Run("dedup rate", func(t *testing.T) {
		stats, err := CollectStats(ctx, fixedCount{n: 3}, fixedCount{n: 12}, fixedCount{n: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalPersons)
		assert.Equal(t, 12, stats.TotalRecords)
		assert.Equal(t, 2, stats.PendingReview)
		assert.InDelta(t, 0.75, stats.DedupRate, 1e-9)
	})

	t.Run("store failure", func(t *testing.T) {
		_, err := CollectStats(ctx, fixedCount{n: 3}, fixedCount{err: errors.New("connection reset")}, fixedCount{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
