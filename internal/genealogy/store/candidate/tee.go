package candidate

import (
	"context"
	"log/slog"

	"kinlead/internal/genealogy/models"
	"kinlead/pkg/platform/tx"
)

type Sink interface {
	Append(ctx context.Context, c *models.MatchCandidate) error
}

// Tee appends to a primary sink and then to best-effort mirrors. Only the
// primary's error is returned. Mirrors sit outside the transaction, so they
// are written once the unit of work in ctx commits and skipped if it fails.
type Tee struct {
	primary Sink
	mirrors []Sink
	logger  *slog.Logger
}

func NewTee(logger *slog.Logger, primary Sink, mirrors ...Sink) *Tee {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tee{primary: primary, mirrors: mirrors, logger: logger}
}

func (t *Tee) Append(ctx context.Context, c *models.MatchCandidate) error {
	if err := t.primary.Append(ctx, c); err != nil {
		return err
	}
	mirrorCtx := context.WithoutCancel(ctx)
	tx.AfterCommit(ctx, func() {
		for _, m := range t.mirrors {
			if err := m.Append(mirrorCtx, c); err != nil {
				t.logger.WarnContext(mirrorCtx, "candidate mirror append failed", "candidate_id", c.ID.String(), "error", err)
			}
		}
	})
	return nil
}
