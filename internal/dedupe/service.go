// Package dedupe resolves normalized records against the shared person pool.
//
// Each record is scored against the pool, then either creates a new person,
// merges into the best candidate, or merges and flags the match for review.
// Merges are fill-only: a field that is set is never overwritten.
package dedupe

import (
	"context"
	"errors"
	"log/slog"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
	"kinlead/pkg/platform/sentinel"
	"kinlead/pkg/requestcontext"
)

// maxResolveAttempts bounds the rescans after an identity conflict whose
// holder disappeared before it could be loaded.
const maxResolveAttempts = 3

var errRescan = errors.New("identity holder vanished, rescan")

// Resolution is the outcome of resolving one record.
type Resolution struct {
	Person *models.Person
	Action Action
	// Best is the candidate the record was merged into. Nil on create.
	Best *Candidate
	// Candidate is the pending review entry, set only for ActionReview.
	Candidate *models.MatchCandidate
}

// Service is the Deduplicator. It is safe for concurrent use, but callers
// must resolve the records of one pool partition sequentially: each decision
// depends on the pool as left by the previous one.
type Service struct {
	scorer     Scorer
	persons    PersonStore
	candidates CandidateSink
	logger     *slog.Logger
	blocking   bool
	floor      float64
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBlocking asks for birth-date window blocking. It is ignored, with one
// log line, when the policy's candidate floor makes pruning unsafe.
func WithBlocking(enabled bool) Option {
	return func(s *Service) {
		s.blocking = enabled
	}
}

// New constructs a Service.
func New(scorer Scorer, persons PersonStore, candidates CandidateSink, opts ...Option) *Service {
	s := &Service{
		scorer:     scorer,
		persons:    persons,
		candidates: candidates,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.floor = scorer.Policy().CandidateFloor()
	if s.blocking && !blockingSafe(s.floor) {
		s.logger.Warn("birth date blocking disabled, candidate floor too low to prune safely",
			"candidate_floor", s.floor,
			"required_above", maxScoreWithoutDate)
		s.blocking = false
	}
	return s
}

// BlockingEnabled reports whether birth-date window blocking is in effect.
func (s *Service) BlockingEnabled() bool {
	return s.blocking
}

// Resolve folds rec, extracted from raw record recordID, into the pool.
// Store failures are returned as CodeInternal errors; nothing is rolled back.
func (s *Service) Resolve(ctx context.Context, rec models.NormalizedRecord, recordID id.RawRecordID) (*Resolution, error) {
	for attempt := 1; ; attempt++ {
		res, err := s.resolveOnce(ctx, rec, recordID)
		if !errors.Is(err, errRescan) {
			return res, err
		}
		if attempt >= maxResolveAttempts {
			return nil, dErrors.New(dErrors.CodeConflict, "identity conflict persisted after rescans")
		}
		s.logger.InfoContext(ctx, "identity conflict holder not found, rescanning pool",
			"record_id", recordID,
			"attempt", attempt)
	}
}

func (s *Service) resolveOnce(ctx context.Context, rec models.NormalizedRecord, recordID id.RawRecordID) (*Resolution, error) {
	pool, err := s.pool(ctx, rec)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person pool")
	}

	var best *Candidate
	if ranked := RankCandidates(s.scorer, rec, pool, s.floor); len(ranked) > 0 {
		best = &ranked[0]
	}

	switch action := Decide(best, s.scorer.Policy()); action {
	case ActionMerged, ActionReview:
		return s.merge(ctx, rec, recordID, best, action)
	default:
		return s.create(ctx, rec, recordID)
	}
}

func (s *Service) pool(ctx context.Context, rec models.NormalizedRecord) ([]*models.Person, error) {
	if !s.blocking || rec.BirthDate.IsZero() {
		return s.persons.ListAll(ctx)
	}
	from, to := birthWindow(rec.BirthDate, s.scorer.Policy().DateProximityYears)
	return s.persons.ListBornBetween(ctx, from, to)
}

func (s *Service) create(ctx context.Context, rec models.NormalizedRecord, recordID id.RawRecordID) (*Resolution, error) {
	now := requestcontext.Now(ctx)
	person, err := models.NewPersonFromRecord(id.NewPersonID(), rec, now)
	if err != nil {
		return nil, err
	}
	person = person.WithSource(recordID)

	err = s.persons.CreateIfIdentityAvailable(ctx, person)
	if err == nil {
		return &Resolution{Person: person, Action: ActionCreated}, nil
	}
	if !errors.Is(err, sentinel.ErrAlreadyUsed) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
	}

	// The key is taken, either by a concurrent writer or by a person this
	// record already scored too low against. Decide against the holder.
	holder, err := s.persons.FindByIdentityKey(ctx, person.IdentityKey())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errRescan
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load conflicting person")
	}
	best := &Candidate{Person: holder, Result: s.scorer.Score(rec, holder.Record())}
	action := Decide(best, s.scorer.Policy())
	s.logger.InfoContext(ctx, "identity key already taken",
		"record_id", recordID,
		"person_id", holder.ID,
		"score", best.Result.Score,
		"action", action)
	if action.IsMerge() {
		return s.merge(ctx, rec, recordID, best, action)
	}

	if err := s.persons.CreateUnkeyed(ctx, person); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
	}
	return &Resolution{Person: person, Action: ActionCreated}, nil
}

func (s *Service) merge(ctx context.Context, rec models.NormalizedRecord, recordID id.RawRecordID, best *Candidate, action Action) (*Resolution, error) {
	now := requestcontext.Now(ctx)
	merged := Merge(best.Person, rec).WithSource(recordID)
	merged.UpdatedAt = now

	if err := s.persons.Update(ctx, merged); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update person")
	}

	res := &Resolution{Person: merged, Action: action, Best: best}
	if action != ActionReview {
		return res, nil
	}

	res.Candidate = models.NewMatchCandidate(merged.ID, recordID, best.Result.Score, best.Result.Breakdown, now)
	if err := s.candidates.Append(ctx, res.Candidate); err != nil {
		// Review is advisory. The merge stands even if the sink is down.
		s.logger.WarnContext(ctx, "failed to append match candidate",
			"candidate_id", res.Candidate.ID,
			"person_id", merged.ID,
			"error", err)
	}
	s.logger.InfoContext(ctx, "match flagged for review",
		"person_id", merged.ID,
		"record_id", recordID,
		"score", best.Result.Score)
	return res, nil
}
