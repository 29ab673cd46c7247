// Package candidate stores review-band match candidates and fans them out to
// reviewers.
package candidate

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/sentinel"
)

type InMemory struct {
	mu         sync.RWMutex
	candidates map[id.CandidateID]*models.MatchCandidate
}

func NewInMemory() *InMemory {
	return &InMemory{candidates: make(map[id.CandidateID]*models.MatchCandidate)}
}

func (s *InMemory) Append(_ context.Context, c *models.MatchCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[c.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.candidates[c.ID] = clone(c)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, candidateID id.CandidateID) (*models.MatchCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[candidateID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(c), nil
}

// ListByStatus returns candidates in status, oldest first.
func (s *InMemory) ListByStatus(_ context.Context, status models.CandidateStatus) ([]*models.MatchCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.MatchCandidate
	for _, c := range s.candidates {
		if c.Status == status {
			out = append(out, clone(c))
		}
	}
	slices.SortFunc(out, func(a, b *models.MatchCandidate) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func (s *InMemory) CountByStatus(_ context.Context, status models.CandidateStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.candidates {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

// UpdateStatus persists the review outcome already applied to c.
func (s *InMemory) UpdateStatus(_ context.Context, c *models.MatchCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.candidates[c.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	existing.Status = c.Status
	existing.ReviewedAt = cloneTime(c.ReviewedAt)
	return nil
}

func clone(c *models.MatchCandidate) *models.MatchCandidate {
	out := *c
	out.ReviewedAt = cloneTime(c.ReviewedAt)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
