// Package record archives raw source records.
package record

import (
	"context"
	"slices"
	"strings"
	"sync"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/sentinel"
)

type InMemory struct {
	mu      sync.RWMutex
	records map[id.RawRecordID]*models.RawRecord
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.RawRecordID]*models.RawRecord)}
}

func (s *InMemory) Save(_ context.Context, r *models.RawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[r.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	c := *r
	c.Payload = slices.Clone(r.Payload)
	s.records[r.ID] = &c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, recordID id.RawRecordID) (*models.RawRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[recordID]; ok {
		c := *r
		return &c, nil
	}
	return nil, sentinel.ErrNotFound
}

// ListByPerson returns the records linked to personID, oldest first.
func (s *InMemory) ListByPerson(_ context.Context, personID id.PersonID) ([]*models.RawRecord, error) {
	return s.list(func(r *models.RawRecord) bool { return r.PersonID == personID }), nil
}

func (s *InMemory) ListByBatch(_ context.Context, batchID id.BatchID) ([]*models.RawRecord, error) {
	return s.list(func(r *models.RawRecord) bool { return r.BatchID == batchID }), nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *InMemory) list(keep func(*models.RawRecord) bool) []*models.RawRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.RawRecord
	for _, r := range s.records {
		if keep(r) {
			c := *r
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.RawRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out
}
