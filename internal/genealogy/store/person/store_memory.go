// Package person stores canonical persons.
package person

import (
	"context"
	"slices"
	"strings"
	"sync"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/sentinel"
)

// InMemory is a process-local person pool. Identity keys are taken when a
// person is created and kept for its lifetime.
type InMemory struct {
	mu      sync.RWMutex
	persons map[id.PersonID]*models.Person
	keys    map[string]id.PersonID
}

func NewInMemory() *InMemory {
	return &InMemory{
		persons: make(map[id.PersonID]*models.Person),
		keys:    make(map[string]id.PersonID),
	}
}

func (s *InMemory) CreateIfIdentityAvailable(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.persons[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	key := p.IdentityKey()
	if key != "" {
		if _, taken := s.keys[key]; taken {
			return sentinel.ErrAlreadyUsed
		}
		s.keys[key] = p.ID
	}
	s.persons[p.ID] = p.Clone()
	return nil
}

// CreateUnkeyed inserts p without taking its identity key.
func (s *InMemory) CreateUnkeyed(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.persons[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.persons[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.persons[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, personID id.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.persons[personID]; ok {
		return p.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByIdentityKey(_ context.Context, key string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	personID, ok := s.keys[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if p, ok := s.persons[personID]; ok {
		return p.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// ListAll returns every person, oldest first.
func (s *InMemory) ListAll(_ context.Context) ([]*models.Person, error) {
	return s.list(func(*models.Person) bool { return true }), nil
}

func (s *InMemory) ListBornBetween(_ context.Context, from, to models.Date) ([]*models.Person, error) {
	return s.list(func(p *models.Person) bool {
		return p.BirthDate.IsZero() || (!p.BirthDate.Before(from) && !to.Before(p.BirthDate))
	}), nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.persons), nil
}

func (s *InMemory) list(keep func(*models.Person) bool) []*models.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Person, 0, len(s.persons))
	for _, p := range s.persons {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	slices.SortFunc(out, compareCreated)
	return out
}

func compareCreated(a, b *models.Person) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
