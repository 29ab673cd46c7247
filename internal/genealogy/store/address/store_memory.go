// Package address stores the residences known for each person.
package address

import (
	"context"
	"slices"
	"sync"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
)

type addressKey struct {
	person id.PersonID
	key    string
}

type InMemory struct {
	mu        sync.RWMutex
	byPerson  map[id.PersonID][]models.Address
	linked    map[addressKey]struct{}
	addresses int
}

func NewInMemory() *InMemory {
	return &InMemory{
		byPerson: make(map[id.PersonID][]models.Address),
		linked:   make(map[addressKey]struct{}),
	}
}

// Link attaches addr to its person unless the person already has the same
// address. It reports whether a new row was stored.
func (s *InMemory) Link(_ context.Context, addr models.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := addressKey{person: addr.PersonID, key: addr.Key()}
	if _, ok := s.linked[k]; ok {
		return false, nil
	}
	s.linked[k] = struct{}{}
	s.byPerson[addr.PersonID] = append(s.byPerson[addr.PersonID], addr)
	s.addresses++
	return true, nil
}

// ListByPerson returns the person's addresses in the order they were linked.
func (s *InMemory) ListByPerson(_ context.Context, personID id.PersonID) ([]models.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.byPerson[personID]), nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addresses, nil
}
