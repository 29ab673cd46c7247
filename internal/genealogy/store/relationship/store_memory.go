// Package relationship stores directed family edges between persons.
package relationship

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
)

type edgeKey struct {
	from, to id.PersonID
	relType  models.RelationshipType
}

type InMemory struct {
	mu    sync.RWMutex
	edges map[edgeKey]models.RelationshipEdge
}

func NewInMemory() *InMemory {
	return &InMemory{edges: make(map[edgeKey]models.RelationshipEdge)}
}

// Add stores e unless an edge with the same ends and type exists. It reports
// whether e was new.
func (s *InMemory) Add(_ context.Context, e models.RelationshipEdge) (bool, error) {
	if err := validateEdge(e); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := edgeKey{from: e.PersonID, to: e.RelatedPersonID, relType: e.Type}
	if _, ok := s.edges[k]; ok {
		return false, nil
	}
	s.edges[k] = e
	return true, nil
}

// EdgesFrom returns the outgoing edges of relType, ordered by related person.
func (s *InMemory) EdgesFrom(_ context.Context, personID id.PersonID, relType models.RelationshipType) ([]models.RelationshipEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.RelationshipEdge
	for k, e := range s.edges {
		if k.from == personID && k.relType == relType {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.RelationshipEdge) int {
		return cmp.Compare(a.RelatedPersonID.String(), b.RelatedPersonID.String())
	})
	return out, nil
}

func (s *InMemory) CountTouching(_ context.Context, personID id.PersonID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for k := range s.edges {
		if k.from == personID || k.to == personID {
			n++
		}
	}
	return n, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges), nil
}

func validateEdge(e models.RelationshipEdge) error {
	if !e.Type.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown relationship type: "+string(e.Type))
	}
	if e.PersonID == e.RelatedPersonID {
		return dErrors.New(dErrors.CodeValidation, "relationship must connect two persons")
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return dErrors.New(dErrors.CodeValidation, "relationship confidence must be in [0, 1]")
	}
	return nil
}
