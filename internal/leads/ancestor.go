package leads

import (
	"context"
	"errors"
	"strings"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/sentinel"
	pstrings "kinlead/pkg/platform/strings"
)

// AncestorSearchDepth is how many parent hops the search walks: parents and
// grandparents. Raising it deepens the search with no other change.
const AncestorSearchDepth = 2

// Relation names where in the tree a qualifying ancestor was found.
type Relation string

const (
	RelationSelf        Relation = "self"
	RelationParent      Relation = "parent"
	RelationGrandparent Relation = "grandparent"
	RelationAncestor    Relation = "ancestor"
)

func relationAt(generation int) Relation {
	switch generation {
	case 0:
		return RelationSelf
	case 1:
		return RelationParent
	case 2:
		return RelationGrandparent
	default:
		return RelationAncestor
	}
}

// Ancestor is a qualifying person found by the search.
type Ancestor struct {
	Person     *models.Person
	Generation int
	Relation   Relation
}

// Qualifies reports whether birthCountry contains country, ignoring case.
func Qualifies(birthCountry, country string) bool {
	target := pstrings.Fold(country)
	if target == "" {
		return false
	}
	return strings.Contains(pstrings.Fold(birthCountry), target)
}

// FindQualifyingAncestor walks parent edges breadth first from p, up to depth
// hops, and returns the first person born in country: p itself, then its
// parents in edge order, then their parents. It returns nil when nobody within
// depth qualifies. Each person is inspected at most once, so cycles terminate.
// Edges pointing at persons that no longer exist are skipped.
func FindQualifyingAncestor(ctx context.Context, p *models.Person, country string, depth int, persons PersonReader, edges RelationshipReader) (*Ancestor, error) {
	type visit struct {
		person     *models.Person
		generation int
	}

	seen := map[id.PersonID]bool{p.ID: true}
	queue := []visit{{person: p}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if Qualifies(cur.person.BirthCountry, country) {
			return &Ancestor{Person: cur.person, Generation: cur.generation, Relation: relationAt(cur.generation)}, nil
		}
		if cur.generation >= depth {
			continue
		}

		parents, err := edges.EdgesFrom(ctx, cur.person.ID, models.RelationshipParent)
		if err != nil {
			return nil, err
		}
		for _, e := range parents {
			if seen[e.RelatedPersonID] {
				continue
			}
			seen[e.RelatedPersonID] = true

			parent, err := persons.FindByID(ctx, e.RelatedPersonID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					continue
				}
				return nil, err
			}
			queue = append(queue, visit{person: parent, generation: cur.generation + 1})
		}
	}
	return nil, nil
}
