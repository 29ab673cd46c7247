package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/genealogy/store/person"
	"kinlead/internal/genealogy/store/relationship"
	id "kinlead/pkg/domain"
)

type tree struct {
	t       *testing.T
	persons *person.InMemory
	edges   *relationship.InMemory
}

func newTree(t *testing.T) *tree {
	return &tree{t: t, persons: person.NewInMemory(), edges: relationship.NewInMemory()}
}

func (tr *tree) add(first, country string) *models.Person {
	p := &models.Person{
		ID:           id.NewPersonID(),
		FirstName:    first,
		LastName:     "Weber",
		BirthCountry: country,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(tr.t, tr.persons.CreateIfIdentityAvailable(context.Background(), p))
	return p
}

func (tr *tree) parent(child, parent id.PersonID) {
	_, err := tr.edges.Add(context.Background(), models.RelationshipEdge{
		PersonID: child, RelatedPersonID: parent, Type: models.RelationshipParent, Confidence: 1,
	})
	require.NoError(tr.t, err)
}

func (tr *tree) find(p *models.Person) *Ancestor {
	a, err := FindQualifyingAncestor(context.Background(), p, "Germany", AncestorSearchDepth, tr.persons, tr.edges)
	require.NoError(tr.t, err)
	return a
}

func TestFindQualifyingAncestor(t *testing.T) {
	t.Run("person itself", func(t *testing.T) {
		tr := newTree(t)
		p := tr.add("Hans", "Germany")
		a := tr.find(p)
		require.NotNil(t, a)
		assert.Equal(t, p.ID, a.Person.ID)
		assert.Equal(t, RelationSelf, a.Relation)
		assert.Equal(t, 0, a.Generation)
	})

	t.Run("parent", func(t *testing.T) {
		tr := newTree(t)
		child := tr.add("Mary", "United States")
		father := tr.add("Hans", "Bavaria, Germany")
		tr.parent(child.ID, father.ID)
		a := tr.find(child)
		require.NotNil(t, a)
		assert.Equal(t, father.ID, a.Person.ID)
		assert.Equal(t, RelationParent, a.Relation)
	})

	t.Run("grandparent", func(t *testing.T) {
		tr := newTree(t)
		child := tr.add("Mary", "United States")
		mother := tr.add("Anna", "United States")
		grandfather := tr.add("Karl", "GERMANY")
		tr.parent(child.ID, mother.ID)
		tr.parent(mother.ID, grandfather.ID)
		a := tr.find(child)
		require.NotNil(t, a)
		assert.Equal(t, grandfather.ID, a.Person.ID)
		assert.Equal(t, RelationGrandparent, a.Relation)
		assert.Equal(t, 2, a.Generation)
	})

	t.Run("great grandparent is out of reach", func(t *testing.T) {
		tr := newTree(t)
		child := tr.add("Mary", "United States")
		mother := tr.add("Anna", "United States")
		grandmother := tr.add("Rose", "United States")
		greatGrandfather := tr.add("Otto", "Germany")
		tr.parent(child.ID, mother.ID)
		tr.parent(mother.ID, grandmother.ID)
		tr.parent(grandmother.ID, greatGrandfather.ID)
		assert.Nil(t, tr.find(child))

		deeper, err := FindQualifyingAncestor(context.Background(), child, "Germany", 3, tr.persons, tr.edges)
		require.NoError(t, err)
		require.NotNil(t, deeper)
		assert.Equal(t, RelationAncestor, deeper.Relation)
	})

	t.Run("nearest generation wins", func(t *testing.T) {
		tr := newTree(t)
		child := tr.add("Mary", "United States")
		mother := tr.add("Anna", "United States")
		father := tr.add("Hans", "Germany")
		grandfather := tr.add("Karl", "Germany")
		tr.parent(child.ID, mother.ID)
		tr.parent(child.ID, father.ID)
		tr.parent(mother.ID, grandfather.ID)
		a := tr.find(child)
		require.NotNil(t, a)
		assert.Equal(t, father.ID, a.Person.ID)
	})

	t.Run("cycles terminate", func(t *testing.T) {
		tr := newTree(t)
		a := tr.add("Ann", "United States")
		b := tr.add("Bob", "United States")
		tr.parent(a.ID, b.ID)
		tr.parent(b.ID, a.ID)
		assert.Nil(t, tr.find(a))
	})

	t.Run("dangling parent edges are skipped", func(t *testing.T) {
		tr := newTree(t)
		child := tr.add("Mary", "United States")
		father := tr.add("Hans", "Germany")
		tr.parent(child.ID, id.NewPersonID())
		tr.parent(child.ID, father.ID)
		a := tr.find(child)
		require.NotNil(t, a)
		assert.Equal(t, father.ID, a.Person.ID)
	})

	t.Run("nobody qualifies", func(t *testing.T) {
		tr := newTree(t)
		child := tr.add("Mary", "United States")
		mother := tr.add("Anna", "")
		tr.parent(child.ID, mother.ID)
		assert.Nil(t, tr.find(child))
	})
}

type failingEdges struct{ err error }

func (f failingEdges) EdgesFrom(context.Context, id.PersonID, models.RelationshipType) ([]models.RelationshipEdge, error) {
	return nil, f.err
}

func (f failingEdges) CountTouching(context.Context, id.PersonID) (int, error) { return 0, f.err }

func TestFindQualifyingAncestorPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("graph unavailable")
	p := &models.Person{ID: id.NewPersonID(), BirthCountry: "Ireland"}
	_, err := FindQualifyingAncestor(context.Background(), p, "Germany", AncestorSearchDepth, person.NewInMemory(), failingEdges{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		birthCountry, country string
		want                  bool
	}{
		{"Germany", "Germany", true},
		{"germany", "Germany", true},
		{"West Germany", "Germany", true},
		{"Prussia", "Germany", false},
		{"", "Germany", false},
		{"Germany", "", false},
		{"Deutschland", "Germany", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Qualifies(tt.birthCountry, tt.country), "%q in %q", tt.country, tt.birthCountry)
	}
}
