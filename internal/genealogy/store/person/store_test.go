package person

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/platform/sqldb"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/sentinel"
)

type personStore interface {
	CreateIfIdentityAvailable(ctx context.Context, p *models.Person) error
	CreateUnkeyed(ctx context.Context, p *models.Person) error
	Update(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error)
	FindByIdentityKey(ctx context.Context, key string) (*models.Person, error)
	ListAll(ctx context.Context) ([]*models.Person, error)
	ListBornBetween(ctx context.Context, from, to models.Date) ([]*models.Person, error)
	Count(ctx context.Context) (int, error)
}

// PersonStoreSuite runs the same contract against every implementation.
type PersonStoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) personStore
	store    personStore
	ctx      context.Context
	clock    time.Time
}

func TestInMemoryPersonStore(t *testing.T) {
	suite.Run(t, &PersonStoreSuite{newStore: func(*testing.T) personStore { return NewInMemory() }})
}

func TestSQLitePersonStore(t *testing.T) {
	suite.Run(t, &PersonStoreSuite{newStore: func(t *testing.T) personStore {
		db, err := sqldb.Open(context.Background(), sqldb.SQLite, ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		require.NoError(t, db.Migrate(context.Background()))
		return NewSQL(db)
	}})
}

func (s *PersonStoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
	s.clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *PersonStoreSuite) newPerson(first string, birth models.Date) *models.Person {
	s.clock = s.clock.Add(time.Minute)
	return &models.Person{
		ID:              id.NewPersonID(),
		FirstName:       first,
		LastName:        "Schmidt",
		BirthDate:       birth,
		BirthCountry:    "Germany",
		ConfidenceScore: models.DefaultConfidenceScore,
		SourceRecordIDs: []id.RawRecordID{id.NewRawRecordID()},
		CreatedAt:       s.clock,
		UpdatedAt:       s.clock,
	}
}

func (s *PersonStoreSuite) TestCreateAndFind() {
	p := s.newPerson("Hans", models.NewDate(1880, time.January, 15))
	p.MiddleName = "Friedrich"
	p.DeathDate = models.NewDate(1950, time.March, 2)
	s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, p))

	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.FirstName, found.FirstName)
	s.Equal(p.MiddleName, found.MiddleName)
	s.Equal("1880-01-15", found.BirthDate.String())
	s.Equal("1950-03-02", found.DeathDate.String())
	s.Equal(p.SourceRecordIDs, found.SourceRecordIDs)
	s.True(p.CreatedAt.Equal(found.CreatedAt))

	byKey, err := s.store.FindByIdentityKey(s.ctx, p.IdentityKey())
	s.Require().NoError(err)
	s.Equal(p.ID, byKey.ID)

	_, err = s.store.FindByID(s.ctx, id.NewPersonID())
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByIdentityKey(s.ctx, "")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PersonStoreSuite) TestIdentityUniqueness() {
	s.Run("same identity conflicts", func() {
		first := s.newPerson("Anna", models.NewDate(1890, time.May, 5))
		second := s.newPerson("ANNA", models.NewDate(1890, time.May, 5))
		s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, first))
		s.ErrorIs(s.store.CreateIfIdentityAvailable(s.ctx, second), sentinel.ErrAlreadyUsed)
	})

	s.Run("persons without a key never conflict", func() {
		a := s.newPerson("Karl", models.Date{})
		b := s.newPerson("Karl", models.Date{})
		s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, a))
		s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, b))
	})

	s.Run("unkeyed person shares an identity without taking it", func() {
		holder := s.newPerson("Liesel", models.NewDate(1885, time.August, 9))
		twin := s.newPerson("Liesel", models.NewDate(1885, time.August, 9))
		s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, holder))
		s.Require().NoError(s.store.CreateUnkeyed(s.ctx, twin))

		found, err := s.store.FindByIdentityKey(s.ctx, holder.IdentityKey())
		s.Require().NoError(err)
		s.Equal(holder.ID, found.ID)

		stored, err := s.store.FindByID(s.ctx, twin.ID)
		s.Require().NoError(err)
		s.Equal("Liesel", stored.FirstName)
		s.ErrorIs(s.store.CreateUnkeyed(s.ctx, twin), sentinel.ErrAlreadyUsed)
	})

	s.Run("key stays with the creator after a merge fills the birth date", func() {
		p := s.newPerson("Otto", models.Date{})
		s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, p))

		holder := s.newPerson("Otto", models.NewDate(1870, time.June, 1))
		s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, holder))

		filled := p.Clone()
		filled.BirthDate = models.NewDate(1870, time.June, 1)
		s.Require().NoError(s.store.Update(s.ctx, filled))

		found, err := s.store.FindByIdentityKey(s.ctx, holder.IdentityKey())
		s.Require().NoError(err)
		s.Equal(holder.ID, found.ID)
	})
}

func (s *PersonStoreSuite) TestUpdate() {
	p := s.newPerson("Hans", models.NewDate(1880, time.January, 15))
	s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, p))

	updated := p.WithSource(id.NewRawRecordID())
	updated.BirthPlace = "Hamburg"
	s.Require().NoError(s.store.Update(s.ctx, updated))

	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Hamburg", found.BirthPlace)
	s.Equal(2, found.SourcesCount())

	s.ErrorIs(s.store.Update(s.ctx, s.newPerson("Ghost", models.Date{})), sentinel.ErrNotFound)
}

func (s *PersonStoreSuite) TestListing() {
	older := s.newPerson("Hans", models.NewDate(1880, time.January, 15))
	unknown := s.newPerson("Karl", models.Date{})
	far := s.newPerson("Fritz", models.NewDate(1850, time.January, 1))
	for _, p := range []*models.Person{older, unknown, far} {
		s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, p))
	}

	all, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]id.PersonID{older.ID, unknown.ID, far.ID}, []id.PersonID{all[0].ID, all[1].ID, all[2].ID})

	window, err := s.store.ListBornBetween(s.ctx, models.NewDate(1878, time.January, 15), models.NewDate(1880, time.January, 15))
	s.Require().NoError(err)
	s.Require().Len(window, 2, "bounds are inclusive and unknown birth dates are kept")
	s.Equal(older.ID, window[0].ID)
	s.Equal(unknown.ID, window[1].ID)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *PersonStoreSuite) TestReturnedValuesAreCopies() {
	p := s.newPerson("Hans", models.NewDate(1880, time.January, 15))
	s.Require().NoError(s.store.CreateIfIdentityAvailable(s.ctx, p))

	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	found.FirstName = "Changed"

	again, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Hans", again.FirstName)
}
