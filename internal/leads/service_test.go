package leads

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/genealogy/store/address"
	"kinlead/internal/genealogy/store/person"
	"kinlead/internal/genealogy/store/record"
	"kinlead/internal/genealogy/store/relationship"
	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
)

type LeadServiceSuite struct {
	suite.Suite
	ctx       context.Context
	persons   *person.InMemory
	edges     *relationship.InMemory
	addresses *address.InMemory
	records   *record.InMemory
	service   *Service
	created   time.Time
}

func TestLeadService(t *testing.T) {
	suite.Run(t, new(LeadServiceSuite))
}

func (s *LeadServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.persons = person.NewInMemory()
	s.edges = relationship.NewInMemory()
	s.addresses = address.NewInMemory()
	s.records = record.NewInMemory()
	s.service = New(s.persons, s.edges, s.addresses, s.records, DefaultPolicy())
	s.created = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

// addPerson stores a person born in country with one linked raw record per
// naturalization date given (or a single undated record).
func (s *LeadServiceSuite) addPerson(first, country string, naturalized ...models.Date) *models.Person {
	s.created = s.created.Add(time.Minute)
	p := &models.Person{
		ID:           id.NewPersonID(),
		FirstName:    first,
		LastName:     "Schmidt",
		BirthDate:    models.NewDate(1880, time.January, 15),
		BirthPlace:   "Hamburg",
		BirthCountry: country,
		CreatedAt:    s.created,
		UpdatedAt:    s.created,
	}
	if len(naturalized) == 0 {
		naturalized = []models.Date{{}}
	}
	for _, d := range naturalized {
		rec := &models.RawRecord{
			ID:         id.NewRawRecordID(),
			BatchID:    id.NewBatchID(),
			SourceType: id.SourceNaturalization,
			PersonID:   p.ID,
			Normalized: models.NormalizedRecord{FirstName: first, NaturalizationDate: d},
			CreatedAt:  s.created,
		}
		s.Require().NoError(s.records.Save(s.ctx, rec))
		p = p.WithSource(rec.ID)
	}
	s.Require().NoError(s.persons.CreateIfIdentityAvailable(s.ctx, p))
	return p
}

func (s *LeadServiceSuite) linkAddress(p *models.Person, full string, from models.Date) {
	addr, ok := models.ParseAddress(full)
	s.Require().True(ok)
	addr.ID = id.NewAddressID()
	addr.PersonID = p.ID
	addr.RecordID = p.SourceRecordIDs[0]
	addr.FromDate = from
	addr.CreatedAt = s.created
	_, err := s.addresses.Link(s.ctx, addr)
	s.Require().NoError(err)
}

func (s *LeadServiceSuite) TestScorePersonSingleSource() {
	p := s.addPerson("Hans", "Germany")

	breakdown, ancestor, err := s.service.ScorePerson(s.ctx, p)
	s.Require().NoError(err)
	s.Equal(40, breakdown.Total)
	s.Equal(ConfidenceLow, breakdown.Confidence)
	s.True(breakdown.HasQualifyingAncestor)
	s.Require().NotNil(ancestor)
	s.Equal(RelationSelf, ancestor.Relation)
}

func (s *LeadServiceSuite) TestGetLead() {
	grandfather := s.addPerson("Karl", "Germany",
		models.NewDate(1910, time.May, 3), models.NewDate(1906, time.February, 11))
	father := s.addPerson("Otto", "United States")
	child := s.addPerson("Mary", "United States")
	for _, e := range [][2]*models.Person{{child, father}, {father, grandfather}} {
		_, err := s.edges.Add(s.ctx, models.RelationshipEdge{PersonID: e[0].ID, RelatedPersonID: e[1].ID, Type: models.RelationshipParent, Confidence: 1})
		s.Require().NoError(err)
	}
	s.linkAddress(child, "12 Elm St, Milwaukee, WI", models.NewDate(1930, time.January, 1))
	s.linkAddress(child, "4 Oak Ave, Chicago, IL", models.NewDate(1942, time.June, 1))

	lead, err := s.service.GetLead(s.ctx, child.ID)
	s.Require().NoError(err)
	s.Equal("Mary Schmidt", lead.Name)
	s.Equal("4 Oak Ave, Chicago, IL", lead.LastKnownAddress)
	s.Equal(grandfather.ID, lead.Ancestor.PersonID)
	s.Equal(RelationGrandparent, lead.Ancestor.Relation)
	s.Equal("Germany", lead.Ancestor.BirthCountry)
	s.Equal("Hamburg", lead.Ancestor.BirthPlace)
	s.Equal("1906-02-11", lead.Ancestor.NaturalizationDate.String())
	// ancestor 25 + one relationship 7 + addresses 15+10 + alive 10 + birth 5
	s.Equal(72, lead.Score.Total)
	s.Equal(ConfidenceLow, lead.Score.Confidence)
}

func (s *LeadServiceSuite) TestGetLeadNotFound() {
	_, err := s.service.GetLead(s.ctx, id.NewPersonID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	p := s.addPerson("Sean", "Ireland")
	_, err = s.service.GetLead(s.ctx, p.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LeadServiceSuite) TestListLeads() {
	low := s.addPerson("Hans", "Germany")
	s.addPerson("Sean", "Ireland")
	high := s.addPerson("Karl", "Germany", models.NewDate(1905, time.June, 1), models.NewDate(1907, time.June, 1))
	s.linkAddress(high, "12 Elm St, Milwaukee, WI", models.Date{})
	tied := s.addPerson("Greta", "Germany")

	leads, err := s.service.ListLeads(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(leads, 3)
	s.Equal(high.ID, leads[0].PersonID)
	s.Equal(65, leads[0].Score.Total)
	s.Equal(ConfidenceMedium, leads[0].Score.Confidence)
	s.Equal(low.ID, leads[1].PersonID, "equal totals keep the older person first")
	s.Equal(tied.ID, leads[2].PersonID)

	leads, err = s.service.ListLeads(s.ctx, 41, 0)
	s.Require().NoError(err)
	s.Require().Len(leads, 1)
	s.Equal(high.ID, leads[0].PersonID)

	leads, err = s.service.ListLeads(s.ctx, 0, 2)
	s.Require().NoError(err)
	s.Len(leads, 2)
}

func (s *LeadServiceSuite) TestPolicyCountry() {
	svc := New(s.persons, s.edges, s.addresses, s.records, Policy{QualifyingCountry: "Ireland"})
	s.addPerson("Hans", "Germany")
	sean := s.addPerson("Sean", "Ireland")

	leads, err := svc.ListLeads(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(leads, 1)
	s.Equal(sean.ID, leads[0].PersonID)
	s.Equal(DefaultListConcurrency, svc.Policy().ListConcurrency)
}
