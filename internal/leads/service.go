package leads

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/leads/metrics"
	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
	"kinlead/pkg/platform/sentinel"
)

var tracer = otel.Tracer("kinlead/internal/leads")

// Lead is a scored person with a qualifying ancestor.
type Lead struct {
	PersonID         id.PersonID  `json:"person_id"`
	Name             string       `json:"name"`
	LastKnownAddress string       `json:"last_known_address,omitempty"`
	Ancestor         LeadAncestor `json:"ancestor"`
	Score            Breakdown    `json:"score"`
}

// LeadAncestor summarizes the qualifying ancestor of a lead.
type LeadAncestor struct {
	PersonID           id.PersonID `json:"person_id"`
	Name               string      `json:"name"`
	Relation           Relation    `json:"relation"`
	BirthPlace         string      `json:"birth_place,omitempty"`
	BirthDate          models.Date `json:"birth_date,omitzero"`
	BirthCountry       string      `json:"birth_country"`
	NaturalizationDate models.Date `json:"naturalization_date,omitzero"`
}

// Service scores persons against the stores.
type Service struct {
	persons       PersonReader
	relationships RelationshipReader
	addresses     AddressReader
	records       RecordReader
	policy        Policy
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service. Unset policy values fall back to DefaultPolicy.
func New(persons PersonReader, relationships RelationshipReader, addresses AddressReader, records RecordReader, policy Policy, opts ...Option) *Service {
	s := &Service{
		persons:       persons,
		relationships: relationships,
		addresses:     addresses,
		records:       records,
		policy:        policy.normalized(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the effective policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// FindQualifyingAncestor searches p and its ancestors for the configured
// country, AncestorSearchDepth hops deep.
func (s *Service) FindQualifyingAncestor(ctx context.Context, p *models.Person) (*Ancestor, error) {
	return FindQualifyingAncestor(ctx, p, s.policy.QualifyingCountry, AncestorSearchDepth, s.persons, s.relationships)
}

// ScorePerson gathers the facts about p and scores it. The ancestor is nil
// when none qualifies.
func (s *Service) ScorePerson(ctx context.Context, p *models.Person) (Breakdown, *Ancestor, error) {
	ctx, span := tracer.Start(ctx, "leads.Score")
	defer span.End()
	span.SetAttributes(attribute.String("person_id", p.ID.String()))

	breakdown, ancestor, _, err := s.score(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Breakdown{}, nil, err
	}
	span.SetAttributes(attribute.Int("lead.total", breakdown.Total))
	return breakdown, ancestor, nil
}

func (s *Service) score(ctx context.Context, p *models.Person) (Breakdown, *Ancestor, []models.Address, error) {
	ancestor, err := s.FindQualifyingAncestor(ctx, p)
	if err != nil {
		return Breakdown{}, nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search ancestors")
	}
	edges, err := s.relationships.CountTouching(ctx, p.ID)
	if err != nil {
		return Breakdown{}, nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count relationships")
	}
	addresses, err := s.addresses.ListByPerson(ctx, p.ID)
	if err != nil {
		return Breakdown{}, nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load addresses")
	}

	breakdown := Score(p, Facts{
		HasQualifyingAncestor: ancestor != nil,
		SourcesCount:          p.SourcesCount(),
		RelationshipCount:     edges,
		AddressCount:          len(addresses),
	})
	s.metrics.ObserveScored(string(breakdown.Confidence), breakdown.Total)
	return breakdown, ancestor, addresses, nil
}

// GetLead builds the lead for one person. It fails with CodeNotFound when the
// person does not exist or has no qualifying ancestor.
func (s *Service) GetLead(ctx context.Context, personID id.PersonID) (*Lead, error) {
	p, err := s.persons.FindByID(ctx, personID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	lead, err := s.buildLead(ctx, p)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no qualifying ancestor found for this person")
	}
	return lead, nil
}

// ListLeads scores every person and returns those with a qualifying ancestor
// and a total of at least minScore, best first. Equal totals keep the older
// person first, then the smaller id. limit <= 0 means no limit.
func (s *Service) ListLeads(ctx context.Context, minScore, limit int) ([]Lead, error) {
	ctx, span := tracer.Start(ctx, "leads.List")
	defer span.End()

	persons, err := s.persons.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list persons")
	}

	var (
		mu    sync.Mutex
		found []listed
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.policy.ListConcurrency)
	for _, p := range persons {
		g.Go(func() error {
			lead, err := s.buildLead(gctx, p)
			if err != nil {
				return err
			}
			if lead == nil || lead.Score.Total < minScore {
				return nil
			}
			mu.Lock()
			found = append(found, listed{lead: *lead, person: p})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	slices.SortFunc(found, compareListed)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	leads := make([]Lead, len(found))
	for i, f := range found {
		leads[i] = f.lead
	}
	span.SetAttributes(attribute.Int("leads.count", len(leads)))
	s.logger.DebugContext(ctx, "leads listed", "scanned", len(persons), "returned", len(leads))
	return leads, nil
}

type listed struct {
	lead   Lead
	person *models.Person
}

func compareListed(a, b listed) int {
	if c := cmp.Compare(b.lead.Score.Total, a.lead.Score.Total); c != 0 {
		return c
	}
	if c := a.person.CreatedAt.Compare(b.person.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.person.ID.String(), b.person.ID.String())
}

// buildLead returns nil without error when p has no qualifying ancestor.
func (s *Service) buildLead(ctx context.Context, p *models.Person) (*Lead, error) {
	breakdown, ancestor, addresses, err := s.score(ctx, p)
	if err != nil {
		return nil, err
	}
	if ancestor == nil {
		return nil, nil
	}

	records, err := s.records.ListByPerson(ctx, p.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load raw records")
	}

	return &Lead{
		PersonID:         p.ID,
		Name:             p.FullName(),
		LastKnownAddress: lastKnownAddress(addresses),
		Score:            breakdown,
		Ancestor: LeadAncestor{
			PersonID:           ancestor.Person.ID,
			Name:               ancestor.Person.FullName(),
			Relation:           ancestor.Relation,
			BirthPlace:         ancestor.Person.BirthPlace,
			BirthDate:          ancestor.Person.BirthDate,
			BirthCountry:       ancestor.Person.BirthCountry,
			NaturalizationDate: earliestNaturalization(records),
		},
	}, nil
}

// lastKnownAddress picks the address with the latest FromDate, falling back
// to the most recently linked one.
func lastKnownAddress(addresses []models.Address) string {
	if len(addresses) == 0 {
		return ""
	}
	latest := slices.MaxFunc(addresses, func(a, b models.Address) int {
		if c := a.FromDate.Time().Compare(b.FromDate.Time()); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return formatAddress(latest)
}

func formatAddress(a models.Address) string {
	parts := make([]string, 0, 4)
	for _, v := range []string{a.Street, a.City, a.State, a.PostalCode} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(a.FullAddress)
	}
	return strings.Join(parts, ", ")
}

func earliestNaturalization(records []*models.RawRecord) models.Date {
	var earliest models.Date
	for _, r := range records {
		d := r.Normalized.NaturalizationDate
		if d.IsZero() {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	return earliest
}
