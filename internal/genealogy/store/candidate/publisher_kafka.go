package candidate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"kinlead/internal/genealogy/models"
	"kinlead/pkg/platform/circuit"
)

// EventCandidateFlagged is the type header on published candidates.
const EventCandidateFlagged = "match_candidate.flagged"

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher announces review candidates to external reviewers. While the
// breaker is open candidates are dropped; the SQL or memory store stays the
// system of record.
type KafkaPublisher struct {
	producer producer
	topic    string
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

type PublisherOption func(*KafkaPublisher)

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

func WithBreaker(b *circuit.Breaker) PublisherOption {
	return func(p *KafkaPublisher) {
		p.breaker = b
	}
}

func NewKafkaPublisher(client producer, topic string, opts ...PublisherOption) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: client,
		topic:    topic,
		breaker:  circuit.New("review-publisher"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *KafkaPublisher) Append(ctx context.Context, c *models.MatchCandidate) error {
	if !p.breaker.Allow() {
		p.logger.DebugContext(ctx, "review publisher open, dropping candidate", "candidate_id", c.ID.String())
		return nil
	}
	value, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal match candidate: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(c.PersonA.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(EventCandidateFlagged)},
		},
	}
	if err := p.producer.ProduceSync(ctx, rec).FirstErr(); err != nil {
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.logger.WarnContext(ctx, "review publisher circuit opened", "breaker", p.breaker.Name(), "error", err)
		}
		return fmt.Errorf("publish match candidate: %w", err)
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "review publisher circuit closed", "breaker", p.breaker.Name())
	}
	return nil
}
