// Package ingest runs ingestion batches: every raw record is normalized,
// resolved against the person pool, archived, and its residence linked to the
// resolved person.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"kinlead/internal/dedupe"
	"kinlead/internal/genealogy/models"
	"kinlead/internal/ingest/metrics"
	"kinlead/internal/lock"
	"kinlead/internal/normalize"
	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
	"kinlead/pkg/platform/tx"
	"kinlead/pkg/requestcontext"
)

var tracer = otel.Tracer("kinlead/internal/ingest")

const (
	DefaultPartition            = "default"
	DefaultLockTTL              = 10 * time.Minute
	defaultNormalizeConcurrency = 8
)

// Item is one raw source record as submitted.
type Item struct {
	SourceType id.SourceType   `json:"source_type"`
	Payload    json.RawMessage `json:"payload"`
}

// Pipeline is the batch orchestrator. Normalization runs in parallel;
// resolution is sequential in submission order because every decision depends
// on the pool as left by the previous one.
type Pipeline struct {
	resolver  Resolver
	records   RecordStore
	addresses AddressStore
	tx        tx.Runner

	locker    lock.Locker
	partition string
	lockTTL   time.Duration
	lockRetry lock.Retry

	normalizeConcurrency int
	logger               *slog.Logger
	metrics              *metrics.Metrics
}

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithTxRunner commits each record in its own unit of work. Without it stores
// are written directly.
func WithTxRunner(r tx.Runner) Option {
	return func(p *Pipeline) {
		p.tx = r
	}
}

// WithLock serializes batches on partition through locker. The lease is
// renewed for ttl before every commit, and the batch fails once it is lost.
func WithLock(locker lock.Locker, partition string, ttl time.Duration, retry lock.Retry) Option {
	return func(p *Pipeline) {
		p.locker = locker
		if partition != "" {
			p.partition = partition
		}
		if ttl > 0 {
			p.lockTTL = ttl
		}
		p.lockRetry = retry
	}
}

func WithNormalizeConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.normalizeConcurrency = n
		}
	}
}

func New(resolver Resolver, records RecordStore, addresses AddressStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver:             resolver,
		records:              records,
		addresses:            addresses,
		tx:                   tx.NoopRunner{},
		partition:            DefaultPartition,
		lockTTL:              DefaultLockTTL,
		lockRetry:            lock.DefaultRetry(),
		normalizeConcurrency: defaultNormalizeConcurrency,
		logger:               slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunBatch ingests items in order. Malformed items and unknown source types
// are skipped. A store failure stops the batch: records committed before it
// stay committed, the outcome is marked failed and the error is returned.
func (p *Pipeline) RunBatch(ctx context.Context, batchID id.BatchID, items []Item) (*Outcome, error) {
	ctx = requestcontext.WithBatchID(ctx, batchID)
	ctx, span := tracer.Start(ctx, "ingest.RunBatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("batch_id", batchID.String()),
		attribute.Int("batch.items", len(items)),
	)

	out := &Outcome{
		BatchID:    batchID,
		Status:     StatusProcessing,
		TotalItems: len(items),
		StartedAt:  requestcontext.Now(ctx),
	}
	p.logger.InfoContext(ctx, "batch started", "batch_id", batchID, "items", len(items))

	err := p.run(ctx, items, out)
	if err != nil {
		out.Error = err.Error()
		out.finish(StatusFailed, requestcontext.Now(ctx))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.ErrorContext(ctx, "batch failed",
			"batch_id", batchID,
			"records_processed", out.RecordsProcessed,
			"error", err)
		p.metrics.ObserveBatch(string(StatusFailed), out.Duration())
		return out, fmt.Errorf("batch %s: %w", batchID, err)
	}

	out.finish(StatusCompleted, requestcontext.Now(ctx))
	span.SetAttributes(
		attribute.Int("batch.created", out.Created),
		attribute.Int("batch.merged", out.Merged),
		attribute.Int("batch.reviewed", out.Reviewed),
	)
	p.logger.InfoContext(ctx, "batch finished",
		"batch_id", batchID,
		"records_processed", out.RecordsProcessed,
		"created", out.Created,
		"merged", out.Merged,
		"reviewed", out.Reviewed,
		"addresses_linked", out.AddressesLinked,
		"skipped", out.Skipped,
		"duration", out.Duration())
	p.metrics.ObserveBatch(string(StatusCompleted), out.Duration())
	return out, nil
}

func (p *Pipeline) run(ctx context.Context, items []Item, out *Outcome) error {
	var lease lock.Lease
	lockKey := "pool:" + p.partition
	if p.locker != nil {
		var err error
		lease, err = lock.Acquire(ctx, p.locker, lockKey, p.lockTTL, p.lockRetry)
		if err != nil {
			return err
		}
		defer func() {
			if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
				p.logger.WarnContext(ctx, "failed to release pool lock", "partition", p.partition, "error", err)
			}
		}()
	}

	normalized, err := p.normalizeAll(ctx, items)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "batch cancelled during normalization")
	}

	for i, recs := range normalized {
		if len(recs) == 0 {
			out.Skipped++
			continue
		}
		for _, rec := range recs {
			if err := ctx.Err(); err != nil {
				return dErrors.Wrap(err, dErrors.CodeTimeout, "batch cancelled")
			}
			// Every commit renews the lease, so a batch keeps the partition for
			// as long as it makes progress and stops once it has lost it.
			if lease != nil {
				if err := lock.Confirm(ctx, lease, lockKey, p.lockTTL); err != nil {
					return err
				}
			}
			if err := p.commit(ctx, items[i], rec, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) normalizeAll(ctx context.Context, items []Item) ([][]models.NormalizedRecord, error) {
	out := make([][]models.NormalizedRecord, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.normalizeConcurrency)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.normalizeItem(gctx, i, item)
			return nil
		})
	}
	return out, g.Wait()
}

// normalizeItem never fails; anomalies are logged and yield no records.
func (p *Pipeline) normalizeItem(ctx context.Context, index int, item Item) []models.NormalizedRecord {
	if !item.SourceType.IsValid() {
		p.logger.WarnContext(ctx, "unknown source type, item skipped", "index", index, "source_type", string(item.SourceType))
		return nil
	}
	var payload normalize.Payload
	if err := json.Unmarshal(item.Payload, &payload); err != nil || payload == nil {
		p.logger.WarnContext(ctx, "malformed payload, item skipped", "index", index, "source_type", string(item.SourceType))
		return nil
	}
	recs := normalize.Normalize(item.SourceType, payload)
	if len(recs) == 0 && item.SourceType == id.SourceCensus {
		p.logger.WarnContext(ctx, "census record without household members, item skipped", "index", index)
	}
	return recs
}

// commit resolves one normalized record and archives it as one unit of work.
func (p *Pipeline) commit(ctx context.Context, item Item, rec models.NormalizedRecord, out *Outcome) error {
	recordID := id.NewRawRecordID()
	var (
		res    *dedupe.Resolution
		linked bool
	)
	err := p.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := p.resolver.Resolve(txCtx, rec, recordID)
		if err != nil {
			return err
		}
		raw := &models.RawRecord{
			ID:         recordID,
			BatchID:    requestcontext.BatchID(txCtx),
			SourceType: rec.SourceType,
			PersonID:   r.Person.ID,
			Payload:    item.Payload,
			Normalized: rec,
			CreatedAt:  requestcontext.Now(txCtx),
		}
		if err := p.records.Save(txCtx, raw); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to archive raw record")
		}
		linked, err = p.linkAddress(txCtx, r.Person.ID, recordID, rec)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return err
	}

	out.RecordsProcessed++
	p.metrics.IncrementRecord(string(rec.SourceType))
	p.metrics.IncrementDecision(string(res.Action))
	switch res.Action {
	case dedupe.ActionCreated:
		out.Created++
	case dedupe.ActionMerged:
		out.Merged++
	case dedupe.ActionReview:
		out.Merged++
		out.Reviewed++
	}
	if res.Best != nil {
		p.metrics.ObserveMatchScore(res.Best.Result.Score)
	}
	if linked {
		out.AddressesLinked++
	}
	return nil
}

func (p *Pipeline) linkAddress(ctx context.Context, personID id.PersonID, recordID id.RawRecordID, rec models.NormalizedRecord) (bool, error) {
	addr, ok := models.ParseAddress(rec.Residence)
	if !ok {
		return false, nil
	}
	addr.ID = id.NewAddressID()
	addr.PersonID = personID
	addr.RecordID = recordID
	addr.FromDate = residenceDate(rec)
	addr.CreatedAt = requestcontext.Now(ctx)
	linked, err := p.addresses.Link(ctx, addr)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to link address")
	}
	return linked, nil
}

// residenceDate is when the record places the person at its residence: the
// naturalization date for petitions, the death date for obituaries.
func residenceDate(rec models.NormalizedRecord) models.Date {
	switch rec.SourceType {
	case id.SourceNaturalization:
		return rec.NaturalizationDate
	case id.SourceObituary:
		return rec.DeathDate
	}
	return models.Date{}
}
