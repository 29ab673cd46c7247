package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"kinlead/internal/dedupe"
	"kinlead/internal/genealogy/models"
	"kinlead/internal/genealogy/store/address"
	"kinlead/internal/genealogy/store/candidate"
	"kinlead/internal/genealogy/store/person"
	"kinlead/internal/genealogy/store/record"
	"kinlead/internal/genealogy/store/relationship"
	"kinlead/internal/ingest"
	ingestmetrics "kinlead/internal/ingest/metrics"
	"kinlead/internal/leads"
	leadsmetrics "kinlead/internal/leads/metrics"
	"kinlead/internal/lock"
	"kinlead/internal/matching"
	"kinlead/internal/platform/config"
	"kinlead/internal/platform/graph"
	"kinlead/internal/platform/httpserver"
	"kinlead/internal/platform/kafka"
	platformmetrics "kinlead/internal/platform/metrics"
	redisclient "kinlead/internal/platform/redis"
	"kinlead/internal/platform/sqldb"
	"kinlead/internal/review"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/circuit"
	"kinlead/pkg/platform/tx"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type personStore interface {
	dedupe.PersonStore
	leads.PersonReader
	counter
}

type recordStore interface {
	ingest.RecordStore
	leads.RecordReader
	counter
}

type addressStore interface {
	ingest.AddressStore
	leads.AddressReader
}

type relationshipStore interface {
	leads.RelationshipReader
	Add(ctx context.Context, e models.RelationshipEdge) (bool, error)
	counter
}

type candidateStore interface {
	review.Store
	Append(ctx context.Context, c *models.MatchCandidate) error
	CountByStatus(ctx context.Context, status models.CandidateStatus) (int, error)
}

type appMetrics struct {
	ingest   *ingestmetrics.Metrics
	leads    *leadsmetrics.Metrics
	platform *platformmetrics.Metrics
}

var (
	metricsOnce sync.Once
	metrics     appMetrics
)

// sharedMetrics registers the collectors once per process.
func sharedMetrics() appMetrics {
	metricsOnce.Do(func() {
		metrics = appMetrics{
			ingest:   ingestmetrics.New(),
			leads:    leadsmetrics.New(),
			platform: platformmetrics.New(),
		}
	})
	return metrics
}

// app holds the wired stores and clients for one command invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics appMetrics

	db    *sqldb.DB
	redis *redisclient.Client
	kafka *kgo.Client
	graph *graph.Neo4jDriver

	persons       personStore
	records       recordStore
	addresses     addressStore
	relationships relationshipStore
	candidates    candidateStore
	reviewSink    dedupe.CandidateSink
	locker        lock.Locker
	txRunner      tx.Runner
}

func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (a *app, err error) {
	a = &app{cfg: cfg, logger: logger, metrics: sharedMetrics(), txRunner: tx.NoopRunner{}}
	defer func() {
		if err != nil {
			a.Close(ctx)
		}
	}()

	if err := a.openStores(ctx); err != nil {
		return nil, err
	}
	if err := a.openGraph(ctx); err != nil {
		return nil, err
	}
	if a.redis, err = redisclient.New(ctx, cfg.Redis); err != nil {
		return nil, err
	}
	if err := a.openLocker(); err != nil {
		return nil, err
	}
	if err := a.openReviewSink(ctx); err != nil {
		return nil, err
	}
	a.metrics.platform.SetBuildInfo(version, cfg.Store.Driver)
	return a, nil
}

func (a *app) openStores(ctx context.Context) error {
	switch a.cfg.Store.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		dialect := sqldb.Postgres
		if a.cfg.Store.Driver == config.DriverSQLite {
			dialect = sqldb.SQLite
		}
		db, err := sqldb.Open(ctx, dialect, a.cfg.Store.DSN)
		if err != nil {
			return err
		}
		a.db = db
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		a.persons = person.NewSQL(db)
		a.records = record.NewSQL(db)
		a.addresses = address.NewSQL(db)
		a.relationships = relationship.NewSQL(db)
		a.candidates = candidate.NewSQL(db)
		a.txRunner = tx.SQLRunner{DB: db.DB}
	default:
		a.logger.WarnContext(ctx, "memory store selected, nothing outlives this process")
		a.persons = person.NewInMemory()
		a.records = record.NewInMemory()
		a.addresses = address.NewInMemory()
		a.relationships = relationship.NewInMemory()
		a.candidates = candidate.NewInMemory()
	}
	return nil
}

func (a *app) openGraph(ctx context.Context) error {
	driver, err := graph.Connect(ctx, graph.Config{
		URI:      a.cfg.Graph.URI,
		Username: a.cfg.Graph.Username,
		Password: a.cfg.Graph.Password,
		Database: a.cfg.Graph.Database,
	}, a.logger)
	if err != nil {
		return err
	}
	if driver == nil {
		return nil
	}
	a.graph = driver
	if err := driver.BuildIndices(ctx); err != nil {
		return err
	}
	a.relationships = relationship.NewGraph(driver)
	return nil
}

func (a *app) openLocker() error {
	switch a.cfg.Lock.Backend {
	case config.LockRedis:
		if a.redis == nil {
			return fmt.Errorf("lock backend redis needs redis.url")
		}
		a.locker = lock.NewRedis(a.redis.Client)
	case config.LockFile:
		l, err := lock.NewFile(a.cfg.Lock.Path)
		if err != nil {
			return err
		}
		a.locker = l
	default:
		a.locker = lock.NewInMemory()
	}
	return nil
}

// openReviewSink mirrors review candidates to Kafka when brokers are set. The
// store stays the system of record.
func (a *app) openReviewSink(ctx context.Context) error {
	a.reviewSink = a.candidates
	client, err := kafka.NewClient(kafka.Config{
		Brokers:     a.cfg.Kafka.Brokers,
		ReviewTopic: a.cfg.Kafka.ReviewTopic,
	})
	if err != nil || client == nil {
		return err
	}
	a.kafka = client
	if err := kafka.EnsureTopic(ctx, client, a.cfg.Kafka.ReviewTopic, a.cfg.Kafka.Partitions, a.cfg.Kafka.Replication); err != nil {
		a.logger.WarnContext(ctx, "review topic not ensured", "topic", a.cfg.Kafka.ReviewTopic, "error", err)
	}
	publisher := candidate.NewKafkaPublisher(client, a.cfg.Kafka.ReviewTopic,
		candidate.WithPublisherLogger(a.logger),
		candidate.WithBreaker(circuit.New("review-publisher",
			circuit.WithFailureThreshold(3),
			circuit.WithCooldown(30*time.Second),
		)),
	)
	a.reviewSink = candidate.NewTee(a.logger, a.candidates, publisher)
	return nil
}

func (a *app) matchingPolicy() matching.Policy {
	m := a.cfg.Matching
	return matching.Policy{
		NameMatchThreshold:    m.NameMatchThreshold,
		AutoMergeThreshold:    m.AutoMergeThreshold,
		ManualReviewThreshold: m.ManualReviewThreshold,
		DateProximityYears:    m.DateProximityYears,
	}
}

func (a *app) pipeline() *ingest.Pipeline {
	resolver := dedupe.New(matching.New(a.matchingPolicy()), a.persons, a.reviewSink,
		dedupe.WithLogger(a.logger),
		dedupe.WithBlocking(a.cfg.Matching.Blocking),
	)
	return ingest.New(resolver, a.records, a.addresses,
		ingest.WithLogger(a.logger),
		ingest.WithMetrics(a.metrics.ingest),
		ingest.WithTxRunner(a.txRunner),
		ingest.WithLock(a.locker, a.cfg.Lock.Partition, time.Duration(a.cfg.Lock.TTLSeconds)*time.Second, lock.DefaultRetry()),
	)
}

func (a *app) leads() *leads.Service {
	policy := leads.Policy{
		QualifyingCountry: a.cfg.Leads.QualifyingAncestorCountry,
		ListConcurrency:   a.cfg.Leads.ListConcurrency,
	}
	return leads.New(a.persons, a.relationships, a.addresses, a.records, policy,
		leads.WithLogger(a.logger),
		leads.WithMetrics(a.metrics.leads),
	)
}

func (a *app) review() *review.Service {
	return review.New(a.candidates, review.WithLogger(a.logger))
}

func (a *app) stats(ctx context.Context) (ingest.Stats, error) {
	return ingest.CollectStats(ctx, a.persons, a.records, a.candidates)
}

// checks are the readiness probes of the configured dependencies.
func (a *app) checks() []httpserver.Check {
	var out []httpserver.Check
	if a.db != nil {
		out = append(out, httpserver.Check{Name: "store", Ping: a.db.PingContext})
	}
	if a.redis != nil {
		out = append(out, httpserver.Check{Name: "redis", Ping: a.redis.Health})
	}
	if a.kafka != nil {
		client := a.kafka
		out = append(out, httpserver.Check{Name: "kafka", Ping: func(ctx context.Context) error {
			return kafka.Health(ctx, client)
		}})
	}
	if a.graph != nil {
		out = append(out, httpserver.Check{Name: "graph", Ping: a.graph.Health})
	}
	return out
}

func (a *app) Close(ctx context.Context) {
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.graph != nil {
		if err := a.graph.Close(ctx); err != nil {
			a.logger.WarnContext(ctx, "failed to close graph driver", "error", err)
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func parsePersonID(raw string) (id.PersonID, error) {
	personID, err := id.ParsePersonID(raw)
	if err != nil {
		return id.PersonID{}, fmt.Errorf("invalid person id %q: %w", raw, err)
	}
	return personID, nil
}
