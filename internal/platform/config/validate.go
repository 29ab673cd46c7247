package config

import (
	"fmt"

	dErrors "kinlead/pkg/domain-errors"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if c.Leads.QualifyingAncestorCountry == "" {
		return invalid("leads.qualifying_ancestor_country must be set")
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateLock(); err != nil {
		return err
	}
	if len(c.Kafka.Brokers) > 0 && (c.Kafka.Partitions < 1 || c.Kafka.Replication < 1) {
		return invalid("kafka.partitions and kafka.replication must be at least 1")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return invalid(fmt.Sprintf("logging.format %q must be text or json", c.Logging.Format))
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	for name, v := range map[string]float64{
		"name_match_threshold":    m.NameMatchThreshold,
		"auto_merge_threshold":    m.AutoMergeThreshold,
		"manual_review_threshold": m.ManualReviewThreshold,
	} {
		if v < 0 || v > 1 {
			return invalid(fmt.Sprintf("matching.%s must be between 0 and 1", name))
		}
	}
	if m.ManualReviewThreshold > m.AutoMergeThreshold {
		return invalid("matching.manual_review_threshold must not exceed matching.auto_merge_threshold")
	}
	if m.DateProximityYears < 0 {
		return invalid("matching.date_proximity_years must not be negative")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres, DriverSQLite:
		if c.Store.DSN == "" {
			return invalid(fmt.Sprintf("store.dsn is required for the %s driver", c.Store.Driver))
		}
		return nil
	}
	return invalid(fmt.Sprintf("store.driver %q must be memory, postgres or sqlite", c.Store.Driver))
}

func (c *Config) validateLock() error {
	switch c.Lock.Backend {
	case LockMemory, LockFile:
		return nil
	case LockRedis:
		if c.Redis.URL == "" {
			return invalid("lock.backend redis requires redis.url")
		}
		return nil
	}
	return invalid(fmt.Sprintf("lock.backend %q must be memory, redis or file", c.Lock.Backend))
}

func invalid(msg string) error {
	return dErrors.New(dErrors.CodeValidation, msg)
}
