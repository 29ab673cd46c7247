package config

import (
	"slices"
	"strings"
)

func (c *Config) normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}

	c.Leads.QualifyingAncestorCountry = strings.TrimSpace(c.Leads.QualifyingAncestorCountry)

	c.Kafka.Brokers = slices.DeleteFunc(c.Kafka.Brokers, func(b string) bool {
		return strings.TrimSpace(b) == ""
	})
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = nil
	}
	if strings.TrimSpace(c.Kafka.ReviewTopic) == "" {
		c.Kafka.ReviewTopic = defaultReviewTopic
	}

	c.Lock.Backend = strings.ToLower(strings.TrimSpace(c.Lock.Backend))
	if c.Lock.Backend == "" {
		c.Lock.Backend = LockMemory
	}
	if strings.TrimSpace(c.Lock.Partition) == "" {
		c.Lock.Partition = defaultLockPartition
	}
	if c.Lock.TTLSeconds <= 0 {
		c.Lock.TTLSeconds = defaultLockTTL
	}
	if strings.TrimSpace(c.Lock.Path) == "" {
		c.Lock.Path = defaultLockPath
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}
