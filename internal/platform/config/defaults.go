package config

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	LockMemory = "memory"
	LockRedis  = "redis"
	LockFile   = "file"

	defaultReviewTopic   = "kinlead.match-candidates"
	defaultLockTTL       = 600
	defaultLockPartition = "default"
	defaultLockPath      = ".kinlead/locks"
	defaultOpsAddr       = "127.0.0.1:9464"
)

// Default returns the built-in configuration: in-memory stores, no external
// services, production matching thresholds.
func Default() Config {
	return Config{
		Matching: Matching{
			NameMatchThreshold:    0.85,
			AutoMergeThreshold:    0.90,
			ManualReviewThreshold: 0.70,
			DateProximityYears:    2,
		},
		Leads: Leads{
			QualifyingAncestorCountry: "Germany",
			ListConcurrency:           8,
		},
		Store: Store{
			Driver: DriverMemory,
		},
		Redis: RedisConfig{
			PoolSize:            10,
			MinIdleConns:        2,
			DialTimeoutSeconds:  5,
			ReadTimeoutSeconds:  3,
			WriteTimeoutSeconds: 3,
		},
		Kafka: Kafka{
			ReviewTopic: defaultReviewTopic,
			Partitions:  3,
			Replication: 1,
		},
		Lock: Lock{
			Backend:    LockMemory,
			Path:       defaultLockPath,
			TTLSeconds: defaultLockTTL,
			Partition:  defaultLockPartition,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Ops: Ops{
			Addr: defaultOpsAddr,
		},
	}
}
