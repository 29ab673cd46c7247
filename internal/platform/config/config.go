// Package config loads kinlead's runtime configuration: built-in defaults,
// then an optional TOML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath names the config file when no path is passed to Load.
const EnvConfigPath = "KINLEAD_CONFIG"

// Matching holds the matcher thresholds.
type Matching struct {
	NameMatchThreshold    float64 `toml:"name_match_threshold"`
	AutoMergeThreshold    float64 `toml:"auto_merge_threshold"`
	ManualReviewThreshold float64 `toml:"manual_review_threshold"`
	DateProximityYears    int     `toml:"date_proximity_years"`
	// Blocking narrows the candidate scan to a birth-date window when the
	// thresholds allow it.
	Blocking bool `toml:"blocking"`
}

type Leads struct {
	QualifyingAncestorCountry string `toml:"qualifying_ancestor_country"`
	ListConcurrency           int    `toml:"list_concurrency"`
}

// Store selects the persistence backend.
type Store struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

// Graph points relationship reads and writes at Neo4j. An empty URI keeps
// relationships in the main store.
type Graph struct {
	URI      string `toml:"uri"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type RedisConfig struct {
	URL                 string `toml:"url"`
	PoolSize            int    `toml:"pool_size"`
	MinIdleConns        int    `toml:"min_idle_conns"`
	DialTimeoutSeconds  int    `toml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
}

// Kafka configures the review candidate topic. No brokers means review
// candidates are only kept in the store.
type Kafka struct {
	Brokers     []string `toml:"brokers"`
	ReviewTopic string   `toml:"review_topic"`
	Partitions  int32    `toml:"partitions"`
	Replication int16    `toml:"replication"`
}

// Lock configures the single-writer lock around a person pool partition.
type Lock struct {
	Backend    string `toml:"backend"`
	Path       string `toml:"path"`
	TTLSeconds int    `toml:"ttl_seconds"`
	Partition  string `toml:"partition"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Ops is the operational HTTP listener.
type Ops struct {
	Addr string `toml:"addr"`
}

// Config is the complete runtime configuration.
type Config struct {
	Matching Matching    `toml:"matching"`
	Leads    Leads       `toml:"leads"`
	Store    Store       `toml:"store"`
	Graph    Graph       `toml:"graph"`
	Redis    RedisConfig `toml:"redis"`
	Kafka    Kafka       `toml:"kafka"`
	Lock     Lock        `toml:"lock"`
	Logging  Logging     `toml:"logging"`
	Ops      Ops         `toml:"ops"`
}

// Load builds a Config from defaults, the TOML file at path (or
// $KINLEAD_CONFIG when path is empty) and the environment. A missing file is
// only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg = FromEnv(cfg)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	var b strings.Builder
	encoder := toml.NewEncoder(&b)
	if err := encoder.Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
