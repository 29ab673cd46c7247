package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinlead/internal/platform/config"
	dErrors "kinlead/pkg/domain-errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kinlead.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "Germany", cfg.Leads.QualifyingAncestorCountry)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[matching]
name_match_threshold = 0.8
auto_merge_threshold = 0.95
manual_review_threshold = 0.75
date_proximity_years = 3
blocking = true

[leads]
qualifying_ancestor_country = "Ireland"

[store]
driver = "SQLite"
dsn = "kinlead.db"

[kafka]
brokers = ["localhost:9092", " "]

[lock]
backend = "file"
ttl_seconds = 0
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, cfg.Matching.AutoMergeThreshold, 1e-9)
	assert.Equal(t, 3, cfg.Matching.DateProximityYears)
	assert.True(t, cfg.Matching.Blocking)
	assert.Equal(t, "Ireland", cfg.Leads.QualifyingAncestorCountry)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, config.LockFile, cfg.Lock.Backend)
	assert.Equal(t, 600, cfg.Lock.TTLSeconds, "unset ttl falls back to the default")
	assert.Equal(t, "default", cfg.Lock.Partition)
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("explicit missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
	})

	t.Run("missing file from env is ignored", func(t *testing.T) {
		t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "absent.toml"))
		_, err := config.Load("")
		require.NoError(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "[store]\ndriverr = \"memory\"\n"))
		require.Error(t, err)
	})
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[store]\ndriver = \"postgres\"\ndsn = \"postgres://file\"\n")
	t.Setenv("KINLEAD_STORE_DSN", "postgres://env")
	t.Setenv("KINLEAD_KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("KINLEAD_LOCK_TTL_SECONDS", "not-a-number")
	t.Setenv("KINLEAD_MATCH_BLOCKING", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.Store.DSN)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 600, cfg.Lock.TTLSeconds)
	assert.True(t, cfg.Matching.Blocking)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"threshold above one", func(c *config.Config) { c.Matching.AutoMergeThreshold = 1.2 }},
		{"review above auto merge", func(c *config.Config) { c.Matching.ManualReviewThreshold = 0.95 }},
		{"negative window", func(c *config.Config) { c.Matching.DateProximityYears = -1 }},
		{"blank country", func(c *config.Config) { c.Leads.QualifyingAncestorCountry = "" }},
		{"unknown driver", func(c *config.Config) { c.Store.Driver = "mysql" }},
		{"sql driver without dsn", func(c *config.Config) { c.Store.Driver = config.DriverPostgres }},
		{"redis lock without url", func(c *config.Config) { c.Lock.Backend = config.LockRedis }},
		{"unknown lock backend", func(c *config.Config) { c.Lock.Backend = "etcd" }},
		{"kafka without partitions", func(c *config.Config) {
			c.Kafka.Brokers = []string{"localhost:9092"}
			c.Kafka.Partitions = 0
		}},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		cfg := config.Default()
		require.NoError(t, cfg.Validate())
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	body, err := config.Encode(config.Default())
	require.NoError(t, err)

	cfg, err := config.Load(writeConfig(t, body))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}
