package config

import (
	"os"
	"strconv"
	"strings"

	pstrings "kinlead/pkg/platform/strings"
)

// FromEnv overlays KINLEAD_* environment variables on base. Unset variables
// and unparseable numbers leave the base value alone.
func FromEnv(base Config) Config {
	cfg := base

	setString(&cfg.Store.Driver, "KINLEAD_STORE_DRIVER")
	cfg.Store.DSN = pstrings.FirstNonBlank(os.Getenv("KINLEAD_STORE_DSN"), cfg.Store.DSN, os.Getenv("DATABASE_URL"))

	setString(&cfg.Graph.URI, "KINLEAD_GRAPH_URI")
	setString(&cfg.Graph.Username, "KINLEAD_GRAPH_USERNAME")
	setString(&cfg.Graph.Password, "KINLEAD_GRAPH_PASSWORD")

	setString(&cfg.Redis.URL, "KINLEAD_REDIS_URL")

	if v := os.Getenv("KINLEAD_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = pstrings.SplitList(v)
	}
	setString(&cfg.Kafka.ReviewTopic, "KINLEAD_KAFKA_REVIEW_TOPIC")

	setString(&cfg.Lock.Backend, "KINLEAD_LOCK_BACKEND")
	setString(&cfg.Lock.Path, "KINLEAD_LOCK_PATH")
	setString(&cfg.Lock.Partition, "KINLEAD_LOCK_PARTITION")
	setInt(&cfg.Lock.TTLSeconds, "KINLEAD_LOCK_TTL_SECONDS")

	setString(&cfg.Leads.QualifyingAncestorCountry, "KINLEAD_QUALIFYING_COUNTRY")
	if v := os.Getenv("KINLEAD_MATCH_BLOCKING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Matching.Blocking = b
		}
	}

	setString(&cfg.Logging.Level, "KINLEAD_LOG_LEVEL")
	setString(&cfg.Logging.Format, "KINLEAD_LOG_FORMAT")
	setString(&cfg.Ops.Addr, "KINLEAD_OPS_ADDR")
	return cfg
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		*dst = n
	}
}
